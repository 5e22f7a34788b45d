// Package mocks provides in-memory fakes of the usecase repositories. Each
// mock keeps simple map state and exposes override funcs for per-test
// behavior, mirroring what the real store enforces: unique idempotency keys,
// unique account numbers, and transactions serialized from Begin to finish.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// MockTransaction is a fake transaction whose commit/rollback releases the
// manager's lock exactly once.
type MockTransaction struct {
	mu      sync.Mutex
	done    bool
	release func()
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *MockTransaction) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}

	t.done = true
	if t.release != nil {
		t.release()
	}
}

// MockTransactionManager serializes transactions with a mutex, standing in
// for the row locks the real store takes for the duration of a transfer.
type MockTransactionManager struct {
	txMu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.txMu.Lock()
	return &MockTransaction{release: m.txMu.Unlock}, nil
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc                 func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc                func(ctx context.Context, id string) (*domain.Account, error)
	GetByNumberFunc            func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDsForUpdateFunc      func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	ListByOwnerFunc            func(ctx context.Context, ownerID string) ([]*domain.Account, error)
	UpdateBalanceSnapshotFunc  func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	RefreshBalanceSnapshotFunc func(ctx context.Context, id string) (decimal.Decimal, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.AccountNumber == account.AccountNumber {
			return domain.ErrAccountNumberSpace
		}
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.AccountNumber == number {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.OwnerID == ownerID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalanceSnapshot(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceSnapshotFunc != nil {
		return m.UpdateBalanceSnapshotFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) RefreshBalanceSnapshot(ctx context.Context, id string) (decimal.Decimal, error) {
	if m.RefreshBalanceSnapshotFunc != nil {
		return m.RefreshBalanceSnapshotFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance, nil
	}
	return decimal.Zero, domain.ErrAccountNotFound
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (m *MockEntryRepository) SumByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	return m.SumByAccount(ctx, accountID)
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].AccountID == accountID {
			entries = append(entries, m.entries[i])
		}
	}
	if offset >= len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// All returns a copy of every stored entry.
func (m *MockEntryRepository) All() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockTransferRepository is a mock implementation of TransferRepository. It
// enforces idempotency key uniqueness the way the store's constraint does.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer
	byKey     map[string]*domain.Transfer

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Transfer, error)
	GetByIdempotencyKeyFunc func(ctx context.Context, key string) (*domain.Transfer, error)
	ListByAccountFunc       func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
		byKey:     make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[transfer.IdempotencyKey]; ok {
		return domain.ErrDuplicateTransfer
	}
	m.transfers[transfer.ID] = transfer
	m.byKey[transfer.IdempotencyKey] = transfer
	return nil
}

func (m *MockTransferRepository) MarkCompleted(ctx context.Context, tx usecase.Transaction, id string, completedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.transfers[id]; ok {
		t.Status = domain.TransferStatusCompleted
		at := completedAt
		t.CompletedAt = &at
	}
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	if m.GetByIdempotencyKeyFunc != nil {
		return m.GetByIdempotencyKeyFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.byKey[key]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if t.FromAccountID == accountID || t.ToAccountID == accountID {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

// MockHistoryRepository is a mock implementation of HistoryRepository.
type MockHistoryRepository struct {
	Rows []*domain.LedgerTransferRow

	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerTransferRow, error)
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerTransferRow, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	var rows []*domain.LedgerTransferRow
	for _, r := range m.Rows {
		if r.EntryAccountID == accountID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	counter atomic.Int64
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (g *MockIDGenerator) Generate() string {
	return fmt.Sprintf("id-%d", g.counter.Add(1))
}

// MockNumberGenerator returns a fixed sequence of account numbers, then
// falls back to deterministic generated ones.
type MockNumberGenerator struct {
	mu       sync.Mutex
	sequence []string
	counter  int64

	GenerateWideFunc func() (string, error)
}

func NewMockNumberGenerator(sequence ...string) *MockNumberGenerator {
	return &MockNumberGenerator{sequence: sequence}
}

func (g *MockNumberGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.sequence) > 0 {
		next := g.sequence[0]
		g.sequence = g.sequence[1:]
		return next, nil
	}
	g.counter++
	return fmt.Sprintf("%012d", g.counter), nil
}

func (g *MockNumberGenerator) GenerateWide() (string, error) {
	if g.GenerateWideFunc != nil {
		return g.GenerateWideFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%020d", g.counter), nil
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (r *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
