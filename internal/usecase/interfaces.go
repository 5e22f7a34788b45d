package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
	UpdateBalanceSnapshot(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	RefreshBalanceSnapshot(ctx context.Context, id string) (decimal.Decimal, error)
}

// EntryRepository defines data access for the append-only ledger.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
	SumByAccountTx(ctx context.Context, tx Transaction, accountID string) (decimal.Decimal, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	MarkCompleted(ctx context.Context, tx Transaction, id string, completedAt time.Time) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error)
}

// HistoryRepository defines the read-side join of ledger entries with their
// transfers and both account numbers.
type HistoryRepository interface {
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerTransferRow, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// NumberGenerator draws candidate account numbers.
type NumberGenerator interface {
	Generate() (string, error)
	GenerateWide() (string, error)
}

// Retrier retries an operation that failed for a transient reason.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage for response replay.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
