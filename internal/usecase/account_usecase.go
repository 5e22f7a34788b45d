package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// maxNumberAttempts bounds each round of the random account-number draw.
// After that many collisions the allocator widens the number space instead
// of spinning; the unique constraint in the store is the final backstop.
const maxNumberAttempts = 10

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	numberGen   NumberGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	numberGen NumberGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		numberGen:   numberGen,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	OwnerID        string
	DisplayName    string
	InitialDeposit decimal.Decimal
}

// OpenAccount opens a new account for a user. If the initial deposit is
// positive a single ledger entry is appended in the same transaction, with
// no transfer attached.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if err := domain.ValidateDisplayName(input.DisplayName); err != nil {
		return nil, err
	}

	deposit := domain.NormalizeAmount(input.InitialDeposit)
	if deposit.IsNegative() {
		return nil, domain.ErrNegativeDeposit
	}

	number, err := uc.allocateNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		OwnerID:       input.OwnerID,
		AccountNumber: number,
		DisplayName:   strings.TrimSpace(input.DisplayName),
		Balance:       deposit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.persistAccount(ctx, account, deposit, now)
	if errors.Is(err, domain.ErrAccountNumberSpace) {
		// A concurrent open claimed the number between the free-check
		// and the insert. Draw again once before giving up.
		number, err = uc.allocateNumber(ctx)
		if err != nil {
			return nil, err
		}

		account.AccountNumber = number
		err = uc.persistAccount(ctx, account, deposit, now)
	}

	if err != nil {
		return nil, err
	}

	return account, nil
}

func (uc *AccountUseCase) persistAccount(ctx context.Context, account *domain.Account, deposit decimal.Decimal, now time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return err
	}

	if deposit.IsPositive() {
		entry := &domain.Entry{
			ID:          uc.idGen.Generate(),
			AccountID:   account.ID,
			Amount:      deposit,
			Description: "Initial deposit",
			CreatedAt:   now,
		}

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// allocateNumber draws random account numbers until one is free. When the
// 12-digit space keeps colliding it falls back to 20-digit draws, where a
// repeat collision means something is wrong with the store, not the odds.
func (uc *AccountUseCase) allocateNumber(ctx context.Context) (string, error) {
	number, err := uc.drawFree(ctx, uc.numberGen.Generate)
	if err == nil || !errors.Is(err, domain.ErrAccountNumberSpace) {
		return number, err
	}

	return uc.drawFree(ctx, uc.numberGen.GenerateWide)
}

func (uc *AccountUseCase) drawFree(ctx context.Context, generate func() (string, error)) (string, error) {
	for i := 0; i < maxNumberAttempts; i++ {
		candidate, err := generate()
		if err != nil {
			return "", err
		}

		_, err = uc.accountRepo.GetByNumber(ctx, candidate)
		if errors.Is(err, domain.ErrAccountNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", err
		}
	}

	return "", domain.ErrAccountNumberSpace
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByNumber retrieves an account by its account number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccountsByOwner lists a user's accounts. Each balance snapshot is
// refreshed from the ledger sum so callers never observe a stale value.
func (uc *AccountUseCase) ListAccountsByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	accounts, err := uc.accountRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		balance, err := uc.accountRepo.RefreshBalanceSnapshot(ctx, account.ID)
		if err != nil {
			return nil, err
		}

		account.Balance = balance
	}

	return accounts, nil
}

// Balance returns the authoritative balance of an account: the sum of all
// its ledger entries, 0.00 when none exist. The stored snapshot is never
// consulted here.
func (uc *AccountUseCase) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	sum, err := uc.entryRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.NormalizeAmount(sum), nil
}
