package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// TransferUseCase orchestrates atomic double-entry transfers.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	entryRepo    EntryRepository
	idGen        IDGenerator
	retrier      Retrier
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		idGen:        idGen,
		retrier:      retrier,
	}
}

// ExecuteTransferInput represents input for executing a transfer.
type ExecuteTransferInput struct {
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	Description    string
	IdempotencyKey string
}

// ExecuteTransfer moves money between two accounts as a pair of ledger
// entries written in a single transaction. A missing idempotency key is
// replaced by a generated one. The uniqueness constraint on the key in the
// store is the actual duplicate enforcement; the lookup here is a fast path.
func (uc *TransferUseCase) ExecuteTransfer(ctx context.Context, input ExecuteTransferInput) (*domain.Transfer, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	amount := domain.NormalizeAmount(input.Amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrEmptyDescription
	}

	key := input.IdempotencyKey
	if key == "" {
		key = uc.idGen.Generate()
	}

	existing, err := uc.transferRepo.GetByIdempotencyKey(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrTransferNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateTransfer
	}

	var transfer *domain.Transfer

	err = uc.retrier.Retry(ctx, func() error {
		t, err := uc.execute(ctx, input.FromAccountID, input.ToAccountID, amount, description, key)
		if err != nil {
			return err
		}

		transfer = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// execute runs the five writes of a transfer in one transaction: transfer
// insert, debit entry, credit entry, status update, snapshot refresh. Both
// account rows are locked in sorted order (deadlock prevention), which also
// serializes the sufficiency check against concurrent debits of the same
// source account.
func (uc *TransferUseCase) execute(
	ctx context.Context,
	fromAccountID, toAccountID string,
	amount decimal.Decimal,
	description, idempotencyKey string,
) (*domain.Transfer, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := []string{fromAccountID, toAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	// Authoritative balance from the ledger, inside the lock. The snapshot
	// column is never trusted for the sufficiency check.
	fromBalance, err := uc.entryRepo.SumByAccountTx(ctx, tx, fromAccountID)
	if err != nil {
		return nil, err
	}

	if fromBalance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	toBalance, err := uc.entryRepo.SumByAccountTx(ctx, tx, toAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transfer := &domain.Transfer{
		ID:             uc.idGen.Generate(),
		IdempotencyKey: idempotencyKey,
		FromAccountID:  fromAccountID,
		ToAccountID:    toAccountID,
		Amount:         amount,
		Description:    description,
		Status:         domain.TransferStatusPending,
		CreatedAt:      now,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	// A concurrent request with the same key fails here on the unique
	// constraint and surfaces as ErrDuplicateTransfer.
	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	debit := &domain.Entry{
		ID:          uc.idGen.Generate(),
		AccountID:   fromAccountID,
		TransferID:  &transfer.ID,
		Amount:      amount.Neg(),
		Description: description,
		CreatedAt:   now,
	}

	if err := uc.entryRepo.Create(ctx, tx, debit); err != nil {
		return nil, err
	}

	credit := &domain.Entry{
		ID:          uc.idGen.Generate(),
		AccountID:   toAccountID,
		TransferID:  &transfer.ID,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	}

	if err := uc.entryRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.MarkCompleted(ctx, tx, transfer.ID, now); err != nil {
		return nil, err
	}

	// Refresh the cached snapshots while the rows are still locked.
	if err := uc.accountRepo.UpdateBalanceSnapshot(ctx, tx, fromAccountID, fromBalance.Sub(amount), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalanceSnapshot(ctx, tx, toAccountID, toBalance.Add(amount), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	transfer.Status = domain.TransferStatusCompleted
	transfer.CompletedAt = &now

	return transfer, nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// GetTransferByKey retrieves a transfer by its idempotency key, letting a
// caller that hit ErrDuplicateTransfer fetch the already-processed result.
func (uc *TransferUseCase) GetTransferByKey(ctx context.Context, key string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByIdempotencyKey(ctx, key)
}

// ListTransfersByAccountInput represents input for listing transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists transfers where the account is either side.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.Transfer, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.transferRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
