package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

func TestAccountRepositoryCreateMapsUniqueViolation(t *testing.T) {
	ctx := context.Background()

	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("INSERT INTO accounts").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "idx_accounts_number"})
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer tx.Rollback(ctx)

	repo := NewAccountRepository(nil)
	err = repo.Create(ctx, tx, &domain.Account{
		ID:            "acc-1",
		OwnerID:       "user-1",
		AccountNumber: "111111111111",
		DisplayName:   "Checking",
		Balance:       decimal.Zero,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	})

	if !errors.Is(err, domain.ErrAccountNumberSpace) {
		t.Fatalf("expected ErrAccountNumberSpace on unique violation, got %v", err)
	}
}

func TestAccountRepositoryCreatePropagatesOtherErrors(t *testing.T) {
	ctx := context.Background()

	mockPool := newMockPool(t)
	mockErr := errors.New("connection reset")
	mockPool.ExpectBegin()
	mockPool.ExpectExec("INSERT INTO accounts").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(mockErr)
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer tx.Rollback(ctx)

	repo := NewAccountRepository(nil)
	err = repo.Create(ctx, tx, &domain.Account{
		ID:            "acc-1",
		OwnerID:       "user-1",
		AccountNumber: "111111111111",
		DisplayName:   "Checking",
		Balance:       decimal.Zero,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	})

	if !errors.Is(err, mockErr) {
		t.Fatalf("expected raw storage error, got %v", err)
	}
}
