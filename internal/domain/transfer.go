package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the lifecycle state of a transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
)

// Transfer represents a double-entry money movement between two accounts.
// A completed transfer owns exactly two ledger entries whose amounts are
// exact negatives of each other.
type Transfer struct {
	CreatedAt      time.Time
	CompletedAt    *time.Time
	ID             string
	IdempotencyKey string
	FromAccountID  string
	ToAccountID    string
	Description    string
	Status         TransferStatus
	Amount         decimal.Decimal
}

// Validate checks the structural invariants of a transfer request.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Description == "" {
		return ErrEmptyDescription
	}

	return nil
}
