package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents a single immutable ledger entry. Positive amounts are
// credits, negative amounts are debits. TransferID is nil for entries that do
// not originate from a transfer, such as an initial deposit.
type Entry struct {
	CreatedAt   time.Time
	ID          string
	AccountID   string
	TransferID  *string
	Description string
	Amount      decimal.Decimal
}
