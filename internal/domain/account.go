package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountNumberLength is the width of system-generated account numbers.
// WideAccountNumberLength is the fallback width used when the regular
// space keeps colliding; the schema accepts both widths.
const (
	AccountNumberLength     = 12
	WideAccountNumberLength = 20
)

// Account represents a bank account owned by a user.
//
// Balance is a snapshot cached from the ledger sum. It is refreshed
// opportunistically on reads and must never be used for sufficiency checks;
// the ledger is the source of truth.
type Account struct {
	ID            string
	OwnerID       string
	AccountNumber string
	DisplayName   string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
