package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction directions as seen from the account whose history is projected.
const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
)

// LedgerTransferRow is one row of the ledger/transfer join used by the
// history projection: a ledger entry together with its transfer and the
// account numbers of both sides.
type LedgerTransferRow struct {
	OccurredAt        time.Time
	EntryID           string
	EntryAccountID    string
	Description       string
	TransferID        string
	FromAccountID     string
	ToAccountID       string
	FromAccountNumber string
	ToAccountNumber   string
	Status            TransferStatus
	Amount            decimal.Decimal
}

// TransactionEntry is one item of a per-account activity feed. Amount is
// always reported positive; direction and counterparty carry the sign's
// meaning instead.
type TransactionEntry struct {
	OccurredAt                time.Time
	TransferID                string
	Direction                 string
	CounterpartyAccountNumber string
	Description               string
	Status                    TransferStatus
	Amount                    decimal.Decimal
}
