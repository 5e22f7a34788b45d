package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse represents a login response.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	DisplayName   string          `json:"display_name"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		DisplayName:   a.DisplayName,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps the account list.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID                string                `json:"id"`
	IdempotencyKey    string                `json:"idempotency_key"`
	FromAccountNumber string                `json:"from_account_number"`
	ToAccountNumber   string                `json:"to_account_number"`
	Amount            decimal.Decimal       `json:"amount"`
	Description       string                `json:"description"`
	Status            domain.TransferStatus `json:"status"`
	CreatedAt         time.Time             `json:"created_at"`
	CompletedAt       *time.Time            `json:"completed_at,omitempty"`
}

// TransferFromDomain converts a domain transfer to a response with both
// account numbers resolved.
func TransferFromDomain(t *domain.Transfer, fromNumber, toNumber string) *TransferResponse {
	return &TransferResponse{
		ID:                t.ID,
		IdempotencyKey:    t.IdempotencyKey,
		FromAccountNumber: fromNumber,
		ToAccountNumber:   toNumber,
		Amount:            t.Amount,
		Description:       t.Description,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
		CompletedAt:       t.CompletedAt,
	}
}

// TransactionResponse represents one item of the account activity feed.
type TransactionResponse struct {
	TransferID                string                `json:"transfer_id"`
	Direction                 string                `json:"direction"`
	CounterpartyAccountNumber string                `json:"counterparty_account_number"`
	Amount                    decimal.Decimal       `json:"amount"`
	Description               string                `json:"description"`
	Status                    domain.TransferStatus `json:"status"`
	OccurredAt                time.Time             `json:"occurred_at"`
}

// TransactionFromDomain converts a projected history entry to a response.
func TransactionFromDomain(e *domain.TransactionEntry) *TransactionResponse {
	return &TransactionResponse{
		TransferID:                e.TransferID,
		Direction:                 e.Direction,
		CounterpartyAccountNumber: e.CounterpartyAccountNumber,
		Amount:                    e.Amount,
		Description:               e.Description,
		Status:                    e.Status,
		OccurredAt:                e.OccurredAt,
	}
}

// TransactionsFromDomain converts projected history entries to responses.
func TransactionsFromDomain(entries []*domain.TransactionEntry) []*TransactionResponse {
	result := make([]*TransactionResponse, len(entries))
	for i, e := range entries {
		result[i] = TransactionFromDomain(e)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
