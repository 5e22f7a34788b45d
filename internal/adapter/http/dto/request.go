package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

// SignupRequest represents a request to register a user.
type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *SignupRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		FullName: r.FullName,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	DisplayName    string          `json:"display_name"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// ToUseCaseInput converts to use case input for the given owner.
func (r *OpenAccountRequest) ToUseCaseInput(ownerID string) usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		OwnerID:        ownerID,
		DisplayName:    r.DisplayName,
		InitialDeposit: r.InitialDeposit,
	}
}

// TransferRequest represents a request to move money between accounts,
// addressed by account number.
type TransferRequest struct {
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}
