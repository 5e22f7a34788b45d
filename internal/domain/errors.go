package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrNegativeDeposit    = errors.New("initial deposit cannot be negative")
	ErrAccountNumberSpace = errors.New("unable to allocate a unique account number")

	// Transfer errors
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrEmptyDescription  = errors.New("description cannot be empty")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateTransfer = errors.New("transfer with this idempotency key already exists")
	ErrTransferNotFound  = errors.New("transfer not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
