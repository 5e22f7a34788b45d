package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransfer_Validate(t *testing.T) {
	tests := []struct {
		name        string
		fromID      string
		toID        string
		amount      decimal.Decimal
		description string
		expectError error
	}{
		{
			name:        "valid transfer",
			fromID:      "account-1",
			toID:        "account-2",
			amount:      decimal.NewFromInt(100),
			description: "rent",
			expectError: nil,
		},
		{
			name:        "same account",
			fromID:      "account-1",
			toID:        "account-1",
			amount:      decimal.NewFromInt(100),
			description: "rent",
			expectError: ErrSameAccount,
		},
		{
			name:        "zero amount",
			fromID:      "account-1",
			toID:        "account-2",
			amount:      decimal.Zero,
			description: "rent",
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			fromID:      "account-1",
			toID:        "account-2",
			amount:      decimal.NewFromInt(-100),
			description: "rent",
			expectError: ErrInvalidAmount,
		},
		{
			name:        "empty description",
			fromID:      "account-1",
			toID:        "account-2",
			amount:      decimal.NewFromInt(100),
			description: "",
			expectError: ErrEmptyDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer := &Transfer{
				FromAccountID: tt.fromID,
				ToAccountID:   tt.toID,
				Amount:        tt.amount,
				Description:   tt.description,
			}

			err := transfer.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && err != tt.expectError {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}
