package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already two places",
			input:    "10.00",
			expected: "10.00",
		},
		{
			name:     "half rounds up",
			input:    "10.005",
			expected: "10.01",
		},
		{
			name:     "below half rounds down",
			input:    "10.004",
			expected: "10.00",
		},
		{
			name:     "above half rounds up",
			input:    "10.006",
			expected: "10.01",
		},
		{
			name:     "integer gains scale",
			input:    "100",
			expected: "100.00",
		},
		{
			name:     "long fraction",
			input:    "0.999999",
			expected: "1.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decimal.RequireFromString(tt.input)
			want := decimal.RequireFromString(tt.expected)

			got := NormalizeAmount(in)

			if !got.Equal(want) {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestZeroAmount(t *testing.T) {
	if !ZeroAmount().IsZero() {
		t.Errorf("expected zero, got %s", ZeroAmount())
	}
}
