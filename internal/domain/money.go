package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places all monetary amounts carry.
const MoneyScale = 2

// NormalizeAmount rounds an externally supplied amount to MoneyScale places,
// half away from zero. Every amount is normalized before it is stored or
// compared.
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// ZeroAmount is the canonical 0.00 balance for an account with no entries.
func ZeroAmount() decimal.Decimal {
	return decimal.Zero.Round(MoneyScale)
}
