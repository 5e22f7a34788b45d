package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/iho/gobank/internal/domain"
)

// AccountNumberGenerator draws random fixed-length digit strings from
// crypto/rand. Uniqueness is the caller's problem; the generator only
// guarantees an unpredictable, well-formed number.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

var digits = []byte("0123456789")

// Generate returns a random 12-digit account number.
func (g *AccountNumberGenerator) Generate() (string, error) {
	return g.draw(domain.AccountNumberLength)
}

// GenerateWide returns a random 20-digit account number. The wider space
// makes repeated collisions vanishingly unlikely even when the 12-digit
// space is saturated.
func (g *AccountNumberGenerator) GenerateWide() (string, error) {
	return g.draw(domain.WideAccountNumberLength)
}

func (g *AccountNumberGenerator) draw(length int) (string, error) {
	number := make([]byte, length)
	max := big.NewInt(int64(len(digits)))

	for i := range number {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		number[i] = digits[n.Int64()]
	}

	return string(number), nil
}
