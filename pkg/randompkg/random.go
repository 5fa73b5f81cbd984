// Package randompkg provides functionality for generating random transaction data in tests.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// FloatBetween generates a random decimal number between min and max with up to 6 decimals,
// so callers also exercise rounding to the ledger scale.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*1_000_000) / 1_000_000
}

// ClientID generates a random client id from a small range so that clients repeat.
func ClientID() uint16 {
	return uint16(Intn(16) + 1)
}

// TxID generates a random transaction id.
func TxID() uint32 {
	return uint32(Intn(math.MaxUint32))
}

// Amount generates a random non-negative amount between min and max.
func Amount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max))
}

// MoneyAmountBetween generates a random amount of money between min and max as a string.
func MoneyAmountBetween(min, max float64) string {
	return Amount(min, max).String()
}
