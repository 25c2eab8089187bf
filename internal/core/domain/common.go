package domain

import "math"

// Built-in currencies exist from genesis and can't be re-issued through
// releaseCurrency.
const (
	CNY = "CNY"
	USD = "USD"

	// SystemCreator is the creator credential recorded for genesis currencies.
	SystemCreator = "system"
)

// BuiltinCurrencies lists the currencies seeded at genesis.
var BuiltinCurrencies = []string{CNY, USD}

// IsBuiltinCurrency reports whether id names a genesis currency.
func IsBuiltinCurrency(id string) bool {
	for _, b := range BuiltinCurrencies {
		if id == b {
			return true
		}
	}
	return false
}

// AddAmounts returns a+b for non-negative amounts. ok is false when the sum
// does not fit in an int64.
func AddAmounts(a, b int64) (sum int64, ok bool) {
	if b > math.MaxInt64-a {
		return 0, false
	}
	return a + b, true
}
