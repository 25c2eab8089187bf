// Package amount converts human readable decimal amounts to the fixed-point
// integers the ledger stores, and back.
package amount

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits a ledger unit carries.
const Places = 6

var scale = decimal.New(1, Places)

// ToUnits parses s and scales it to ledger units. Amounts with more than
// Places fractional digits are rejected rather than rounded.
func ToUnits(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// FromDecimal scales d to ledger units.
func FromDecimal(d decimal.Decimal) (int64, error) {
	scaled := d.Mul(scale)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), Places)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s is out of range", d.String())
	}
	return scaled.IntPart(), nil
}

// FromUnits converts ledger units back to a decimal.
func FromUnits(units int64) decimal.Decimal {
	return decimal.New(units, -Places)
}

// Format renders ledger units with exactly Places fractional digits.
func Format(units int64) string {
	return FromUnits(units).StringFixed(Places)
}
