package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUnits(t *testing.T) {
	cases := map[string]int64{
		"1":         1_000_000,
		"0.000001":  1,
		"12.5":      12_500_000,
		"-3.25":     -3_250_000,
		"0":         0,
		"100.10000": 100_100_000,
	}
	for in, want := range cases {
		got, err := ToUnits(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestToUnitsRejects(t *testing.T) {
	for _, in := range []string{"abc", "", "0.0000001", "1e40"} {
		_, err := ToUnits(in)
		assert.Error(t, err, in)
	}
}

func TestFromUnitsAndFormat(t *testing.T) {
	assert.True(t, decimal.RequireFromString("1.5").Equal(FromUnits(1_500_000)))
	assert.Equal(t, "0.000001", Format(1))
	assert.Equal(t, "-2.000000", Format(-2_000_000))
}
