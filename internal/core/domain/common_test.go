package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAmounts(t *testing.T) {
	sum, ok := AddAmounts(2, 3)
	assert.True(t, ok)
	assert.Equal(t, int64(5), sum)

	sum, ok = AddAmounts(math.MaxInt64-1, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, ok = AddAmounts(math.MaxInt64, 1)
	assert.False(t, ok)
}

func TestAssignmentTotalOverflow(t *testing.T) {
	total, ok := Assignment{Assigns: []Distribution{{Count: 4}, {Count: 6}}}.Total()
	assert.True(t, ok)
	assert.Equal(t, int64(10), total)

	_, ok = Assignment{Assigns: []Distribution{{Count: math.MaxInt64}, {Count: 2}}}.Total()
	assert.False(t, ok)
}

func TestCurrencyReleaseOverflowLeavesCurrencyUnchanged(t *testing.T) {
	c := Currency{TotalIssued: 10, AvailableToAssign: 4}
	assert.False(t, c.Release(math.MaxInt64))
	assert.Equal(t, Currency{TotalIssued: 10, AvailableToAssign: 4}, c)

	assert.True(t, c.Release(5))
	assert.Equal(t, int64(15), c.TotalIssued)
	assert.Equal(t, int64(9), c.AvailableToAssign)
}

func TestAssetBounds(t *testing.T) {
	a := Asset{Available: 5, Locked: math.MaxInt64}
	assert.False(t, a.CanLock(5))

	a = Asset{Available: math.MaxInt64, Locked: 5}
	assert.False(t, a.CanUnlock(5))
	assert.False(t, a.Credit(1))
	assert.Equal(t, int64(math.MaxInt64), a.Available)

	a = Asset{Available: 1}
	assert.True(t, a.Credit(2))
	assert.Equal(t, int64(3), a.Available)
}
