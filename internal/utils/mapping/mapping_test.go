package mapping

import (
	"testing"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeLegRowKeepsOrderDetail(t *testing.T) {
	order := domain.Order{
		UUID:        "o-1",
		Account:     "alice",
		SrcCurrency: "CNY",
		SrcCount:    100,
		DesCurrency: "GLD",
		DesCount:    10,
		IsBuyAll:    true,
		RawUUID:     "o-1",
		Metadata:    "{\"note\":\"x\"}",
		FinalCost:   95,
	}
	leg := domain.NewTradeLeg(order)

	row, err := ToRowTradeLeg(leg)
	require.NoError(t, err)
	assert.Len(t, row, 6)
	assert.Equal(t, "alice", row[0].Str)
	assert.Equal(t, "o-1", row[4].Str)

	back, err := ToDomainTradeLeg(row)
	require.NoError(t, err)
	assert.Equal(t, leg, back)
}

func TestToDomainAssetRejectsWrongShape(t *testing.T) {
	_, err := ToDomainAsset(portsrepo.Row{portsrepo.Text("alice"), portsrepo.Text("GLD"), portsrepo.Text("oops"), portsrepo.Int64(0)})
	assert.Error(t, err)

	_, err = ToDomainAsset(portsrepo.Row{portsrepo.Text("alice")})
	assert.Error(t, err)
}

func TestLockLogColumns(t *testing.T) {
	log := domain.LockLog{Owner: "alice", Currency: "GLD", OrderID: "order1", IsLock: true, Amount: 100, LockTime: 7}
	row := ToRowLockLog(log)
	assert.Equal(t, portsrepo.Bool(true), row[3])

	back, err := ToDomainLockLog(row)
	require.NoError(t, err)
	assert.Equal(t, log, back)
}
