package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_ledger/internal/repositories/database/pebbledb"
	"github.com/SscSPs/exchange_ledger/internal/repositories/ledger"
)

func newTx(t *testing.T) portsrepo.LedgerTx {
	t.Helper()
	store, err := pebbledb.OpenInMemory()
	require.NoError(t, err)
	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
		_ = store.Close()
	})
	return tx
}

func TestCurrencyRepository(t *testing.T) {
	ctx := context.Background()
	repos := ledger.NewRepositoryProvider(newTx(t))

	_, err := repos.CurrencyRepo.FindCurrencyByID(ctx, "GLD")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	gld := domain.Currency{ID: "GLD", TotalIssued: 1000, AvailableToAssign: 1000, Creator: "creatorA", CreatedAt: 1}
	require.NoError(t, repos.CurrencyRepo.InsertCurrency(ctx, gld))
	assert.ErrorIs(t, repos.CurrencyRepo.InsertCurrency(ctx, gld), apperrors.ErrDuplicateKey)

	got, err := repos.CurrencyRepo.FindCurrencyByID(ctx, "GLD")
	require.NoError(t, err)
	assert.Equal(t, gld, *got)

	require.NoError(t, repos.CurrencyRepo.AppendReleaseLog(ctx, domain.ReleaseLog{Currency: "GLD", Count: 1000, ReleaseTime: 1}))
	require.NoError(t, repos.CurrencyRepo.AppendReleaseLog(ctx, domain.ReleaseLog{Currency: "GLD", Count: 5, ReleaseTime: 2}))
	assert.ErrorIs(t,
		repos.CurrencyRepo.AppendReleaseLog(ctx, domain.ReleaseLog{Currency: "GLD", Count: 5, ReleaseTime: 2}),
		apperrors.ErrDuplicateKey)
}

func TestLockLogRepositoryDistinguishesDirection(t *testing.T) {
	ctx := context.Background()
	repos := ledger.NewRepositoryProvider(newTx(t))

	lock := domain.LockLog{Owner: "x", Currency: "GLD", OrderID: "order1", IsLock: true, Amount: 100, LockTime: 1}
	require.NoError(t, repos.LockLogRepo.AppendLockLog(ctx, lock))

	got, err := repos.LockLogRepo.FindLockLog(ctx, "x", "GLD", "order1", true)
	require.NoError(t, err)
	assert.Equal(t, lock, *got)

	_, err = repos.LockLogRepo.FindLockLog(ctx, "x", "GLD", "order1", false)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTradeLogRepository(t *testing.T) {
	ctx := context.Background()
	repos := ledger.NewRepositoryProvider(newTx(t))

	fill := func(uuid, raw string, cost int64) domain.TradeLeg {
		return domain.NewTradeLeg(domain.Order{
			UUID: uuid, Account: "x", SrcCurrency: "CNY", DesCurrency: "GLD",
			DesCount: 1, RawUUID: raw, FinalCost: cost,
		})
	}

	settled, err := repos.TradeLogRepo.IsSettled(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, settled)

	require.NoError(t, repos.TradeLogRepo.AppendLeg(ctx, fill("f1", "parent", 10)))
	require.NoError(t, repos.TradeLogRepo.AppendLeg(ctx, fill("f2", "parent", 20)))
	require.NoError(t, repos.TradeLogRepo.AppendLeg(ctx, fill("g1", "parent2", 30)))

	settled, err = repos.TradeLogRepo.IsSettled(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, settled)

	legs, err := repos.TradeLogRepo.ListLegs(ctx, "x", "CNY", "GLD", "parent")
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, int64(10), legs[0].Detail.FinalCost)
	assert.Equal(t, int64(20), legs[1].Detail.FinalCost)

	assert.ErrorIs(t, repos.TradeLogRepo.AppendLeg(ctx, fill("f1", "parent", 10)), apperrors.ErrDuplicateKey)
}
