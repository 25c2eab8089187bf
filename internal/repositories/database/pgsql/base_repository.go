// Package pgsql stores the ledger in PostgreSQL. All tables share one
// ledger_rows relation keyed by the encoded row key.
package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_ledger/internal/repositories/database/kv"
	"github.com/SscSPs/exchange_ledger/pkg/database"
)

// ledgerLockID is the advisory lock key every top-level transaction takes,
// so invocations against the same database run one at a time.
const ledgerLockID int64 = 0x6c6564676572

// LedgerStore implements portsrepo.LedgerStore on a pgx pool.
type LedgerStore struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.LedgerStore = (*LedgerStore)(nil)

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{Pool: pool}
}

// Begin starts a serializable transaction holding the ledger advisory lock.
func (r *LedgerStore) Begin(ctx context.Context) (portsrepo.LedgerTx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", ledgerLockID); err != nil {
		_ = tx.Rollback(ctx)
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to acquire ledger lock", err)
	}
	return kv.NewTx(&txLayer{tx: tx}), nil
}

// Close releases the pool.
func (r *LedgerStore) Close() error {
	database.ClosePgxPool(r.Pool)
	return nil
}

func commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}
