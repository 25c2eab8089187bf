package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/exchange_ledger/internal/repositories/database/kv"
)

// txLayer runs ledger row reads and writes inside a pgx transaction. Nested
// layers are pgx pseudo nested transactions, i.e. savepoints.
type txLayer struct {
	tx pgx.Tx
}

func (l *txLayer) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	var data []byte
	err := l.tx.QueryRow(ctx, `SELECT row_data FROM ledger_rows WHERE row_key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query ledger row: %w", err)
	}
	return data, true, nil
}

func (l *txLayer) Range(ctx context.Context, lower, upper []byte) ([]kv.Entry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if upper == nil {
		rows, err = l.tx.Query(ctx,
			`SELECT row_key, row_data FROM ledger_rows WHERE row_key >= $1 ORDER BY row_key`, lower)
	} else {
		rows, err = l.tx.Query(ctx,
			`SELECT row_key, row_data FROM ledger_rows WHERE row_key >= $1 AND row_key < $2 ORDER BY row_key`, lower, upper)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger rows: %w", err)
	}
	defer rows.Close()

	var entries []kv.Entry
	for rows.Next() {
		var e kv.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to read ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return entries, nil
}

func (l *txLayer) Set(ctx context.Context, key, value []byte) error {
	_, err := l.tx.Exec(ctx, `
		INSERT INTO ledger_rows (row_key, row_data) VALUES ($1, $2)
		ON CONFLICT (row_key) DO UPDATE SET row_data = EXCLUDED.row_data`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write ledger row: %w", err)
	}
	return nil
}

func (l *txLayer) Begin(ctx context.Context) (kv.Layer, error) {
	nested, err := l.tx.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create savepoint: %w", err)
	}
	return &txLayer{tx: nested}, nil
}

func (l *txLayer) Commit(ctx context.Context) error {
	return commit(ctx, l.tx)
}

func (l *txLayer) Rollback(ctx context.Context) error {
	return rollback(ctx, l.tx)
}
