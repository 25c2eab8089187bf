package kv

import (
	"context"
	"fmt"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_ledger/internal/utils/rowcodec"
)

// Tx adapts a Layer to portsrepo.LedgerTx.
type Tx struct {
	layer Layer
	done  bool
}

var _ portsrepo.LedgerTx = (*Tx)(nil)

// NewTx wraps layer. The caller hands ownership of layer to the Tx.
func NewTx(layer Layer) *Tx {
	return &Tx{layer: layer}
}

func (t *Tx) Get(ctx context.Context, table portsrepo.Table, key portsrepo.Row) (portsrepo.Row, error) {
	if t.done {
		return nil, ErrTxDone
	}
	value, found, err := t.layer.Get(ctx, rowcodec.TableKey(table, key))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table.Name, err)
	}
	if !found {
		return nil, fmt.Errorf("%s %v: %w", table.Name, key, apperrors.ErrNotFound)
	}
	row, err := rowcodec.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table.Name, err)
	}
	return row, nil
}

func (t *Tx) Scan(ctx context.Context, table portsrepo.Table, prefix portsrepo.Row) ([]portsrepo.Row, error) {
	if t.done {
		return nil, ErrTxDone
	}
	lower := rowcodec.TableKey(table, prefix)
	entries, err := t.layer.Range(ctx, lower, rowcodec.PrefixEnd(lower))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table.Name, err)
	}
	rows := make([]portsrepo.Row, 0, len(entries))
	for _, e := range entries {
		row, err := rowcodec.Decode(e.Value)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table.Name, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (t *Tx) Insert(ctx context.Context, table portsrepo.Table, row portsrepo.Row) error {
	return t.write(ctx, table, row, false)
}

func (t *Tx) Replace(ctx context.Context, table portsrepo.Table, row portsrepo.Row) error {
	return t.write(ctx, table, row, true)
}

func (t *Tx) write(ctx context.Context, table portsrepo.Table, row portsrepo.Row, mustExist bool) error {
	if t.done {
		return ErrTxDone
	}
	if err := table.Validate(row); err != nil {
		return err
	}
	key := rowcodec.TableKey(table, table.Key(row))
	_, found, err := t.layer.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("write %s: %w", table.Name, err)
	}
	switch {
	case mustExist && !found:
		return fmt.Errorf("%s %v: %w", table.Name, table.Key(row), apperrors.ErrRowNotFound)
	case !mustExist && found:
		return fmt.Errorf("%s %v: %w", table.Name, table.Key(row), apperrors.ErrDuplicateKey)
	}
	if err := t.layer.Set(ctx, key, rowcodec.Encode(nil, row)); err != nil {
		return fmt.Errorf("write %s: %w", table.Name, err)
	}
	return nil
}

func (t *Tx) Begin(ctx context.Context) (portsrepo.LedgerTx, error) {
	if t.done {
		return nil, ErrTxDone
	}
	child, err := t.layer.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin nested transaction: %w", err)
	}
	return NewTx(child), nil
}

func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	return t.layer.Commit(ctx)
}

// Rollback discards the writes. After Commit it does nothing.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	return t.layer.Rollback(ctx)
}
