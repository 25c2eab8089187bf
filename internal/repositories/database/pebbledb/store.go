// Package pebbledb stores the ledger in an embedded Pebble database.
package pebbledb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_ledger/internal/repositories/database/kv"
)

// LedgerStore is a portsrepo.LedgerStore over a Pebble DB. Top-level
// transactions hold mu from Begin until Commit or Rollback, so calls against
// the same ledger run one at a time.
type LedgerStore struct {
	db *pebble.DB
	mu sync.Mutex
}

var _ portsrepo.LedgerStore = (*LedgerStore)(nil)

// Open opens (or creates) the database in dir.
func Open(dir string) (*LedgerStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	return &LedgerStore{db: db}, nil
}

// OpenInMemory returns a store backed by an in-memory filesystem. Nothing
// survives Close.
func OpenInMemory() (*LedgerStore, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("open in-memory pebble: %w", err)
	}
	return &LedgerStore{db: db}, nil
}

func (s *LedgerStore) Begin(ctx context.Context) (portsrepo.LedgerTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return kv.NewTx(&batchLayer{batch: s.db.NewIndexedBatch(), release: s.mu.Unlock}), nil
}

func (s *LedgerStore) Close() error {
	return s.db.Close()
}

// batchLayer is the top-level transaction: an indexed batch that reads
// through to the DB and commits with a synced write.
type batchLayer struct {
	batch   *pebble.Batch
	release func()
}

func (b *batchLayer) Get(_ context.Context, key []byte) ([]byte, bool, error) {
	val, closer, err := b.batch.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	return append([]byte(nil), val...), true, nil
}

func (b *batchLayer) Range(_ context.Context, lower, upper []byte) ([]kv.Entry, error) {
	iter, err := b.batch.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []kv.Entry
	for iter.First(); iter.Valid(); iter.Next() {
		entries = append(entries, kv.Entry{
			Key:   append([]byte(nil), iter.Key()...),
			Value: append([]byte(nil), iter.Value()...),
		})
	}
	return entries, iter.Error()
}

func (b *batchLayer) Set(_ context.Context, key, value []byte) error {
	return b.batch.Set(key, value, nil)
}

func (b *batchLayer) Begin(context.Context) (kv.Layer, error) {
	return kv.NewOverlay(b), nil
}

func (b *batchLayer) Commit(context.Context) error {
	defer b.finish()
	if err := b.batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit pebble batch: %w", err)
	}
	return nil
}

func (b *batchLayer) Rollback(context.Context) error {
	b.finish()
	return nil
}

func (b *batchLayer) finish() {
	_ = b.batch.Close()
	b.release()
}
