// Package kv implements the ledger transaction contract on top of any
// transactional ordered byte map. Backends supply a Layer; rows are stored
// under rowcodec keys so prefix scans become byte range scans.
package kv

import (
	"context"
	"errors"
)

// ErrTxDone is returned when a finished transaction is used.
var ErrTxDone = errors.New("transaction already committed or rolled back")

// Entry is one key/value pair returned by a range read.
type Entry struct {
	Key   []byte
	Value []byte
}

// Layer is one level of a transaction stack. Reads observe the layer's own
// writes and those of its ancestors.
type Layer interface {
	Get(ctx context.Context, key []byte) (value []byte, found bool, err error)

	// Range returns entries with lower <= key < upper in key order. A nil
	// upper is unbounded.
	Range(ctx context.Context, lower, upper []byte) ([]Entry, error)

	Set(ctx context.Context, key, value []byte) error

	// Begin opens a child layer whose writes reach this one only on Commit.
	Begin(ctx context.Context) (Layer, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
