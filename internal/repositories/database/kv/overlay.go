package kv

import (
	"bytes"
	"context"
	"sort"
)

// Overlay buffers writes in memory above a parent layer. Backends without
// native savepoints use it for nested transactions.
type Overlay struct {
	parent Layer
	writes map[string][]byte
}

func NewOverlay(parent Layer) *Overlay {
	return &Overlay{parent: parent, writes: make(map[string][]byte)}
}

func (o *Overlay) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	if v, ok := o.writes[string(key)]; ok {
		return v, true, nil
	}
	return o.parent.Get(ctx, key)
}

func (o *Overlay) Range(ctx context.Context, lower, upper []byte) ([]Entry, error) {
	base, err := o.parent.Range(ctx, lower, upper)
	if err != nil {
		return nil, err
	}
	if len(o.writes) == 0 {
		return base, nil
	}

	merged := make(map[string][]byte, len(base)+len(o.writes))
	for _, e := range base {
		merged[string(e.Key)] = e.Value
	}
	for k, v := range o.writes {
		kb := []byte(k)
		if bytes.Compare(kb, lower) < 0 || (upper != nil && bytes.Compare(kb, upper) >= 0) {
			continue
		}
		merged[k] = v
	}
	return sortedEntries(merged), nil
}

func (o *Overlay) Set(_ context.Context, key, value []byte) error {
	o.writes[string(key)] = append([]byte(nil), value...)
	return nil
}

func (o *Overlay) Begin(context.Context) (Layer, error) {
	return NewOverlay(o), nil
}

// Commit pushes the buffered writes into the parent in key order.
func (o *Overlay) Commit(ctx context.Context) error {
	for _, e := range sortedEntries(o.writes) {
		if err := o.parent.Set(ctx, e.Key, e.Value); err != nil {
			return err
		}
	}
	o.writes = nil
	return nil
}

func (o *Overlay) Rollback(context.Context) error {
	o.writes = nil
	return nil
}

func sortedEntries(m map[string][]byte) []Entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Key: []byte(k), Value: m[k]}
	}
	return out
}
