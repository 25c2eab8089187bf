package repositories

import (
	"context"
	"fmt"
)

// FieldKind is the type of a single column value.
type FieldKind uint8

const (
	FieldText FieldKind = iota + 1
	FieldInt64
	FieldBool
)

// Field is one typed column value.
type Field struct {
	Kind FieldKind
	Str  string
	Int  int64
	Bool bool
}

func Text(s string) Field { return Field{Kind: FieldText, Str: s} }
func Int64(v int64) Field { return Field{Kind: FieldInt64, Int: v} }
func Bool(b bool) Field   { return Field{Kind: FieldBool, Bool: b} }

func (f Field) String() string {
	switch f.Kind {
	case FieldText:
		return f.Str
	case FieldInt64:
		return fmt.Sprintf("%d", f.Int)
	case FieldBool:
		return fmt.Sprintf("%t", f.Bool)
	default:
		return "<invalid>"
	}
}

// Row is an ordered tuple of fields. The first KeyColumns fields of a table
// row form its key.
type Row []Field

// Table describes a keyed table.
type Table struct {
	Name       string
	KeyColumns int
	Columns    int
}

// Key returns the key part of row.
func (t Table) Key(row Row) Row {
	return row[:t.KeyColumns]
}

// Validate checks that row has the table's shape.
func (t Table) Validate(row Row) error {
	if len(row) != t.Columns {
		return fmt.Errorf("table %s expects %d columns, got %d", t.Name, t.Columns, len(row))
	}
	return nil
}

// LedgerReader reads rows. Reads observe the writes of the enclosing
// transaction.
type LedgerReader interface {
	// Get returns the row with exactly this key, or apperrors.ErrNotFound.
	Get(ctx context.Context, table Table, key Row) (Row, error)

	// Scan returns all rows whose key starts with prefix, ordered by key.
	Scan(ctx context.Context, table Table, prefix Row) ([]Row, error)
}

// LedgerWriter writes rows.
type LedgerWriter interface {
	// Insert adds a new row, failing with apperrors.ErrDuplicateKey if the key exists.
	Insert(ctx context.Context, table Table, row Row) error

	// Replace overwrites an existing row, failing with apperrors.ErrRowNotFound if absent.
	Replace(ctx context.Context, table Table, row Row) error
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a nested transaction (a savepoint) inside this one.
	Begin(ctx context.Context) (LedgerTx, error)

	// Commit makes the writes visible to the parent (or durable for a top-level tx).
	Commit(ctx context.Context) error

	// Rollback discards the writes. Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error
}

// LedgerTx is one atomic unit of work against the ledger tables.
type LedgerTx interface {
	LedgerReader
	LedgerWriter
	TransactionManager
}

// LedgerStore opens top-level transactions. Top-level transactions are
// serialized against each other.
type LedgerStore interface {
	Begin(ctx context.Context) (LedgerTx, error)
	Close() error
}
