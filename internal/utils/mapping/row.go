package mapping

import (
	"fmt"

	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
)

// rowReader pulls typed columns out of a stored row, remembering the first
// shape mismatch so callers check a single error at the end.
type rowReader struct {
	row portsrepo.Row
	err error
}

func (r *rowReader) field(i int, kind portsrepo.FieldKind) portsrepo.Field {
	if r.err != nil {
		return portsrepo.Field{}
	}
	if i >= len(r.row) {
		r.err = fmt.Errorf("column %d missing from row of %d columns", i, len(r.row))
		return portsrepo.Field{}
	}
	if r.row[i].Kind != kind {
		r.err = fmt.Errorf("column %d has kind %d, want %d", i, r.row[i].Kind, kind)
		return portsrepo.Field{}
	}
	return r.row[i]
}

func (r *rowReader) textAt(i int) string { return r.field(i, portsrepo.FieldText).Str }
func (r *rowReader) intAt(i int) int64   { return r.field(i, portsrepo.FieldInt64).Int }
func (r *rowReader) boolAt(i int) bool   { return r.field(i, portsrepo.FieldBool).Bool }
