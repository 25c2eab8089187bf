// Package rowcodec encodes ledger rows into byte strings whose lexicographic
// order matches the order of the field tuples. Each field is self-delimiting,
// so the encoding of a key prefix is a byte prefix of the full key.
package rowcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
)

const (
	escape     byte = 0x00
	escapedNul byte = 0xFF
	terminator byte = 0x01
)

var ErrCorrupt = errors.New("rowcodec: corrupt encoding")

// Encode appends the encoding of every field of row to dst.
func Encode(dst []byte, row portsrepo.Row) []byte {
	for _, f := range row {
		dst = append(dst, byte(f.Kind))
		switch f.Kind {
		case portsrepo.FieldText:
			for i := 0; i < len(f.Str); i++ {
				c := f.Str[i]
				if c == escape {
					dst = append(dst, escape, escapedNul)
					continue
				}
				dst = append(dst, c)
			}
			dst = append(dst, escape, terminator)
		case portsrepo.FieldInt64:
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], uint64(f.Int)^(1<<63))
			dst = append(dst, buf[:]...)
		case portsrepo.FieldBool:
			if f.Bool {
				dst = append(dst, 1)
			} else {
				dst = append(dst, 0)
			}
		}
	}
	return dst
}

// Decode parses a full encoding back into a row.
func Decode(b []byte) (portsrepo.Row, error) {
	var row portsrepo.Row
	for len(b) > 0 {
		kind := portsrepo.FieldKind(b[0])
		b = b[1:]
		switch kind {
		case portsrepo.FieldText:
			var s bytes.Buffer
			for {
				if len(b) < 1 {
					return nil, ErrCorrupt
				}
				c := b[0]
				if c != escape {
					s.WriteByte(c)
					b = b[1:]
					continue
				}
				if len(b) < 2 {
					return nil, ErrCorrupt
				}
				if b[1] == terminator {
					b = b[2:]
					break
				}
				if b[1] != escapedNul {
					return nil, ErrCorrupt
				}
				s.WriteByte(escape)
				b = b[2:]
			}
			row = append(row, portsrepo.Text(s.String()))
		case portsrepo.FieldInt64:
			if len(b) < 8 {
				return nil, ErrCorrupt
			}
			row = append(row, portsrepo.Int64(int64(binary.BigEndian.Uint64(b[:8])^(1<<63))))
			b = b[8:]
		case portsrepo.FieldBool:
			if len(b) < 1 {
				return nil, ErrCorrupt
			}
			row = append(row, portsrepo.Bool(b[0] == 1))
			b = b[1:]
		default:
			return nil, fmt.Errorf("%w: unknown field kind %d", ErrCorrupt, kind)
		}
	}
	return row, nil
}

// TableKey is the storage key of a row (or key prefix) of table.
func TableKey(table portsrepo.Table, key portsrepo.Row) []byte {
	dst := Encode(nil, portsrepo.Row{portsrepo.Text(table.Name)})
	return Encode(dst, key)
}

// PrefixEnd returns the smallest key greater than every key starting with
// prefix, or nil if there is none.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
