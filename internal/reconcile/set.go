// Package reconcile implements the field-reconciliation engine: per-entity
// reconcilers that coalesce aliased source columns, normalize loosely-typed
// values, validate and de-duplicate records, plus the referential integrity
// filter and the fork-join pipeline driver that ties the three entities
// together.
package reconcile

import (
	"github.com/zeebo/xxh3"

	"reconcile/pkg/records"
)

// Set is one canonical record set: a fixed column order plus the records that
// survived reconciliation. Sets are immutable once produced; the integrity
// filter builds a new Set rather than mutating one.
type Set struct {
	Name    string
	Columns []string
	Records []records.Record
}

func (s Set) Len() int { return len(s.Records) }

// Keys returns the distinct canonical string forms of the named field.
func (s Set) Keys(field string) map[string]struct{} {
	out := make(map[string]struct{}, len(s.Records))
	for _, rec := range s.Records {
		if v := rec.Get(field); v != nil {
			out[records.String(v)] = struct{}{}
		}
	}
	return out
}

// Fingerprint hashes the set's full contents in column-then-row order. Two
// runs over the same raw input must produce the same fingerprint; the driver
// logs it so determinism regressions show up in plain log diffs.
func (s Set) Fingerprint() uint64 {
	h := xxh3.New()
	h.WriteString(s.Name)
	for _, col := range s.Columns {
		h.WriteString("\x1f")
		h.WriteString(col)
	}
	for _, rec := range s.Records {
		h.WriteString("\x1e")
		for _, col := range s.Columns {
			h.WriteString("\x1f")
			h.WriteString(records.String(rec.Get(col)))
		}
	}
	return h.Sum64()
}

// Rows renders the set as positional rows aligned to Columns, the shape the
// storage loader consumes.
func (s Set) Rows() [][]any {
	rows := make([][]any, len(s.Records))
	for i, rec := range s.Records {
		row := make([]any, len(s.Columns))
		for j, col := range s.Columns {
			row[j] = rec.Get(col)
		}
		rows[i] = row
	}
	return rows
}
