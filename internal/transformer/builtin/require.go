package builtin

import (
	"fmt"

	"reconcile/pkg/records"
)

// Rejected describes one record dropped by a filtering stage. Rejections are
// observable through the optional sinks for tests and counters; the pipeline
// itself only counts them.
type Rejected struct {
	Record records.Record
	Stage  string
	Reason string
}

// Require drops records with a nil value in any essential field.
type Require struct {
	Fields []string
	Reject func(Rejected)
}

func (r Require) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		missing := ""
		for _, f := range r.Fields {
			if rec.Get(f) == nil {
				missing = f
				break
			}
		}
		if missing == "" {
			out = append(out, rec)
			continue
		}
		if r.Reject != nil {
			r.Reject(Rejected{Record: rec, Stage: "require", Reason: fmt.Sprintf("essential field %q is null", missing)})
		}
	}
	return out
}

// DropIf drops records matching When. It carries entity-specific ad hoc rules
// such as "a customer must have at least one contact channel".
type DropIf struct {
	Reason string
	When   func(records.Record) bool
	Reject func(Rejected)
}

func (d DropIf) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		if !d.When(rec) {
			out = append(out, rec)
			continue
		}
		if d.Reject != nil {
			d.Reject(Rejected{Record: rec, Stage: "rule", Reason: d.Reason})
		}
	}
	return out
}

// Project builds the canonical output: exactly Columns, in order. Fields not
// listed are discarded; listed fields absent from the record surface as nil.
type Project struct {
	Columns []string
}

func (p Project) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, len(in))
	for i, rec := range in {
		proj := make(records.Record, len(p.Columns))
		for _, col := range p.Columns {
			proj[col] = rec.Get(col)
		}
		out[i] = proj
	}
	return out
}

// AllNull reports whether every listed field of rec is nil. Helper for DropIf
// predicates.
func AllNull(rec records.Record, fields ...string) bool {
	for _, f := range fields {
		if rec.Get(f) != nil {
			return false
		}
	}
	return true
}
