// Package builtin contains the reusable record transformers that make up an
// entity reconciliation: alias coalescing, per-field normalization, blank and
// default handling, essential-field filtering, de-duplication, and canonical
// projection.
package builtin

import (
	"reconcile/pkg/records"
)

// CoalescePair declares one canonical field fed by an ordered list of source
// aliases. The target's own value has highest precedence; aliases are
// consulted left to right.
type CoalescePair struct {
	Target  string
	Aliases []string

	// AsString casts the winning value to its canonical string form before it
	// is written back. Required when the same logical field arrives as text in
	// one source and as a number in another (e.g. IDs, postal codes), so that
	// downstream comparisons happen on one representation.
	AsString bool
}

// Coalesce merges aliased source fields into canonical fields by
// first-non-null precedence. Pairs are independent: no pair writes to another
// pair's alias, so declaration order does not matter.
type Coalesce struct {
	Pairs []CoalescePair
}

func (c Coalesce) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		for _, p := range c.Pairs {
			v := rec.Get(p.Target)
			if v == nil {
				for _, alias := range p.Aliases {
					if av := rec.Get(alias); av != nil {
						v = av
						break
					}
				}
			}
			if p.AsString && v != nil {
				v = records.String(v)
			}
			rec[p.Target] = v
		}
	}
	return in
}
