// Package transformer defines the stage contract shared by all record
// transforms. A Transformer consumes a batch of records and returns the
// (possibly smaller) transformed batch. Stages never fail on bad data;
// per-record problems degrade to nil values or dropped records.
package transformer

import "reconcile/pkg/records"

type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
