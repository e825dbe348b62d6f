package builtin

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"reconcile/pkg/records"
)

// DeDup collapses records sharing the same primary identifier down to the
// first one encountered; later duplicates are dropped without merging. Input
// order is the batch order produced by the parser, so results are stable for
// a given input file rather than an artifact of iteration order.
//
// Keys are hashed with xxh3 over the value's canonical string form, so a key
// stored as text in one record and as a number in another collides correctly
// after coalescing. Records with a nil key are passed through: keying them is
// impossible, and essential-field filtering handles their fate.
type DeDup struct {
	Key    string
	Reject func(Rejected)
}

func (d DeDup) Apply(in []records.Record) []records.Record {
	if d.Key == "" {
		return in
	}
	seen := make(map[uint64]struct{}, len(in))
	out := in[:0]
	for _, rec := range in {
		v := rec.Get(d.Key)
		if v == nil {
			out = append(out, rec)
			continue
		}
		h := xxh3.HashString(records.String(v))
		if _, dup := seen[h]; dup {
			if d.Reject != nil {
				d.Reject(Rejected{Record: rec, Stage: "dedup", Reason: fmt.Sprintf("duplicate %s %q", d.Key, records.String(v))})
			}
			continue
		}
		seen[h] = struct{}{}
		out = append(out, rec)
	}
	return out
}
