package builtin

import "reconcile/pkg/records"

// blankTokens are the literal placeholders upstream systems emit for "no
// value". Matching is exact (case-sensitive) on the string form encountered.
var blankTokens = map[string]struct{}{
	"":     {},
	"none": {},
	"null": {},
	"NaN":  {},
}

// Blanks normalizes placeholder tokens to nil, uniformly across all fields.
type Blanks struct{}

func (Blanks) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		for k, v := range rec {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if _, blank := blankTokens[s]; blank {
				rec[k] = nil
			}
		}
	}
	return in
}
