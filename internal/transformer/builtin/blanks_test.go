package builtin

import (
	"testing"

	"reconcile/pkg/records"
)

func TestBlanksTokens(t *testing.T) {
	in := []records.Record{{
		"a": "",
		"b": "none",
		"c": "null",
		"d": "NaN",
		"e": "None", // case-sensitive tokens: not blank
		"f": "value",
		"g": 0.0, // non-strings untouched
	}}
	out := Blanks{}.Apply(in)
	r := out[0]
	for _, k := range []string{"a", "b", "c", "d"} {
		if r[k] != nil {
			t.Errorf("%s = %#v, want nil", k, r[k])
		}
	}
	if r["e"] != "None" || r["f"] != "value" || r["g"] != 0.0 {
		t.Fatalf("non-blank values mutated: %#v", r)
	}
}
