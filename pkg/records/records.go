// Package records defines the loosely-typed record representation shared by
// parsers, transformers, and storage. A Record is a field-name → scalar map;
// the scalar is one of nil, string, float64, bool, json.Number, or time.Time.
// Fields may be absent entirely, so all lookups go through helpers with
// defined missing-field semantics.
package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Record is one loosely-typed row. Keys vary across sources for the same
// entity; never assume a field exists.
type Record map[string]any

// Get returns the value for key, or nil when the field is absent.
func (r Record) Get(key string) any {
	v, ok := r[key]
	if !ok {
		return nil
	}
	return v
}

// IsNull reports whether v represents an absent value.
func IsNull(v any) bool { return v == nil }

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String renders a scalar value to its canonical string form. nil renders to
// the empty string. Floats use the shortest representation that round-trips,
// so numeric-looking IDs parsed as JSON numbers compare equal to their text
// counterparts ("1042" == 1042).
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// Float extracts a float64 from common scalar shapes. The second return is
// false when the value is absent or not a number.
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
