package builtin

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reconcile/pkg/records"
)

// Kind selects the coercion applied to one field. All coercions are total:
// unparsable input becomes nil, never an error.
type Kind string

const (
	// KindEmail keeps RFC-shaped addresses and nils everything else.
	KindEmail Kind = "email"
	// KindStatus folds the value into the fixed status vocabulary
	// (active/inactive/suspended/pending/unknown); nil stays nil.
	KindStatus Kind = "status"
	// KindNumber parses to float64 or nil.
	KindNumber Kind = "number"
	// KindTimestamp parses to time.Time using a lenient layout list, or nil.
	KindTimestamp Kind = "timestamp"
	// KindBoolean maps truthy/falsy vocabularies to bool; anything else nil.
	KindBoolean Kind = "boolean"
	// KindText lower-cases and trims free-text categoricals (brand, color...).
	KindText Kind = "text"
	// KindString casts to string and trims, with no vocabulary or folding.
	KindString Kind = "string"
)

// FieldRule binds a coercion kind to a canonical field. From names the field
// the value is read off when it differs from Field (e.g. final_status is
// derived from status); it defaults to Field. Rules are independent across
// fields and never re-read a pre-coalesce alias.
type FieldRule struct {
	Field string
	Kind  Kind
	From  string
}

// Normalize applies per-field coercion rules to every record in place.
type Normalize struct {
	Rules []FieldRule
}

func (n Normalize) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		for _, rule := range n.Rules {
			from := rule.From
			if from == "" {
				from = rule.Field
			}
			rec[rule.Field] = coerce(rule.Kind, rec.Get(from))
		}
	}
	return in
}

var emailPattern = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)

// statusMap is the fixed unification table for lifecycle statuses. Keys are
// folded and trimmed before lookup; misses map to "unknown".
var statusMap = map[string]string{
	"active": "active", "yes": "active", "1": "active", "true": "active",
	"inactive": "inactive", "no": "inactive", "0": "inactive", "false": "inactive",
	"suspended": "suspended",
	"pending":   "pending",
}

var (
	truthy = map[string]struct{}{"true": {}, "1": {}, "yes": {}}
	falsy  = map[string]struct{}{"false": {}, "0": {}, "no": {}}
)

// timestampLayouts are tried in order; the first successful parse wins.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

var lower = cases.Lower(language.Und)

func coerce(kind Kind, v any) any {
	if v == nil {
		return nil
	}
	switch kind {
	case KindEmail:
		s := records.String(v)
		if emailPattern.MatchString(s) {
			return s
		}
		return nil

	case KindStatus:
		s := strings.TrimSpace(lower.String(records.String(v)))
		if canon, ok := statusMap[s]; ok {
			return canon
		}
		return "unknown"

	case KindNumber:
		if f, ok := records.Float(v); ok {
			return f
		}
		s := strings.TrimSpace(records.String(v))
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return nil

	case KindTimestamp:
		if t, ok := v.(time.Time); ok {
			return t
		}
		s := strings.TrimSpace(records.String(v))
		if s == "" {
			return nil
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		return nil

	case KindBoolean:
		if b, ok := v.(bool); ok {
			return b
		}
		s := strings.TrimSpace(lower.String(records.String(v)))
		if _, ok := truthy[s]; ok {
			return true
		}
		if _, ok := falsy[s]; ok {
			return false
		}
		return nil

	case KindText:
		return strings.TrimSpace(lower.String(records.String(v)))

	case KindString:
		return strings.TrimSpace(records.String(v))

	default:
		return v
	}
}
