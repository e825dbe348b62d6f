package reconcile

import (
	"errors"
	"fmt"

	"reconcile/internal/transformer"
	"reconcile/internal/transformer/builtin"
	"reconcile/pkg/records"
)

// ErrMissingColumn is returned when an essential source column is absent from
// every raw record and no declared alias can supply it. This is the one
// failure no normalization rule can recover from, so it surfaces to the
// caller instead of degrading record by record.
var ErrMissingColumn = errors.New("essential source column missing")

// DropRule is an entity-specific ad hoc exclusion (e.g. a customer with no
// contact channel).
type DropRule struct {
	Reason string
	When   func(records.Record) bool
}

// EntitySpec is the declarative reconciliation contract for one entity type:
// which aliases feed which canonical field, how each field is coerced, what
// gets filled, what is essential, and the canonical column order.
type EntitySpec struct {
	Name string

	// Key is the unique identifier records are de-duplicated on. Empty
	// disables de-duplication for entities whose id is non-null but not
	// unique (orders).
	Key string

	Coalesce []builtin.CoalescePair
	Rules    []builtin.FieldRule

	// Derived transformers compute fields from other canonical fields after
	// normalization (e.g. order_value).
	Derived []transformer.Transformer

	// Fills are the statistical fills (mode/median/field-from-field) that run
	// between blank-token normalization and the fixed defaults.
	Fills []transformer.Transformer

	Defaults  map[string]any
	Drop      []DropRule
	Essential []string
	Columns   []string

	// Indexes lists the columns the storage collaborator must index: the
	// primary key on customers/products, both foreign keys on orders.
	Indexes []string
}

// aliases returns the declared alias names feeding the given canonical field.
func (s EntitySpec) aliases(field string) []string {
	for _, p := range s.Coalesce {
		if p.Target == field {
			return p.Aliases
		}
	}
	return nil
}

// ColumnKinds maps each canonical column to its logical storage type, derived
// from the field rules: number → real, timestamp → timestamp, boolean → bool,
// everything else text.
func (s EntitySpec) ColumnKinds() map[string]string {
	kinds := make(map[string]string, len(s.Columns))
	for _, col := range s.Columns {
		kinds[col] = "text"
	}
	for _, r := range s.Rules {
		if _, ok := kinds[r.Field]; !ok {
			continue
		}
		switch r.Kind {
		case builtin.KindNumber:
			kinds[r.Field] = "real"
		case builtin.KindTimestamp:
			kinds[r.Field] = "timestamp"
		case builtin.KindBoolean:
			kinds[r.Field] = "bool"
		}
	}
	return kinds
}

// Reconciler runs the fixed composition for one entity: coalesce → normalize
// → derive → validate (blanks, fills, defaults, ad hoc rules, essential
// fields, dedup) → project. It is pure: the input records are cloned up
// front, and a fresh Set is returned.
type Reconciler struct {
	Spec EntitySpec

	// Reject, when set, receives every dropped record. The pipeline only
	// counts rejections; tests inspect them.
	Reject func(builtin.Rejected)
}

// Run reconciles one raw batch into the entity's canonical Set. The returned
// int is the number of records dropped across all validation stages.
func (r Reconciler) Run(in []records.Record) (Set, int, error) {
	spec := r.Spec
	if len(in) == 0 {
		return Set{Name: spec.Name, Columns: spec.Columns}, 0, nil
	}

	if err := r.checkStructure(in); err != nil {
		return Set{}, 0, err
	}

	work := make([]records.Record, len(in))
	for i, rec := range in {
		work[i] = rec.Clone()
	}

	var dropped int
	sink := func(rej builtin.Rejected) {
		dropped++
		if r.Reject != nil {
			r.Reject(rej)
		}
	}

	chain := transformer.Chain{
		builtin.Coalesce{Pairs: spec.Coalesce},
		builtin.Normalize{Rules: spec.Rules},
	}
	chain = append(chain, spec.Derived...)
	chain = append(chain, builtin.Blanks{})
	chain = append(chain, spec.Fills...)
	chain = append(chain, builtin.Fill{Defaults: spec.Defaults})
	for _, rule := range spec.Drop {
		chain = append(chain, builtin.DropIf{Reason: rule.Reason, When: rule.When, Reject: sink})
	}
	chain = append(chain,
		builtin.Require{Fields: spec.Essential, Reject: sink},
		builtin.DeDup{Key: spec.Key, Reject: sink},
		builtin.Project{Columns: spec.Columns},
	)

	out := chain.Apply(work)
	return Set{Name: spec.Name, Columns: spec.Columns, Records: out}, dropped, nil
}

// checkStructure verifies that every essential canonical field is reachable:
// the field itself or one of its declared aliases occurs somewhere in the raw
// batch. A wholly missing essential column is a structural failure.
func (r Reconciler) checkStructure(in []records.Record) error {
	present := map[string]struct{}{}
	for _, rec := range in {
		for k := range rec {
			present[k] = struct{}{}
		}
	}
	for _, field := range r.Spec.Essential {
		if _, ok := present[field]; ok {
			continue
		}
		// A declared default is a recovery path, not a structural hole.
		if _, ok := r.Spec.Defaults[field]; ok {
			continue
		}
		found := false
		for _, alias := range r.Spec.aliases(field) {
			if _, ok := present[alias]; ok {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: column %q (no alias present in any source record): %w",
				r.Spec.Name, field, ErrMissingColumn)
		}
	}
	return nil
}
