package builtin

import (
	"sort"

	"reconcile/pkg/records"
)

// Fill replaces nil values with fixed per-field defaults. Defaults never
// overwrite non-nil values.
type Fill struct {
	Defaults map[string]any
}

func (f Fill) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		for field, def := range f.Defaults {
			if rec.Get(field) == nil {
				rec[field] = def
			}
		}
	}
	return in
}

// ModeFill replaces nil values in each listed field with the field's most
// frequent non-nil value across the batch. Frequency ties break on the
// smallest canonical string form, so results do not depend on input or map
// iteration order. A field with no non-nil values is left untouched.
type ModeFill struct {
	Fields []string
}

func (m ModeFill) Apply(in []records.Record) []records.Record {
	for _, field := range m.Fields {
		type tally struct {
			value any
			count int
			key   string
		}
		counts := map[string]*tally{}
		for _, rec := range in {
			v := rec.Get(field)
			if v == nil {
				continue
			}
			key := records.String(v)
			t, ok := counts[key]
			if !ok {
				t = &tally{value: v, key: key}
				counts[key] = t
			}
			t.count++
		}
		var mode *tally
		for _, t := range counts {
			if mode == nil || t.count > mode.count || (t.count == mode.count && t.key < mode.key) {
				mode = t
			}
		}
		if mode == nil {
			continue
		}
		for _, rec := range in {
			if rec.Get(field) == nil {
				rec[field] = mode.value
			}
		}
	}
	return in
}

// MedianFill replaces nil values in each listed numeric field with the median
// of the field's non-nil values (the mean of the middle pair for even counts).
// Run after Normalize so values are float64 or nil.
type MedianFill struct {
	Fields []string
}

func (m MedianFill) Apply(in []records.Record) []records.Record {
	for _, field := range m.Fields {
		var vals []float64
		for _, rec := range in {
			if f, ok := records.Float(rec.Get(field)); ok {
				vals = append(vals, f)
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		var med float64
		if n := len(vals); n%2 == 1 {
			med = vals[n/2]
		} else {
			med = (vals[n/2-1] + vals[n/2]) / 2
		}
		for _, rec := range in {
			if rec.Get(field) == nil {
				rec[field] = med
			}
		}
	}
	return in
}

// FillFrom replaces a nil Field with the record's own From value
// (e.g. last_updated falls back to created_date).
type FillFrom struct {
	Field string
	From  string
}

func (f FillFrom) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		if rec.Get(f.Field) == nil {
			rec[f.Field] = rec.Get(f.From)
		}
	}
	return in
}
