package reconcile

import (
	"reconcile/internal/transformer"
	"reconcile/internal/transformer/builtin"
	"reconcile/pkg/records"
)

// Orders is the reconciliation contract for the order entity.
func Orders() EntitySpec {
	return EntitySpec{
		Name: "orders",
		// No Key: order_id is required non-null but not unique, so repeated
		// ids are distinct line items and must all survive.
		Coalesce: []builtin.CoalescePair{
			{Target: "order_id", AsString: true},
			{Target: "customer_id", Aliases: []string{"cust_id"}, AsString: true},
			{Target: "product_id", AsString: true},
			{Target: "order_timestamp", Aliases: []string{"order_date", "order_datetime"}},
			{Target: "quantity", Aliases: []string{"qty"}},
			{Target: "status", Aliases: []string{"order_status"}},
		},
		Rules: []builtin.FieldRule{
			{Field: "quantity", Kind: builtin.KindNumber},
			{Field: "unit_price", Kind: builtin.KindNumber},
			{Field: "price", Kind: builtin.KindNumber},
			{Field: "total_amount", Kind: builtin.KindNumber},
			{Field: "order_total", Kind: builtin.KindNumber},
			{Field: "shipping_cost", Kind: builtin.KindNumber},
			{Field: "tax", Kind: builtin.KindNumber},
			{Field: "discount", Kind: builtin.KindNumber},
			{Field: "order_value", Kind: builtin.KindNumber},
			{Field: "order_timestamp", Kind: builtin.KindTimestamp},
			{Field: "status", Kind: builtin.KindText},
			{Field: "payment_method", Kind: builtin.KindText},
			{Field: "shipping_address", Kind: builtin.KindString},
			{Field: "tracking_number", Kind: builtin.KindString},
			{Field: "notes", Kind: builtin.KindString},
		},
		Derived: []transformer.Transformer{orderValue{}},
		Defaults: map[string]any{
			"shipping_address": "not provided",
			"notes":            "",
			"tracking_number":  "not available",
		},
		Essential: []string{"order_id", "customer_id", "product_id", "quantity", "unit_price"},
		Indexes:   []string{"customer_id", "product_id"},
		Columns: []string{
			"order_id", "customer_id", "product_id", "quantity", "unit_price",
			"total_amount", "order_total", "shipping_cost", "tax", "discount",
			"status", "payment_method", "shipping_address", "notes",
			"tracking_number", "order_value", "order_timestamp",
		},
	}
}

// orderValue fills the derived order_value field. A usable source-supplied
// total is trusted as-is; only when it is null does the computed
// quantity × unit_price take its place. Runs after Normalize, so an
// unparsable source total has already degraded to nil.
type orderValue struct{}

func (orderValue) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		if rec.Get("order_value") != nil {
			continue
		}
		q, qok := records.Float(rec.Get("quantity"))
		p, pok := records.Float(rec.Get("unit_price"))
		if qok && pok {
			rec["order_value"] = q * p
		} else {
			rec["order_value"] = nil
		}
	}
	return in
}
