package reconcile

import (
	"reconcile/internal/transformer"
	"reconcile/internal/transformer/builtin"
	"reconcile/pkg/records"
)

// Customers is the reconciliation contract for the customer entity. Sources
// disagree on column names (cust_id, customer_name, email_address, ...), on
// status vocabularies, and on whether IDs are text or numbers; the contract below
// folds all of that into one canonical shape.
func Customers() EntitySpec {
	return EntitySpec{
		Name: "customers",
		Key:  "customer_id",
		Coalesce: []builtin.CoalescePair{
			{Target: "customer_id", Aliases: []string{"cust_id"}, AsString: true},
			{Target: "full_name", Aliases: []string{"customer_name"}},
			{Target: "email", Aliases: []string{"email_address"}},
			{Target: "phone", Aliases: []string{"phone_number"}},
			{Target: "zip_code", Aliases: []string{"postal_code"}, AsString: true},
			{Target: "address", Aliases: []string{"addr"}},
			{Target: "state", Aliases: []string{"province"}},
			{Target: "registered_on", Aliases: []string{"registration_date", "reg_date"}},
			{Target: "status", Aliases: []string{"customer_status"}},
		},
		Rules: []builtin.FieldRule{
			{Field: "email", Kind: builtin.KindEmail},
			{Field: "final_status", Kind: builtin.KindStatus, From: "status"},
			{Field: "phone", Kind: builtin.KindString},
			{Field: "gender", Kind: builtin.KindText},
			{Field: "total_spent", Kind: builtin.KindNumber},
			{Field: "total_orders", Kind: builtin.KindNumber},
			{Field: "loyalty_points", Kind: builtin.KindNumber},
			{Field: "age", Kind: builtin.KindNumber},
			{Field: "registered_on", Kind: builtin.KindTimestamp},
			{Field: "birth_date", Kind: builtin.KindTimestamp},
		},
		Fills: []transformer.Transformer{
			builtin.ModeFill{Fields: []string{"preferred_payment", "zip_code"}},
		},
		Defaults: map[string]any{
			"segment":           "general",
			"preferred_payment": "unknown",
			"address":           "not provided",
		},
		Drop: []DropRule{{
			Reason: "no contact channel (email and phone both null)",
			When:   func(rec records.Record) bool { return builtin.AllNull(rec, "email", "phone") },
		}},
		Essential: []string{"customer_id", "full_name", "email"},
		Indexes:   []string{"customer_id"},
		Columns: []string{
			"customer_id", "full_name", "email", "phone", "address",
			"city", "state", "zip_code", "total_orders", "total_spent",
			"loyalty_points", "preferred_payment", "age", "birth_date",
			"gender", "segment", "registered_on", "final_status",
		},
	}
}
