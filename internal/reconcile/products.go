package reconcile

import (
	"reconcile/internal/transformer"
	"reconcile/internal/transformer/builtin"
)

// Products is the reconciliation contract for the product entity.
func Products() EntitySpec {
	return EntitySpec{
		Name: "products",
		Key:  "product_id",
		Coalesce: []builtin.CoalescePair{
			{Target: "product_id", AsString: true},
			{Target: "brand", Aliases: []string{"manufacturer"}},
			{Target: "product_category", Aliases: []string{"category"}},
		},
		Rules: []builtin.FieldRule{
			{Field: "product_name", Kind: builtin.KindString},
			{Field: "price", Kind: builtin.KindNumber},
			{Field: "list_price", Kind: builtin.KindNumber},
			{Field: "cost", Kind: builtin.KindNumber},
			{Field: "weight", Kind: builtin.KindNumber},
			{Field: "rating", Kind: builtin.KindNumber},
			{Field: "stock_quantity", Kind: builtin.KindNumber},
			{Field: "stock_level", Kind: builtin.KindNumber},
			{Field: "reorder_level", Kind: builtin.KindNumber},
			{Field: "created_date", Kind: builtin.KindTimestamp},
			{Field: "last_updated", Kind: builtin.KindTimestamp},
			{Field: "is_active", Kind: builtin.KindBoolean},
			{Field: "brand", Kind: builtin.KindText},
			{Field: "product_category", Kind: builtin.KindText},
			{Field: "color", Kind: builtin.KindText},
			{Field: "size", Kind: builtin.KindText},
			{Field: "supplier_id", Kind: builtin.KindString},
		},
		Fills: []transformer.Transformer{
			builtin.MedianFill{Fields: []string{"rating", "weight"}},
			builtin.FillFrom{Field: "last_updated", From: "created_date"},
		},
		Defaults: map[string]any{
			"description":      "not provided",
			"color":            "unspecified",
			"size":             "unspecified",
			"dimensions":       "not specified",
			"brand":            "unknown",
			"product_category": "misc",
			"supplier_id":      "unknown",
		},
		// A product without a parseable creation date is unusable downstream.
		Essential: []string{"product_id", "product_name", "price", "brand", "created_date"},
		Indexes:   []string{"product_id"},
		Columns: []string{
			"product_id", "product_name", "description", "product_category", "brand",
			"price", "list_price", "cost", "weight", "dimensions", "color", "size",
			"stock_quantity", "stock_level", "reorder_level", "supplier_id",
			"created_date", "last_updated", "is_active", "rating",
		},
	}
}
