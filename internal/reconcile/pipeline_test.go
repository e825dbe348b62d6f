package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"reconcile/internal/transformer/builtin"
	"reconcile/pkg/records"
)

// TestPipelineEndToEnd feeds 100 raw customers through the full fork-join:
// 5 have neither email nor phone, 3 customer_ids repeat an earlier record,
// and 10 carry an unparsable status. Expected survivors: 100 - 5 - 3.
func TestPipelineEndToEnd(t *testing.T) {
	var rawCustomers []records.Record
	for i := 0; i < 100; i++ {
		rec := records.Record{
			"cust_id":       fmt.Sprintf("c-%03d", i),
			"customer_name": fmt.Sprintf("Customer %d", i),
			"email_address": fmt.Sprintf("c%d@example.com", i),
			"status":        "active",
		}
		switch {
		case i < 5: // no contact channel at all
			delete(rec, "email_address")
		case i < 8: // duplicate of an earlier id
			rec["cust_id"] = fmt.Sprintf("c-%03d", i-5+10)
		case i < 18: // garbage status
			rec["status"] = "zombie"
		}
		rawCustomers = append(rawCustomers, rec)
	}

	// The duplicates point at ids 10..12, which appear later in the batch, so
	// the duplicate record itself is first-seen and the later original loses.
	// Either way the arithmetic is the same: three collisions, one survivor each.

	rawProducts := []records.Record{
		{"product_id": "p-1", "product_name": "Widget", "price": "10", "brand": "b", "created_date": "2023-01-01"},
		{"product_id": "p-2", "product_name": "Gadget", "price": "20", "brand": "b", "created_date": "2023-01-02"},
	}
	rawOrders := []records.Record{
		{"order_id": "o-1", "cust_id": "c-020", "product_id": "p-1", "qty": "1", "unit_price": "10"},
		{"order_id": "o-2", "cust_id": "c-001", "product_id": "p-1", "qty": "1", "unit_price": "10"}, // c-001 had no contact channel
		{"order_id": "o-3", "cust_id": "c-021", "product_id": "p-9", "qty": "2", "unit_price": "20"}, // no such product
	}

	res, err := Pipeline{Customers: rawCustomers, Products: rawProducts, Orders: rawOrders}.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got, want := res.Customers.Len(), 100-5-3; got != want {
		t.Fatalf("customers kept = %d, want %d", got, want)
	}
	valid := map[string]struct{}{"active": {}, "inactive": {}, "suspended": {}, "pending": {}, "unknown": {}}
	for _, rec := range res.Customers.Records {
		for _, field := range []string{"customer_id", "full_name", "email"} {
			if rec.Get(field) == nil {
				t.Fatalf("null %s in output: %#v", field, rec)
			}
		}
		if _, ok := valid[records.String(rec.Get("final_status"))]; !ok {
			t.Fatalf("final_status %#v outside the category set", rec.Get("final_status"))
		}
	}

	if res.Products.Len() != 2 {
		t.Fatalf("products kept = %d", res.Products.Len())
	}
	if res.OrdersBeforeFilter != 3 {
		t.Fatalf("orders before filter = %d", res.OrdersBeforeFilter)
	}
	if res.Orders.Len() != 1 || res.Orders.Records[0]["order_id"] != "o-1" {
		t.Fatalf("orders after filter: %#v", res.Orders.Records)
	}
}

func TestPipelineStructuralErrorSurfaces(t *testing.T) {
	_, err := Pipeline{
		Customers: []records.Record{{"customer_id": "c-1"}}, // no name column anywhere
		Products:  []records.Record{{"product_id": "p-1", "product_name": "W", "price": "1", "brand": "b", "created_date": "2023-01-01"}},
		Orders:    nil,
	}.Run(context.Background())
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestPipelineRejectCallback(t *testing.T) {
	var reasons []string
	p := Pipeline{
		Customers: []records.Record{
			{"customer_id": "c-1", "full_name": "A"}, // no contact channel
			{"customer_id": "c-2", "full_name": "B", "email": "b@example.com"},
		},
		Reject: func(rej builtin.Rejected) { reasons = append(reasons, rej.Stage) },
	}
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Customers.Len() != 1 {
		t.Fatalf("customers kept = %d", res.Customers.Len())
	}
	if len(reasons) != 1 {
		t.Fatalf("reject callback fired %d times: %v", len(reasons), reasons)
	}
}
