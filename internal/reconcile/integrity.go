package reconcile

import "reconcile/pkg/records"

// FilterOrders retains only orders whose customer_id resolves to a reconciled
// customer AND whose product_id resolves to a reconciled product. Orders with
// a dangling reference are deleted, never repaired. The input sets are not
// mutated; a new, smaller order Set is returned along with the number of
// orders dropped.
//
// This must run strictly after all three reconciliations complete: it depends
// on the finished primary-key sets.
func FilterOrders(orders, customers, products Set) (Set, int) {
	customerKeys := customers.Keys("customer_id")
	productKeys := products.Keys("product_id")

	out := Set{
		Name:    orders.Name,
		Columns: orders.Columns,
	}
	for _, rec := range orders.Records {
		_, custOK := customerKeys[records.String(rec.Get("customer_id"))]
		_, prodOK := productKeys[records.String(rec.Get("product_id"))]
		if custOK && prodOK {
			out.Records = append(out.Records, rec)
		}
	}
	return out, orders.Len() - out.Len()
}
