package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"reconcile/internal/metrics"
	"reconcile/internal/transformer/builtin"
	"reconcile/pkg/records"
)

// Pipeline reconciles the three raw record sets into canonical sets. The
// three entity reconcilers share no state and run concurrently; the
// referential integrity filter is the join point and waits for all of them.
type Pipeline struct {
	Customers []records.Record
	Products  []records.Record
	Orders    []records.Record

	// Reject, when set, receives every dropped record from every entity.
	Reject func(builtin.Rejected)
}

// Result carries the three canonical sets. Orders have already passed the
// referential integrity filter.
type Result struct {
	Customers Set
	Products  Set
	Orders    Set

	// OrdersBeforeFilter is the reconciled order count prior to the
	// referential integrity filter; the difference is the dangling-reference
	// count.
	OrdersBeforeFilter int
}

// Run executes the fork-join: fan-out 3 entity reconciliations, join, then
// filter orders against the finished customer/product key sets. Per-record
// problems never fail the run; only structural failures (a wholly missing
// essential source column) surface as errors.
func (p Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result

	run := func(spec EntitySpec, in []records.Record, out *Set) func() error {
		return func() error {
			start := time.Now()
			set, dropped, err := Reconciler{Spec: spec, Reject: p.Reject}.Run(in)
			if err != nil {
				return err
			}
			secs := time.Since(start).Seconds()
			metrics.CountRecords(spec.Name, "in", len(in))
			metrics.CountRecords(spec.Name, "kept", set.Len())
			metrics.CountRecords(spec.Name, "rejected", dropped)
			metrics.StageSeconds(spec.Name, "reconcile", secs)
			log.Printf("reconcile: entity=%s in=%s kept=%s rejected=%d fingerprint=%016x",
				spec.Name, humanize.Comma(int64(len(in))), humanize.Comma(int64(set.Len())),
				dropped, set.Fingerprint())
			*out = set
			return nil
		}
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(run(Customers(), p.Customers, &res.Customers))
	g.Go(run(Products(), p.Products, &res.Products))
	g.Go(run(Orders(), p.Orders, &res.Orders))
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res.OrdersBeforeFilter = res.Orders.Len()
	filtered, dangling := FilterOrders(res.Orders, res.Customers, res.Products)
	res.Orders = filtered
	metrics.CountRecords("orders", "dangling", dangling)
	log.Printf("reconcile: integrity filter kept=%s dropped=%d", humanize.Comma(int64(filtered.Len())), dangling)

	return res, nil
}
