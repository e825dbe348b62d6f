// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package. All Prometheus-specific dependencies are contained here so
// the rest of the project can swap metric systems without changes to the
// pipeline itself.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"reconcile/internal/metrics"
)

// Backend pushes collected metrics to a Prometheus Pushgateway instead of
// exposing a scrape endpoint; a batch job has nothing to scrape after it
// exits.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	recordCounter *prometheus.CounterVec // reconcile_records_total
	stageDuration *prometheus.SummaryVec // reconcile_stage_seconds
}

// NewBackend constructs a Pushgateway backend. jobName becomes the
// Pushgateway "job" grouping key.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "reconcile"
	}

	reg := prometheus.NewRegistry()

	recordCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_records_total",
			Help: "Record counts per entity and stage (in, kept, rejected, dangling, loaded).",
		},
		[]string{"entity", "stage"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "reconcile_stage_seconds",
			Help:       "Duration of reconciliation stages in seconds, per entity and stage.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"entity", "stage"},
	)

	if err := reg.Register(recordCounter); err != nil {
		return nil, fmt.Errorf("prompush: register record counter: %w", err)
	}
	if err := reg.Register(stageDuration); err != nil {
		return nil, fmt.Errorf("prompush: register stage summary: %w", err)
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		recordCounter: recordCounter,
		stageDuration: stageDuration,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if name != "reconcile_records_total" || b.recordCounter == nil {
		return
	}
	b.recordCounter.WithLabelValues(labels["entity"], labels["stage"]).Add(delta)
}

func (b *Backend) ObserveDuration(name string, seconds float64, labels metrics.Labels) {
	if name != "reconcile_stage_seconds" || b.stageDuration == nil {
		return
	}
	b.stageDuration.WithLabelValues(labels["entity"], labels["stage"]).Observe(seconds)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
