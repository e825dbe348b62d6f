// Package metrics is a small, backend-agnostic layer for recording pipeline
// counters and stage timings. A global pluggable backend defaults to a no-op
// so instrumentation is always safe to call; concrete systems (Prometheus
// Pushgateway) live in subpackages and register via SetBackend. The rest of
// the codebase depends only on this package.
package metrics

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, seconds float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush flushes the active backend.
func Flush() error { return backend.Flush() }

// CountRecords counts records flowing through a stage of one entity's
// reconciliation (stage: in, kept, rejected, dangling, loaded).
func CountRecords(entity, stage string, n int) {
	if n == 0 {
		return
	}
	backend.IncCounter("reconcile_records_total", float64(n), Labels{"entity": entity, "stage": stage})
}

// StageSeconds records how long one stage of an entity took.
func StageSeconds(entity, stage string, seconds float64) {
	backend.ObserveDuration("reconcile_stage_seconds", seconds, Labels{"entity": entity, "stage": stage})
}
