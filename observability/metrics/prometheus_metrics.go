// Package metrics provides the Prometheus-backed implementation of
// types.Metrics. Every component gets its own subsystem so metric names read
// {namespace}_{component}_{metric}.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface using the Prometheus client library.
// It provides pre-configured metrics for tracking operations, errors,
// durations, result sizes and concurrent operations.
type PrometheusMetrics struct {
	// processedTotal tracks the total number of operations by status
	processedTotal *prometheus.CounterVec
	// errorsTotal tracks errors by error type and operation
	errorsTotal *prometheus.CounterVec
	// durationSeconds tracks operation duration with the default buckets
	durationSeconds *prometheus.HistogramVec
	// rowsReturned tracks how many rows read operations return
	rowsReturned *prometheus.HistogramVec
	// inProgress tracks the number of operations currently in flight
	inProgress *prometheus.GaugeVec
}

// New creates a PrometheusMetrics instance and registers its collectors on reg.
//
// Registered metrics:
//   - {namespace}_{subsystem}_processed_total: operations by status (success/error)
//   - {namespace}_{subsystem}_errors_total: errors by type and operation
//   - {namespace}_{subsystem}_duration_seconds: operation durations
//   - {namespace}_{subsystem}_rows_returned: rows returned by read operations
//   - {namespace}_{subsystem}_in_progress: operations in flight
//
// Panics if registration fails (e.g. the same subsystem registered twice on reg).
func New(namespace, subsystem string, reg prometheus.Registerer) *PrometheusMetrics {
	namespace = SanitizeName(namespace)
	subsystem = SanitizeName(subsystem)

	m := &PrometheusMetrics{}

	m.processedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "processed_total",
			Help:      "Total operations processed, by status.",
		},
		[]string{"status", "operation"},
	)

	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Total errors, by error type and operation.",
		},
		[]string{"error_type", "operation"},
	)

	// Default buckets: 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10 seconds
	m.durationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Buckets: 0, 1, 10, 100, 1000, 10000 rows
	m.rowsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rows_returned",
			Help:      "Rows returned by read operations.",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000},
		},
		[]string{"operation"},
	)

	m.inProgress = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "in_progress",
			Help:      "Operations currently in progress.",
		},
		[]string{"operation"},
	)

	reg.MustRegister(
		m.processedTotal,
		m.errorsTotal,
		m.durationSeconds,
		m.rowsReturned,
		m.inProgress,
	)

	return m
}

// RecordSuccess increments the processed counter with status="success".
//
// Example:
//
//	metrics.RecordSuccess("programs.create")
func (m *PrometheusMetrics) RecordSuccess(operation string) {
	m.processedTotal.WithLabelValues("success", operation).Inc()
}

// RecordError increments both the processed counter (status="error") and the
// detailed error counter, giving failure rates and error breakdowns.
//
// Example:
//
//	metrics.RecordError("vulnerabilities.update", "not_found")
func (m *PrometheusMetrics) RecordError(operation string, errorType string) {
	m.processedTotal.WithLabelValues("error", operation).Inc()
	m.errorsTotal.WithLabelValues(errorType, operation).Inc()
}

// RecordDuration records the duration of an operation in seconds.
//
// Example:
//
//	start := time.Now()
//	// ... perform operation ...
//	metrics.RecordDuration("stats", time.Since(start).Seconds())
func (m *PrometheusMetrics) RecordDuration(operation string, duration float64) {
	m.durationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordRows records the number of rows a read operation returned.
func (m *PrometheusMetrics) RecordRows(operation string, rows int) {
	m.rowsReturned.WithLabelValues(operation).Observe(float64(rows))
}

// StartOperation increments the in-progress gauge for an operation.
// Must be paired with EndOperation.
//
// Example:
//
//	metrics.StartOperation("programs.list")
//	defer metrics.EndOperation("programs.list")
func (m *PrometheusMetrics) StartOperation(operation string) {
	m.inProgress.WithLabelValues(operation).Inc()
}

// EndOperation decrements the in-progress gauge for an operation.
func (m *PrometheusMetrics) EndOperation(operation string) {
	m.inProgress.WithLabelValues(operation).Dec()
}

// SanitizeName maps a component or service name onto the characters
// Prometheus accepts in metric names ([a-zA-Z0-9_]).
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
