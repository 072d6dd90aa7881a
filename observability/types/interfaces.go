// Package types holds the contracts shared by the observability provider,
// its logger and metrics implementations, and their mocks.
package types

import (
	"context"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Logger defines the contract for structured logging.
// Implementations emit one JSON object per entry. All methods take a context
// so request-scoped values (request_id, trace_id) end up on every entry.
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, fields Fields)

	// Error logs an error message with the associated error.
	Error(ctx context.Context, msg string, err error, fields Fields)

	// Warn logs a warning message.
	// Use for failures the caller caused, such as rejected input.
	Warn(ctx context.Context, msg string, fields Fields)

	// Debug logs a debug message. Typically filtered out outside development.
	Debug(ctx context.Context, msg string, fields Fields)

	// WithFields returns a new Logger that adds fields to every entry.
	WithFields(fields Fields) Logger
}

// Metrics defines the contract for metrics collection.
// Implementations are Prometheus-backed and follow its naming conventions.
type Metrics interface {
	// RecordSuccess increments the success counter for an operation.
	RecordSuccess(operation string)

	// RecordError increments the failure counters for an operation and error type
	// (e.g. "not_found", "conflict", "storage").
	RecordError(operation string, errorType string)

	// RecordDuration records the duration of an operation in seconds.
	RecordDuration(operation string, duration float64)

	// RecordRows records how many rows a read operation returned.
	RecordRows(operation string, rows int)

	// StartOperation increments the in-progress gauge for an operation.
	// Must be paired with EndOperation.
	StartOperation(operation string)

	// EndOperation decrements the in-progress gauge for an operation.
	EndOperation(operation string)
}

// Fields represents structured logging fields as key-value pairs.
// Values must be JSON-serializable.
type Fields map[string]interface{}

// ContextKey is the type of the context keys the logger reads.
type ContextKey string

const (
	// RequestIDKey carries the id of the request being served.
	RequestIDKey ContextKey = "request_id"
	// TraceIDKey carries the distributed trace id, when one was propagated.
	TraceIDKey ContextKey = "trace_id"
	// RouteKey carries the name of the matched route.
	RouteKey ContextKey = "route"
)

// Config holds observability configuration for the provider.
type Config struct {
	// ServiceName identifies the service in logs and prefixes metric names.
	ServiceName string

	// Environment specifies the deployment environment ("local", "production", ...).
	Environment string

	// LogLevel sets the minimum log level: "debug", "info", "warn" or "error".
	LogLevel string

	// LogOutput is where logs are written. Defaults to os.Stdout.
	LogOutput io.Writer

	// Registry receives every metric the provider creates.
	// A fresh registry is created when nil.
	Registry *prometheus.Registry

	// AdditionalFields are included in every log entry (version, region, ...).
	AdditionalFields Fields
}

// Provider manages the lifecycle of observability components.
// Each component gets its own Logger and Metrics instance.
type Provider interface {
	// Logger returns the Logger for a component. Repeated calls return the same instance.
	Logger(component string) Logger

	// Metrics returns the Metrics for a component. Repeated calls return the same instance.
	Metrics(component string) Metrics

	// MetricsHandler exposes every registered metric in the Prometheus text format.
	MetricsHandler() http.Handler

	// Close releases the log output if it is closable.
	Close() error
}
