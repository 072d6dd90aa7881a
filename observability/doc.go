/*
Package observability provides structured logging and metrics collection
for the recon tracker.

	Provider (manages instances)
	    ├── Logger (one JSON object per line)
	    └── Metrics (Prometheus, on the provider's registry)

Each component (repository, database, handler, runtime) gets its own logger
and metrics instance. Loggers are tagged with a "component" field and a
service name of "{ServiceName}.{component}"; metric names follow
{ServiceName}_{component}_{metric}.

# Usage

Initialize the provider once at application startup:

	provider := observability.NewProvider(&observability.Config{
	    ServiceName: "recon-tracker",
	    Environment: "production",
	    LogLevel:    "info",
	    AdditionalFields: observability.Fields{"version": "1.0.0"},
	})
	defer provider.Close()

	logger := provider.Logger("repository")
	metrics := provider.Metrics("repository")

	metrics.StartOperation("programs.list")
	defer metrics.EndOperation("programs.list")

	logger.Info(ctx, "Listed programs", observability.Fields{"count": n})
	metrics.RecordRows("programs.list", n)

# Context Integration

The logger copies these context values onto every entry when present:
  - types.RequestIDKey ("request_id")
  - types.TraceIDKey ("trace_id")
  - types.RouteKey ("route")

# Metrics

  - {service}_{component}_processed_total: Counter with labels [status, operation]
  - {service}_{component}_errors_total: Counter with labels [error_type, operation]
  - {service}_{component}_duration_seconds: Histogram with label [operation]
  - {service}_{component}_rows_returned: Histogram with label [operation]
  - {service}_{component}_in_progress: Gauge with label [operation]

The registry also carries the Go runtime and process collectors. MetricsHandler
serves it; the HTTP runtime mounts it on /metrics.

# Testing

The mocks package provides testify mocks for Logger, Metrics and Provider.
NewNopProvider returns a provider whose loggers and metrics accept any call.
*/
package observability
