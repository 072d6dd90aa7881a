package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"recontracker/observability"
	"recontracker/observability/types"

	"github.com/google/uuid"
)

// LoggingMiddleware adds structured logging to request processing
func LoggingMiddleware(provider observability.Provider) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (Response, error) {
			platform, _ := ctx.Value(platformKey).(string)

			requestLogger := provider.Logger("handler").WithFields(types.Fields{
				"request_id": req.ID,
				"method":     req.Method,
				"path":       req.Path,
				"route":      req.Route,
				"source":     req.Source,
				"platform":   platform,
			})

			requestLogger.Debug(ctx, "Processing request", types.Fields{
				"payload_size": len(req.Payload),
			})

			start := time.Now()
			resp, err := next(ctx, req)
			duration := time.Since(start)

			switch {
			case err != nil:
				requestLogger.Error(ctx, "Request failed with error", err, types.Fields{
					"duration_ms": duration.Milliseconds(),
				})
			case resp.Status() >= http.StatusInternalServerError:
				requestLogger.Error(ctx, "Request failed", nil, types.Fields{
					"status":      resp.Status(),
					"error_code":  resp.Error.Code,
					"duration_ms": duration.Milliseconds(),
				})
			case !resp.Success():
				requestLogger.Warn(ctx, "Request rejected", types.Fields{
					"status":      resp.Status(),
					"error_code":  resp.Error.Code,
					"error_msg":   resp.Error.Message,
					"duration_ms": duration.Milliseconds(),
				})
			default:
				requestLogger.Info(ctx, "Request completed", types.Fields{
					"status":      resp.Status(),
					"duration_ms": duration.Milliseconds(),
				})
			}

			resp.Duration = duration

			return resp, err
		}
	}
}

// MetricsMiddleware records per-route metrics for request processing
func MetricsMiddleware(provider observability.Provider) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (Response, error) {
			metrics := provider.Metrics("handler")

			operation := req.Route
			if operation == "" {
				operation = "unknown"
			}

			metrics.StartOperation(operation)
			defer metrics.EndOperation(operation)

			start := time.Now()
			resp, err := next(ctx, req)
			metrics.RecordDuration(operation, time.Since(start).Seconds())

			switch {
			case err != nil:
				metrics.RecordError(operation, "processing_error")
			case !resp.Success():
				metrics.RecordError(operation, strings.ToLower(resp.Error.Code))
			default:
				metrics.RecordSuccess(operation)
			}

			return resp, err
		}
	}
}

// RecoveryMiddleware recovers from panics and returns an error response.
// It must be the outermost layer to catch all panics.
func RecoveryMiddleware(provider observability.Provider) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (resp Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					provider.Logger("handler").Error(ctx, "Panic recovered", fmt.Errorf("%v", r), types.Fields{
						"request_id": req.ID,
						"route":      req.Route,
						"stack":      string(debug.Stack()),
					})
					provider.Metrics("handler").RecordError("panic", "panic_recovered")

					// Panic details stay in the logs.
					resp = NewErrorResponse(req.ID, http.StatusInternalServerError,
						CodeInternal, "An internal error occurred", "")
					err = fmt.Errorf("panic recovered: %v", r)
				}
			}()

			return next(ctx, req)
		}
	}
}

// TracingMiddleware ensures each request has a request id and a trace id for
// correlation, and echoes both on the response.
func TracingMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (Response, error) {
			if req.ID == "" {
				req.ID = uuid.New().String()
			}

			traceID := extractTraceID(req)
			if traceID == "" {
				traceID = req.ID
			}

			ctx = context.WithValue(ctx, types.RequestIDKey, req.ID)
			ctx = context.WithValue(ctx, types.TraceIDKey, traceID)
			req.SetMetadata("trace_id", traceID)

			resp, err := next(ctx, req)

			resp.ID = req.ID
			resp.SetMetadata("Trace-ID", traceID)

			return resp, err
		}
	}
}

// ValidationMiddleware rejects POST and PUT requests whose body is missing
// or is not well-formed JSON.
func ValidationMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req Request) (Response, error) {
			if req.Method != http.MethodPost && req.Method != http.MethodPut {
				return next(ctx, req)
			}

			if len(strings.TrimSpace(string(req.Payload))) == 0 {
				return NewErrorResponse(req.ID, http.StatusBadRequest, CodeValidation,
					"Request body is required", "Empty payload"), nil
			}

			if !json.Valid(req.Payload) {
				return NewErrorResponse(req.ID, http.StatusBadRequest, CodeValidation,
					"Invalid JSON payload", "Payload must be valid JSON"), nil
			}

			return next(ctx, req)
		}
	}
}

// extractTraceID looks for a propagated trace id in the request metadata.
func extractTraceID(req Request) string {
	traceKeys := []string{
		"trace_id",
		"x-trace-id",
		"x-b3-traceid",
		"x-amzn-trace-id",
		"correlation-id",
	}

	for _, key := range traceKeys {
		if val, ok := req.Metadata[key]; ok && val != "" {
			return val
		}
	}

	return ""
}
