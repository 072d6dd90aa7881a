// Package platforms adapts transport events (net/http requests, API Gateway
// proxy events) to the platform-agnostic handler.Request and back.
package platforms

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"recontracker/handler"
)

const (
	healthPath      = "/health"
	requestIDHeader = "X-Request-ID"
)

// corsHeaders are attached to every response.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "*",
}

// traceHeaders are copied into request metadata under their lowercased name.
var traceHeaders = []string{
	"X-Trace-ID",
	"X-B3-TraceId",
	"X-Amzn-Trace-Id",
	"Correlation-ID",
}

type healthBody struct {
	Status string `json:"status"`
}

// checkHealth answers the health endpoint.
func checkHealth(ctx context.Context, h *handler.Handler) (int, []byte) {
	status, body := http.StatusOK, healthBody{Status: "healthy"}
	if err := h.Health(ctx); err != nil {
		status, body = http.StatusServiceUnavailable, healthBody{Status: "unhealthy"}
	}
	payload, _ := json.Marshal(body)
	return status, payload
}

// encodeResponse renders a handler outcome as status, headers and body.
// A processing error becomes a 500 whose details are left to the logs.
func encodeResponse(resp handler.Response, err error) (int, map[string]string, []byte) {
	if err != nil {
		resp = handler.NewErrorResponse(resp.ID, http.StatusInternalServerError,
			handler.CodeInternal, "Request processing failed", "")
	}

	body, marshalErr := resp.Body()
	if marshalErr != nil {
		resp = handler.NewErrorResponse(resp.ID, http.StatusInternalServerError,
			handler.CodeInternal, "Failed to encode response", "")
		body, _ = resp.Body()
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if resp.ID != "" {
		headers[requestIDHeader] = resp.ID
	}
	for key, value := range resp.Metadata {
		headers["X-"+key] = value
	}

	return resp.Status(), headers, body
}

func headerKey(name string) string {
	return strings.ToLower(name)
}
