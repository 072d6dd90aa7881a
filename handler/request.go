package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Error codes carried in the error envelope.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Request represents an incoming API call independently of the transport
// that delivered it (net/http or an API Gateway proxy event).
type Request struct {
	// ID is a unique identifier for the request (for tracing)
	ID string `json:"id"`

	// Source identifies the delivering platform (http, lambda)
	Source string `json:"source"`

	Method string `json:"method"`
	Path   string `json:"path"`

	// Route is the name of the matched route, set by the router.
	Route string `json:"route,omitempty"`

	// PathParams holds the values of the route's path variables.
	PathParams map[string]string `json:"path_params,omitempty"`

	// Query holds the first value of every query parameter.
	Query map[string]string `json:"query,omitempty"`

	// Payload contains the raw request body
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context (selected headers, trace ids)
	Metadata map[string]string `json:"metadata,omitempty"`

	// Timestamp when the request was received
	Timestamp time.Time `json:"timestamp"`
}

// Response represents the outcome of a request.
// Exactly one of Data and Error is meaningful.
type Response struct {
	// ID correlates with the request ID
	ID string `json:"id"`

	StatusCode int `json:"status_code"`

	// Data is serialized as the response body on success
	Data interface{} `json:"data,omitempty"`

	// Error is serialized inside the error envelope on failure
	Error *ErrorResponse `json:"error,omitempty"`

	// Metadata contains additional response context, sent as headers
	Metadata map[string]string `json:"metadata,omitempty"`

	// Duration of processing
	Duration time.Duration `json:"duration,omitempty"`
}

// ErrorResponse represents structured error information.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error *ErrorResponse `json:"error"`
}

// NewRequest creates a request with a fresh ID and timestamp.
func NewRequest(source, method, path string, payload []byte) Request {
	return Request{
		ID:         uuid.New().String(),
		Source:     source,
		Method:     method,
		Path:       path,
		PathParams: make(map[string]string),
		Query:      make(map[string]string),
		Payload:    payload,
		Metadata:   make(map[string]string),
		Timestamp:  time.Now().UTC(),
	}
}

// NewSuccessResponse creates a response whose body is data.
func NewSuccessResponse(requestID string, statusCode int, data interface{}) Response {
	return Response{
		ID:         requestID,
		StatusCode: statusCode,
		Data:       data,
	}
}

// NewErrorResponse creates a response carrying the error envelope.
func NewErrorResponse(requestID string, statusCode int, code, message, details string) Response {
	return Response{
		ID:         requestID,
		StatusCode: statusCode,
		Error: &ErrorResponse{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// Success reports whether the response carries no error.
func (r Response) Success() bool {
	return r.Error == nil
}

// Status returns the status code, falling back to 200 or 500 when unset.
func (r Response) Status() int {
	if r.StatusCode != 0 {
		return r.StatusCode
	}
	if r.Success() {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// Body serializes the wire body: Data on success, {"error": {...}} on failure.
func (r Response) Body() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(errorEnvelope{Error: r.Error})
	}
	return json.Marshal(r.Data)
}

// Param returns a path parameter by name.
func (r *Request) Param(name string) string {
	return r.PathParams[name]
}

// QueryValue returns a query parameter and whether it was present.
func (r *Request) QueryValue(name string) (string, bool) {
	value, ok := r.Query[name]
	return value, ok
}

// SetMetadata sets a metadata value on the request
func (r *Request) SetMetadata(key, value string) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]string)
	}
	r.Metadata[key] = value
}

// GetMetadata gets a metadata value from the request
func (r *Request) GetMetadata(key string) (string, bool) {
	if r.Metadata == nil {
		return "", false
	}
	val, ok := r.Metadata[key]
	return val, ok
}

// SetMetadata sets a metadata value on the response
func (r *Response) SetMetadata(key, value string) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]string)
	}
	r.Metadata[key] = value
}
