package platforms

import (
	"errors"
	"io"
	"net/http"

	"recontracker/handler"
)

// HTTPAdapter adapts the handler for net/http servers.
type HTTPAdapter struct {
	handler *handler.Handler
}

// NewHTTPAdapter creates a new HTTP adapter with the provided handler.
func NewHTTPAdapter(h *handler.Handler) *HTTPAdapter {
	return &HTTPAdapter{handler: h}
}

// ServeHTTP implements the http.Handler interface.
func (a *HTTPAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for key, value := range corsHeaders {
		w.Header().Set(key, value)
	}

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.URL.Path == healthPath {
		status, body := checkHealth(r.Context(), a.handler)
		a.write(w, status, map[string]string{"Content-Type": "application/json"}, body)
		return
	}

	req := a.buildRequest(r)

	body, err := a.readBody(w, r)
	if err != nil {
		details := err.Error()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			details = "request body too large"
		}
		status, headers, payload := encodeResponse(handler.NewErrorResponse(req.ID,
			http.StatusBadRequest, handler.CodeValidation, "Failed to read request body", details), nil)
		a.write(w, status, headers, payload)
		return
	}
	req.Payload = body

	resp, err := a.handler.Handle(r.Context(), req)
	status, headers, payload := encodeResponse(resp, err)
	a.write(w, status, headers, payload)
}

// readBody reads the body up to the configured size limit.
func (a *HTTPAdapter) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	maxSize := a.handler.Config().MaxRequestSize
	if maxSize <= 0 {
		maxSize = handler.DefaultConfig().MaxRequestSize
	}

	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxSize))
}

// buildRequest creates a platform-agnostic request from an HTTP request.
// The body is filled in separately.
func (a *HTTPAdapter) buildRequest(r *http.Request) handler.Request {
	req := handler.NewRequest("http", r.Method, r.URL.Path, nil)
	if id := r.Header.Get(requestIDHeader); id != "" {
		req.ID = id
	}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			req.Query[key] = values[0]
		}
	}

	for _, name := range traceHeaders {
		if value := r.Header.Get(name); value != "" {
			req.SetMetadata(headerKey(name), value)
		}
	}
	req.SetMetadata("remote_addr", r.RemoteAddr)
	if ua := r.UserAgent(); ua != "" {
		req.SetMetadata("user_agent", ua)
	}

	return req
}

func (a *HTTPAdapter) write(w http.ResponseWriter, status int, headers map[string]string, body []byte) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
