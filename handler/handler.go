package handler

import (
	"context"
	"errors"
	"net/http"

	"recontracker/observability"
	"recontracker/observability/types"
)

type contextKey string

const platformKey contextKey = "platform"

// Handler wraps a Worker with routing and the middleware chain.
// Platform adapters translate their events into Requests and call Handle.
type Handler struct {
	worker      Worker
	router      *Router
	obs         observability.Provider
	middlewares []Middleware
	config      *Config
}

// Middleware defines the interface for handler middleware.
// Middlewares wrap the handler function to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// HandlerFunc is the function signature for handling requests.
// This is the core processing function that middlewares wrap.
type HandlerFunc func(ctx context.Context, req Request) (Response, error)

// NewHandler creates a new handler with the given worker and configuration.
// Most callers should use the Factory instead, which also installs middleware.
func NewHandler(worker Worker, provider observability.Provider, cfg *Config) *Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Handler{
		worker:      worker,
		router:      NewRouter(worker.Routes()),
		obs:         provider,
		config:      cfg,
		middlewares: []Middleware{},
	}
}

// Use adds middleware to the handler chain.
// Middleware is executed in the order it's added.
func (h *Handler) Use(middleware Middleware) {
	h.middlewares = append(h.middlewares, middleware)
}

// Handle routes a request and runs it through the middleware chain and worker.
// Unroutable requests are answered with 404 or 405 without reaching the worker.
func (h *Handler) Handle(ctx context.Context, req Request) (Response, error) {
	matched, err := h.router.Match(req)
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return NewErrorResponse(req.ID, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
			"Method not allowed", req.Method+" "+req.Path), nil
	case err != nil:
		return NewErrorResponse(req.ID, http.StatusNotFound, CodeNotFound,
			"Route not found", req.Path), nil
	}

	ctx = context.WithValue(ctx, types.RequestIDKey, matched.ID)
	ctx = context.WithValue(ctx, types.RouteKey, matched.Route)
	ctx = context.WithValue(ctx, platformKey, h.config.Platform)

	return h.buildHandlerChain()(ctx, matched)
}

// buildHandlerChain builds the middleware chain with the worker at the end.
// Middleware is applied in reverse order so that the first middleware
// added is the outermost layer.
func (h *Handler) buildHandlerChain() HandlerFunc {
	handler := h.workerHandler

	for i := len(h.middlewares) - 1; i >= 0; i-- {
		handler = h.middlewares[i](handler)
	}

	return handler
}

// workerHandler is the innermost layer of the middleware chain.
func (h *Handler) workerHandler(ctx context.Context, req Request) (Response, error) {
	return h.worker.Process(ctx, req)
}

// Health checks the health of the worker.
func (h *Handler) Health(ctx context.Context) error {
	return h.worker.Health(ctx)
}

// Config returns the handler configuration.
func (h *Handler) Config() *Config {
	return h.config
}

// Worker returns the underlying worker.
func (h *Handler) Worker() Worker {
	return h.worker
}
