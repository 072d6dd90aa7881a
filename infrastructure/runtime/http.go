package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"recontracker/config"
	"recontracker/handler"
	"recontracker/handler/platforms"
	"recontracker/observability"
	"recontracker/observability/types"

	"github.com/gorilla/mux"
)

// HTTPRuntime serves the API and, when enabled, /metrics from one net/http server.
type HTTPRuntime struct {
	config  *config.HTTPConfig
	handler *handler.Handler
	obs     observability.Provider
	logger  types.Logger
	metrics types.Metrics

	withMetrics bool

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewHTTPRuntime creates the HTTP runtime
func NewHTTPRuntime(cfg *config.HTTPConfig, withMetrics bool, h *handler.Handler, obs observability.Provider) *HTTPRuntime {
	return &HTTPRuntime{
		config:      cfg,
		handler:     h,
		obs:         obs,
		logger:      obs.Logger("runtime.http"),
		metrics:     obs.Metrics("runtime.http"),
		withMetrics: withMetrics,
	}
}

// Routes builds the top-level router: /metrics first, everything else to the API.
func (r *HTTPRuntime) Routes() http.Handler {
	router := mux.NewRouter()
	if r.withMetrics {
		router.Handle("/metrics", r.obs.MetricsHandler()).Methods(http.MethodGet)
	}
	router.PathPrefix("/").Handler(platforms.NewHTTPAdapter(r.handler))
	return router
}

// Listen binds the configured address. Start calls it when needed.
func (r *HTTPRuntime) Listen() (net.Addr, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listener != nil {
		return r.listener.Addr(), nil
	}

	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", r.config.Addr, err)
	}
	r.listener = ln
	r.server = &http.Server{
		Handler:      r.Routes(),
		ReadTimeout:  r.config.ReadTimeout,
		WriteTimeout: r.config.WriteTimeout,
	}
	return ln.Addr(), nil
}

// Start serves until Stop is called
func (r *HTTPRuntime) Start() error {
	addr, err := r.Listen()
	if err != nil {
		r.metrics.RecordError("start", "listen")
		return err
	}

	r.mu.Lock()
	server, ln := r.server, r.listener
	r.mu.Unlock()

	r.logger.Info(context.Background(), "Starting HTTP server", types.Fields{
		"address": addr.String(),
	})
	r.metrics.RecordSuccess("start")

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.metrics.RecordError("serve", "server_error")
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server
func (r *HTTPRuntime) Stop(ctx context.Context) error {
	r.mu.Lock()
	server := r.server
	r.mu.Unlock()

	if server == nil {
		return nil
	}

	r.logger.Info(ctx, "Shutting down HTTP server", nil)
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
