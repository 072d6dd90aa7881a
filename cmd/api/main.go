package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recontracker/api"
	"recontracker/application/usecase"
	"recontracker/config"
	"recontracker/handler"
	"recontracker/infrastructure/database"
	"recontracker/infrastructure/repository"
	"recontracker/infrastructure/runtime"
	"recontracker/observability"
	"recontracker/observability/types"
)

func main() {
	cfg := loadConfiguration()

	provider := initializeObservability(cfg)
	defer provider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := initializeDependencies(ctx, cfg, provider)
	defer deps.db.Close()

	app := buildApplication(cfg, deps, provider)

	startApplication(ctx, cfg, app)
}

// Dependencies holds all initialized infrastructure components
type Dependencies struct {
	db      *database.DB
	logger  types.Logger
	metrics types.Metrics
}

// Application holds the complete application stack
type Application struct {
	runtime runtime.Runtime
	logger  types.Logger
	metrics types.Metrics
}

// loadConfiguration loads and validates the application configuration
func loadConfiguration() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

// initializeObservability sets up logging and metrics
func initializeObservability(cfg *config.Config) *observability.DefaultProvider {
	return observability.NewProvider(&observability.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
		AdditionalFields: observability.Fields{
			"version": cfg.Version,
		},
	})
}

// initializeDependencies opens the store and applies migrations
func initializeDependencies(ctx context.Context, cfg *config.Config, provider observability.Provider) *Dependencies {
	logger := provider.Logger("main")
	metrics := provider.Metrics("main")

	logger.Info(ctx, "Starting application", types.Fields{
		"service":     cfg.ServiceName,
		"version":     cfg.Version,
		"environment": cfg.Environment,
		"runtime":     cfg.Adapters.Runtime,
		"database":    cfg.Adapters.Database,
	})

	db, err := database.New(ctx, cfg, provider)
	if err != nil {
		logger.Error(ctx, "Failed to initialize database", err, nil)
		metrics.RecordError("init", "database")
		log.Fatalf("Failed to initialize database: %v", err)
	}
	metrics.RecordSuccess("init")

	return &Dependencies{
		db:      db,
		logger:  logger,
		metrics: metrics,
	}
}

// buildApplication assembles the application layers
func buildApplication(cfg *config.Config, deps *Dependencies, provider observability.Provider) *Application {
	service := usecase.NewTrackerService(deps.db, repository.Factory(provider), provider)

	worker := api.NewWorker(service, provider.Logger("api"), provider.Metrics("api"))

	h := handler.NewFactory(worker, provider).
		WithConfig(handler.ConfigFrom(cfg)).
		Create()

	rt, err := runtime.Create(cfg, h, provider)
	if err != nil {
		deps.logger.Error(context.Background(), "Failed to create runtime", err, nil)
		log.Fatalf("Failed to create runtime: %v", err)
	}

	return &Application{
		runtime: rt,
		logger:  deps.logger,
		metrics: deps.metrics,
	}
}

// startApplication runs the runtime until it fails or a shutdown signal arrives
func startApplication(ctx context.Context, cfg *config.Config, app *Application) {
	startTime := time.Now()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.runtime.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			app.logger.Error(ctx, "Runtime stopped with error", err, nil)
			app.metrics.RecordError("runtime", "start")
			return
		}
	case <-ctx.Done():
		app.logger.Info(context.Background(), "Shutting down gracefully", types.Fields{
			"uptime_seconds": time.Since(startTime).Seconds(),
		})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := app.runtime.Stop(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "Graceful shutdown failed", err, nil)
			return
		}
		select {
		case <-errCh:
		case <-shutdownCtx.Done():
		}
	}

	app.logger.Info(context.Background(), "Shutdown complete", nil)
}
