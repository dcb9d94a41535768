package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/merchly/order-system/order-service/config"
	"github.com/merchly/order-system/order-service/handlers"
	"github.com/merchly/order-system/shared/logging"
	"github.com/merchly/order-system/shared/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		bootLog := logging.New("order-service")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(cfg.ServiceName)
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting service")

	// Initialize telemetry
	ctx := context.Background()
	telemetryConfig := telemetry.NewConfigForService(
		cfg.ServiceName,
		cfg.Telemetry.Version,
		cfg.Telemetry.OTLPEndpoint,
	)
	tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telemetryConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer telemetryShutdown()

	// Initialize dependencies
	deps, err := config.BuildDependencies(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dependencies")
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Error().Err(err).Msg("error closing dependencies")
		}
	}()

	// Start event subscriber
	go func() {
		if err := deps.EventSubscriber.Subscribe(context.Background(), "", deps.OrderEventHandlers); err != nil {
			log.Error().Err(err).Msg("event subscriber stopped")
		}
	}()

	// Start the stale pending order sweep
	deps.Reconciler.Start(ctx)

	// Setup HTTP router
	router := setupRouter(tel, deps)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	// The sweep stops before the HTTP server so a compensation run is
	// never cut off mid-order.
	deps.Reconciler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("stopped")
}

func setupRouter(tel *telemetry.Telemetry, deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Telemetry middleware (inject telemetry into context)
	if tel != nil {
		r.Use(telemetry.Middleware(tel))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", handlers.NewMetricsHandler())

	// Register order routes
	deps.OrderHandlers.RegisterRoutes(r)

	return r
}
