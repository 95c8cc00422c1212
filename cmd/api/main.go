package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pgRepo "item-monitor/internal/infra/adapter/persistence/postgres"
	"item-monitor/internal/infra/db"
	"item-monitor/internal/resilience/circuitbreaker"
	"item-monitor/pkg/config"

	itemUC "item-monitor/internal/usecase/item"

	hhttp "item-monitor/internal/handler/http"
	hitem "item-monitor/internal/handler/http/item"
	"item-monitor/internal/handler/http/requestid"
	"item-monitor/internal/observability/logging"
	"item-monitor/internal/observability/metrics"
	"item-monitor/internal/observability/tracing"
)

func main() {
	logger := initLogger()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("invalid server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()

	registry := metrics.NewRegistry()
	httpMetrics, appMetrics, sampler := setupMetrics(logger, registry, cfg)

	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	repo := pgRepo.NewItemRepo(breaker, appMetrics)
	svc := &itemUC.Service{Repo: repo, Metrics: appMetrics}

	// Populate the item count gauge before the first scrape.
	syncCtx, syncCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := svc.SyncItemCount(syncCtx); err != nil {
		logger.Warn("initial item count sync failed", slog.Any("error", err))
	}
	syncCancel()

	mux := setupRoutes(database, version, svc, registry, sampler, cfg)
	handler := applyMiddleware(logger, mux, httpMetrics, cfg)

	runServer(logger, handler, cfg, version)
}

// initLogger initializes the structured logger and installs it as default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupMetrics registers all instruments on the registry. A schema conflict
// here is a programming error and aborts startup; an unavailable procfs only
// disables process gauges.
func setupMetrics(logger *slog.Logger, registry *metrics.Registry, cfg config.ServerConfig) (*hhttp.HTTPMetrics, *metrics.AppMetrics, *metrics.SystemSampler) {
	httpMetrics, err := hhttp.NewHTTPMetrics(registry, logger, hhttp.MetricsConfig{
		TrackResponseSize: cfg.TrackResponseSize,
		ExcludeSelf:       cfg.ExcludeMetricsEndpoint,
	})
	if err != nil {
		logger.Error("failed to register HTTP metrics", slog.Any("error", err))
		os.Exit(1)
	}

	appMetrics, err := metrics.NewAppMetrics(registry, logger)
	if err != nil {
		logger.Error("failed to register business metrics", slog.Any("error", err))
		os.Exit(1)
	}

	sampler, err := metrics.NewSystemSampler(registry, logger)
	if err != nil {
		logger.Warn("process metrics unavailable", slog.Any("error", err))
		sampler = nil
	}

	return httpMetrics, appMetrics, sampler
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	database *sql.DB,
	version string,
	svc *itemUC.Service,
	registry *metrics.Registry,
	sampler *metrics.SystemSampler,
	cfg config.ServerConfig,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", &hhttp.RootHandler{Version: version})
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler(registry, sampler))

	var writeLimiter *hhttp.RateLimiter
	if cfg.WriteRateLimit > 0 {
		writeLimiter = hhttp.NewRateLimiter(cfg.WriteRateLimit, cfg.WriteRateBurst)
	}
	var write hitem.Middleware
	if writeLimiter != nil {
		write = writeLimiter.Middleware
	}
	hitem.Register(mux, svc, write)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): tracing, request ID, recovery, logging,
// body limit, timeout, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, httpMetrics *hhttp.HTTPMetrics, cfg config.ServerConfig) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = httpMetrics.Middleware(chain)
	chain = hhttp.Timeout(cfg.RequestTimeout)(chain)
	chain = hhttp.LimitRequestBody(cfg.MaxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = tracing.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, cfg config.ServerConfig, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
