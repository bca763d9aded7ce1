package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/hueblend/internal/adapters/http/api"
	"github.com/okian/hueblend/internal/adapters/http/site"
	"github.com/okian/hueblend/internal/adapters/http/swagger"
	app "github.com/okian/hueblend/internal/app"
	"github.com/okian/hueblend/internal/config"
	"github.com/okian/hueblend/pkg/logger"
	"github.com/okian/hueblend/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// run serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(metrics.WithNamespace(cfg.MetricsNamespace))

	svc := newService(cfg)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc),
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Websocket streams are hijacked and not tracked by Shutdown; closing
	// the display ends them.
	svc.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	loggerInstance.Info(ctx, "server stopped")
	return nil
}

// newService maps configuration onto service options.
func newService(cfg *config.Config) *app.Service {
	return app.New(
		app.WithLogger(logger.Named("service")),
		app.WithEpsilon(cfg.DegenerateEpsilon),
		app.WithInitialHues(cfg.InitialHue0, cfg.InitialHue1),
		app.WithStreamBuffer(cfg.StreamBuffer),
		app.WithMaxSubscribers(cfg.MaxSubscribers),
	)
}

// newHandler wires every route onto one mux.
func newHandler(ctx context.Context, svc *app.Service) http.Handler {
	mux := http.NewServeMux()

	// API docs under /api-docs and /openapi.yaml
	swagger.Register(ctx, mux)

	// Business API routes backed by the service.
	api.NewServer(svc, svc).Register(ctx, mux)

	// The blend page takes everything else.
	site.Register(ctx, mux)

	return api.RequestIDMiddleware(mux)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
