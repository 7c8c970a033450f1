package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/circuito/internal/adapters/http/api"
	"github.com/okian/circuito/internal/adapters/http/site"
	"github.com/okian/circuito/internal/adapters/http/swagger"
	"github.com/okian/circuito/pkg/logger"
	"github.com/okian/circuito/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func runServe(cmd *cobra.Command, _ []string) error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := setup(ctx)
	if err != nil {
		return err
	}
	cfg := d.cfg
	lg := logger.Get()

	mux, err := newMux(ctx, d)
	if err != nil {
		return err
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		lg.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("data_path", cfg.DataPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	lg.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	lg.Info(ctx, "server stopped")
	return nil
}

// newMux registers the pages, the JSON API and the API docs.
func newMux(ctx context.Context, d *deps) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	api.NewServer(d.source, d.cfg.GeneralCategory).Register(ctx, mux)

	pages, err := site.New(d.registry, d.cfg.Pages, site.WithSiteTitle(d.cfg.SiteTitle))
	if err != nil {
		return nil, err
	}
	pages.Register(ctx, mux)
	return mux, nil
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
}
