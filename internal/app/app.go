// Package app wires together all dependencies and runs the dashboard server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/CassioFig/retail-dashboard-app-server/internal/config"
	handler "github.com/CassioFig/retail-dashboard-app-server/internal/handler/http"
	"github.com/CassioFig/retail-dashboard-app-server/internal/repository/jsonfile"
	"github.com/CassioFig/retail-dashboard-app-server/internal/seed"
	"github.com/CassioFig/retail-dashboard-app-server/internal/service"
	"github.com/CassioFig/retail-dashboard-app-server/pkg/health"
)

// App holds the wired application and its HTTP server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", cfg.DataDir, err)
	}

	users := jsonfile.NewUserRepository(cfg.DataDir)
	products := jsonfile.NewProductRepository(cfg.DataDir)
	carts := jsonfile.NewCartRepository(cfg.DataDir)
	orders := jsonfile.NewOrderRepository(cfg.DataDir)
	reviews := jsonfile.NewReviewRepository(cfg.DataDir)

	if cfg.SeedOnStart {
		if err := seed.Run(ctx, products, users, logger); err != nil {
			return nil, fmt.Errorf("seed data directory: %w", err)
		}
	}

	svcs := handler.Services{
		Users:   service.NewUserService(users, logger),
		Catalog: service.NewCatalogService(products, logger),
		Cart:    service.NewCartService(carts, products, orders, logger),
		Reviews: service.NewReviewService(reviews, products, users, logger),
		Reports: service.NewReportService(orders, products, logger),
	}

	// Health checks. Readiness probes that the data directory is writable.
	healthHandler := health.NewHandler()
	healthHandler.Register("data-dir", func(ctx context.Context) error {
		probe := filepath.Join(cfg.DataDir, ".ready")
		if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
			return fmt.Errorf("data directory not writable: %w", err)
		}
		return os.Remove(probe)
	})

	router := handler.NewRouter(svcs, users, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("data_dir", a.cfg.DataDir),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
