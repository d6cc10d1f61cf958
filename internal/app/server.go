package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dryice-locator/locator/internal/listings"
	"github.com/dryice-locator/locator/internal/observability"
	"github.com/dryice-locator/locator/internal/view"
)

// Components is the wired application without a listening socket.
type Components struct {
	Store   *listings.Store
	Metrics *observability.Metrics
	Router  http.Handler
}

// Build loads the listings file and assembles the HTTP handler.
func Build(ctx context.Context, cfg *Config, logger *slog.Logger) (*Components, error) {
	metrics := observability.NewMetrics()

	store := listings.NewStore(cfg.ListingsPath, logger, metrics)
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}

	templates, err := view.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	service := listings.NewService(store)
	handler := listings.NewHandler(logger, service, templates, cfg.SubmitURL)

	router := NewRouter(RouterParams{
		Logger:          logger,
		Config:          cfg,
		ListingsHandler: handler,
		Snapshots:       store,
		Metrics:         metrics,
		AccessLog:       true,
	})
	return &Components{Store: store, Metrics: metrics, Router: router}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	components, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.ListingsWatch {
		watcher, err := listings.NewWatcher(components.Store, logger, cfg.ListingsDebounce)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("listings watcher disabled", slog.Any("error", err))
		}
		defer watcher.Stop()
	}

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      components.Router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("listings", cfg.ListingsPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
