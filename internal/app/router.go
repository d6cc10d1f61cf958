package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dryice-locator/locator/internal/listings"
	"github.com/dryice-locator/locator/internal/observability"
	"github.com/dryice-locator/locator/internal/platform/httpx"
	"github.com/dryice-locator/locator/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	ListingsHandler *listings.Handler
	Snapshots       listings.Source
	Metrics         *observability.Metrics
	AccessLog       bool
}

// NewRouter constructs the chi.Router with locator defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	if params.AccessLog {
		r.Use(chimw.Logger)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, fmt.Errorf("%s: %w", r.URL.Path, httpx.ErrNotFound))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		count := 0
		if params.Snapshots != nil {
			count = params.Snapshots.Snapshot().Len()
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok", "listings": count})
	})

	if params.ListingsHandler != nil {
		params.ListingsHandler.MountRoutes(r)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler lets browsers keep embedded assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
