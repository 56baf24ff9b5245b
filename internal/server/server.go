// Package server exposes the extraction pipeline and theme store over a thin
// JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/config"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/sanitize"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/store"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/webextract"
)

type Server struct {
	cfg       *config.Config
	store     *store.Store
	extractor *webextract.Service
	sanitizer *sanitize.Sanitizer
	http      *http.Server
}

func New(cfg *config.Config, st *store.Store, extractor *webextract.Service) *Server {
	s := &Server{
		cfg:       cfg,
		store:     st,
		extractor: extractor,
		sanitizer: sanitize.New(),
	}
	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router assembles all routes. Exposed separately so tests can drive the
// handler stack without a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Logging)
	r.Use(Metrics)

	r.Get("/api/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/analysis", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/extract", s.handleExtract)
		r.Post("/injection-points", s.handleInjectionPoints)
		r.Post("/injection-script", s.handleInjectionScript)
	})

	r.Post("/api/proxy/fetch", s.handleProxyFetch)

	r.Route("/api/themes", func(r chi.Router) {
		r.Get("/", s.handleListThemes)
		r.Post("/", s.handleCreateTheme)
		r.Get("/{id}", s.handleGetTheme)
		r.Put("/{id}", s.handleUpdateTheme)
		r.Delete("/{id}", s.handleDeleteTheme)
		r.Get("/{id}/export/css", s.handleExportCSS)
		r.Get("/{id}/export/json", s.handleExportJSON)
	})

	r.Route("/api/sections", func(r chi.Router) {
		r.Get("/", s.handleListSections)
		r.Post("/", s.handleCreateSection)
		r.Get("/{id}", s.handleGetSection)
		r.Put("/{id}", s.handleUpdateSection)
		r.Delete("/{id}", s.handleDeleteSection)
	})

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
