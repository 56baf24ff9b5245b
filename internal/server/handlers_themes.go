package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/store"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/theme"
)

func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.store.ListThemes(r.Context())
	if err != nil {
		slog.Error("listing themes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list themes")
		return
	}
	writeJSON(w, http.StatusOK, themes)
}

func (s *Server) handleCreateTheme(w http.ResponseWriter, r *http.Request) {
	var t theme.Theme
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid theme payload")
		return
	}
	if t.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if t.GlobalStyles == (theme.GlobalStyles{}) {
		t.GlobalStyles = theme.DefaultGlobalStyles()
	}

	if err := s.store.CreateTheme(r.Context(), &t); err != nil {
		slog.Error("creating theme", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create theme")
		return
	}
	writeJSON(w, http.StatusCreated, &t)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTheme(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "theme")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTheme(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := s.store.GetTheme(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "theme")
		return
	}

	var t theme.Theme
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid theme payload")
		return
	}
	t.ID = id
	t.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateTheme(r.Context(), &t); err != nil {
		writeStoreError(w, err, "theme")
		return
	}
	writeJSON(w, http.StatusOK, &t)
}

func (s *Server) handleDeleteTheme(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTheme(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "theme")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSS(w http.ResponseWriter, r *http.Request) {
	t, sections, err := s.themeWithSections(r)
	if err != nil {
		writeStoreError(w, err, "theme")
		return
	}

	css := theme.ExportCSS(*t, sections, time.Now())
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", t.Name+".css"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(css))
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	t, sections, err := s.themeWithSections(r)
	if err != nil {
		writeStoreError(w, err, "theme")
		return
	}
	writeJSON(w, http.StatusOK, theme.NewExportJSON(*t, sections, time.Now()))
}

func (s *Server) themeWithSections(r *http.Request) (*theme.Theme, []theme.Section, error) {
	id := chi.URLParam(r, "id")
	t, err := s.store.GetTheme(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	stored, err := s.store.ListSectionsByTheme(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	sections := make([]theme.Section, len(stored))
	for i, sec := range stored {
		sections[i] = *sec
	}
	return t, sections, nil
}

func writeStoreError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	slog.Error("store operation", "error", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}
