package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/sanitize"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/theme"
)

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	themeID := r.URL.Query().Get("themeId")
	if themeID == "" {
		writeError(w, http.StatusBadRequest, "themeId query parameter is required")
		return
	}
	sections, err := s.store.ListSectionsByTheme(r.Context(), themeID)
	if err != nil {
		slog.Error("listing sections", "theme", themeID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list sections")
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var sec theme.Section
	if err := decodeJSON(r, &sec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid section payload")
		return
	}
	if sec.ThemeID == "" || sec.Name == "" {
		writeError(w, http.StatusBadRequest, "themeId and name are required")
		return
	}
	if _, err := s.store.GetTheme(r.Context(), sec.ThemeID); err != nil {
		writeStoreError(w, err, "theme")
		return
	}

	s.cleanSection(&sec)
	if err := s.store.CreateSection(r.Context(), &sec); err != nil {
		slog.Error("creating section", "theme", sec.ThemeID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create section")
		return
	}
	writeJSON(w, http.StatusCreated, &sec)
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	sec, err := s.store.GetSection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "section")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := s.store.GetSection(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "section")
		return
	}

	var sec theme.Section
	if err := decodeJSON(r, &sec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid section payload")
		return
	}
	sec.ID = id
	sec.ThemeID = existing.ThemeID
	sec.CreatedAt = existing.CreatedAt

	s.cleanSection(&sec)
	if err := s.store.UpdateSection(r.Context(), &sec); err != nil {
		writeStoreError(w, err, "section")
		return
	}
	writeJSON(w, http.StatusOK, &sec)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSection(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "section")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cleanSection sanitizes the user-supplied fragments of a section before they
// are stored or rendered anywhere.
func (s *Server) cleanSection(sec *theme.Section) {
	if sec.HTMLContent != "" {
		sec.HTMLContent = s.sanitizer.HTML(sec.HTMLContent)
	}
	if sec.CustomCSS != "" {
		sec.CustomCSS = sanitize.CSS(sec.CustomCSS)
	}
}
