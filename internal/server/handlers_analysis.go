package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/monitoring"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/sanitize"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/theme"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/webextract"
)

type urlRequest struct {
	URL string `json:"url"`
}

type injectionPointsRequest struct {
	URL  string `json:"url,omitempty"`
	HTML string `json:"html,omitempty"`
}

type injectionScriptRequest struct {
	HTMLContent    string `json:"htmlContent"`
	CSSContent     string `json:"cssContent"`
	TargetSelector string `json:"targetSelector"`
	Method         string `json:"method"`
}

type proxyFetchRequest struct {
	URL       string `json:"url"`
	CustomCSS string `json:"customCss,omitempty"`
}

type extractResponse struct {
	Theme    *theme.Theme                  `json:"theme"`
	Sections []*theme.Section              `json:"sections"`
	Features webextract.CSSFeatureSet      `json:"features"`
	Regions  []webextract.ExtractedSection `json:"regions"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	analysis, err := s.extractor.Analyze(r.Context(), req.URL)
	if err != nil {
		slog.Error("analysis failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to analyze website")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// handleExtract runs the full pipeline for a URL: snapshot, CSS features,
// segmentation, then persists an auto-created theme with one ordered section
// per extracted region.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	start := time.Now()
	site, err := s.extractor.ExtractSite(r.Context(), req.URL)
	if err != nil {
		slog.Error("extraction failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to extract website")
		return
	}

	features := webextract.ExtractCSSFeatures(site.HTML)
	regions, err := webextract.ExtractSections(site.HTML, site.CSS)
	if err != nil {
		slog.Error("segmentation failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to segment website")
		return
	}
	monitoring.ExtractionDuration.Observe(time.Since(start).Seconds())

	name, description := webextract.DeriveThemeInfo(site.HTML, req.URL)
	t := &theme.Theme{
		Name:            name,
		Description:     description,
		SourceURL:       req.URL,
		ExtractedHTML:   site.HTML,
		ExtractedCSS:    site.CSS,
		ExtractedColors: features.Colors,
		ExtractedFonts:  features.Fonts,
		GlobalStyles: theme.GlobalStyles{
			PrimaryColor:    features.GlobalStyles.PrimaryColor,
			SecondaryColor:  features.GlobalStyles.SecondaryColor,
			FontFamily:      features.GlobalStyles.FontFamily,
			BaseFontSize:    "16px",
			BackgroundColor: features.GlobalStyles.BackgroundColor,
			TextColor:       features.GlobalStyles.Color,
		},
	}
	if err := s.store.CreateTheme(r.Context(), t); err != nil {
		slog.Error("saving theme", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}

	sections := make([]*theme.Section, 0, len(regions))
	for i, region := range regions {
		section := &theme.Section{
			ThemeID:       t.ID,
			Name:          region.Name,
			Type:          theme.SectionType(region.Type),
			CSSProperties: theme.DefaultCSSProperties(),
			CustomCSS:     region.CSS,
			HTMLContent:   region.HTML,
			Order:         i,
			IsActive:      true,
		}
		if err := s.store.CreateSection(r.Context(), section); err != nil {
			slog.Error("saving section", "theme", t.ID, "section", region.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save sections")
			return
		}
		sections = append(sections, section)
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Theme:    t,
		Sections: sections,
		Features: features,
		Regions:  regions,
	})
}

func (s *Server) handleInjectionPoints(w http.ResponseWriter, r *http.Request) {
	var req injectionPointsRequest
	if err := decodeJSON(r, &req); err != nil || (req.URL == "" && req.HTML == "") {
		writeError(w, http.StatusBadRequest, "url or html is required")
		return
	}

	htmlSrc := req.HTML
	if htmlSrc == "" {
		site, err := s.extractor.ExtractSite(r.Context(), req.URL)
		if err != nil {
			slog.Error("fetch for injection analysis failed", "url", req.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch website")
			return
		}
		htmlSrc = site.HTML
	}

	points, err := webextract.FindInjectionPoints(htmlSrc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to analyze document")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"injectionPoints": points})
}

func (s *Server) handleInjectionScript(w http.ResponseWriter, r *http.Request) {
	var req injectionScriptRequest
	if err := decodeJSON(r, &req); err != nil || req.TargetSelector == "" {
		writeError(w, http.StatusBadRequest, "targetSelector is required")
		return
	}

	method := webextract.InjectionMethod(req.Method)
	switch method {
	case webextract.InjectPrepend, webextract.InjectAppend, webextract.InjectBefore,
		webextract.InjectAfter, webextract.InjectReplace:
	default:
		writeError(w, http.StatusBadRequest, "invalid injection method")
		return
	}

	script := webextract.GenerateInjectionScript(
		s.sanitizer.HTML(req.HTMLContent),
		sanitize.CSS(req.CSSContent),
		req.TargetSelector,
		method,
	)
	writeJSON(w, http.StatusOK, map[string]string{"script": script})
}

func (s *Server) handleProxyFetch(w http.ResponseWriter, r *http.Request) {
	var req proxyFetchRequest
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	rawHTML, err := s.extractor.FetchRaw(r.Context(), req.URL)
	if err != nil {
		slog.Error("proxy fetch failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch website")
		return
	}

	out := rawHTML
	if req.CustomCSS != "" {
		out, err = webextract.InjectCustomCSS(rawHTML, sanitize.CSS(req.CustomCSS), req.URL)
		if err != nil {
			slog.Error("css injection failed", "url", req.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to prepare page")
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}
