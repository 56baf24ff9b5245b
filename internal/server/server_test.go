package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/config"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/store"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/theme"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/webextract"
)

type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	body, ok := f.pages[url]
	if !ok {
		return "", errors.New("unreachable")
	}
	return body, nil
}

func newTestServer(t *testing.T, pages map[string]string) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	extractor := webextract.NewService(&stubFetcher{pages: pages})
	return New(config.Default(), st, extractor), st
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestThemeLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/themes/", map[string]any{"name": "Minimal"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created theme.Theme
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	// Defaults backfilled when the payload has no global styles.
	assert.Equal(t, theme.DefaultGlobalStyles(), created.GlobalStyles)

	rec = doJSON(t, router, http.MethodGet, "/api/themes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	created.Name = "Renamed"
	rec = doJSON(t, router, http.MethodPut, "/api/themes/"+created.ID, created)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/themes/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Renamed")

	rec = doJSON(t, router, http.MethodDelete, "/api/themes/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/themes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTheme_MissingName(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/themes/", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSectionLifecycle(t *testing.T) {
	srv, st := newTestServer(t, nil)
	router := srv.Router()

	th := &theme.Theme{Name: "Host", GlobalStyles: theme.DefaultGlobalStyles()}
	require.NoError(t, st.CreateTheme(context.Background(), th))

	rec := doJSON(t, router, http.MethodPost, "/api/sections/", map[string]any{
		"themeId":     th.ID,
		"name":        "Header",
		"type":        "header",
		"htmlContent": `<header class="top"><script>x()</script>Hi</header>`,
		"customCss":   `@import url("https://evil.example/a.css"); .top { color: red; }`,
		"isActive":    true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created theme.Section
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotContains(t, created.HTMLContent, "<script")
	assert.NotContains(t, created.CustomCSS, "@import")
	assert.Contains(t, created.CustomCSS, ".top { color: red; }")

	rec = doJSON(t, router, http.MethodGet, "/api/sections/?themeId="+th.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Header")

	created.Name = "Main Header"
	rec = doJSON(t, router, http.MethodPut, "/api/sections/"+created.ID, created)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/sections/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateSection_UnknownTheme(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/sections/", map[string]any{
		"themeId": "missing", "name": "X",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const fixturePage = `<html><head><title>Acme Landing</title></head><body>
<header id="top"><nav>links</nav></header>
<div class="hero"><h1>Build faster</h1><p>Ship your site today with our toolkit.</p></div>
<section class="pricing"><h2>Plans</h2><p>Monthly and yearly billing for teams of all sizes.</p></section>
<footer class="footer"><p>All rights reserved</p></footer>
</body></html>`

func TestExtract_CreatesThemeAndSections(t *testing.T) {
	srv, st := newTestServer(t, map[string]string{"https://acme.example/": fixturePage})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/analysis/extract", map[string]string{
		"url": "https://acme.example/",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Theme    theme.Theme                   `json:"theme"`
		Sections []theme.Section               `json:"sections"`
		Regions  []webextract.ExtractedSection `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Theme.ID)
	assert.Equal(t, "https://acme.example/", resp.Theme.SourceURL)
	require.NotEmpty(t, resp.Sections)
	assert.Len(t, resp.Sections, len(resp.Regions))

	for i, sec := range resp.Sections {
		assert.Equal(t, i, sec.Order)
		assert.True(t, sec.IsActive)
		assert.Equal(t, resp.Theme.ID, sec.ThemeID)
	}

	stored, err := st.ListSectionsByTheme(context.Background(), resp.Theme.ID)
	require.NoError(t, err)
	assert.Len(t, stored, len(resp.Sections))
}

func TestExtract_FetchFailure(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analysis/extract", map[string]string{
		"url": "https://down.example/",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInjectionPoints_FromInlineHTML(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analysis/injection-points", map[string]string{
		"html": "<html><body><header>h</header></body></html>",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		InjectionPoints []webextract.InjectionPoint `json:"injectionPoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.InjectionPoints)
	assert.Equal(t, "header", resp.InjectionPoints[0].Selector)
}

func TestInjectionScript(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analysis/injection-script", map[string]string{
		"htmlContent":    `<div class="acd-banner">Hi</div>`,
		"cssContent":     ".acd-banner { color: red; }",
		"targetSelector": "body",
		"method":         "append",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["script"], ".azavista-cd-banner")
}

func TestInjectionScript_InvalidMethod(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analysis/injection-script", map[string]string{
		"targetSelector": "body",
		"method":         "teleport",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProxyFetch(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"https://acme.example/": fixturePage})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/proxy/fetch", map[string]string{
		"url":       "https://acme.example/",
		"customCss": "body { background: pink; }",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), `id="custom-theme-css"`)
	assert.Contains(t, rec.Body.String(), "Build faster")
}

func TestAnalyze(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"https://acme.example/": fixturePage})
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/analysis/analyze", map[string]string{
		"url": "https://acme.example/",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis webextract.WebsiteAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.NotEmpty(t, analysis.Elements.Headers)
	assert.NotEmpty(t, analysis.Elements.Navigation)
}

func TestExportEndpoints(t *testing.T) {
	srv, st := newTestServer(t, nil)
	router := srv.Router()

	th := &theme.Theme{Name: "Exportable", GlobalStyles: theme.DefaultGlobalStyles()}
	require.NoError(t, st.CreateTheme(context.Background(), th))
	sec := &theme.Section{
		ThemeID:       th.ID,
		Name:          "Header",
		Type:          theme.TypeHeader,
		CSSProperties: theme.DefaultCSSProperties(),
		IsActive:      true,
	}
	require.NoError(t, st.CreateSection(context.Background(), sec))

	rec := doJSON(t, router, http.MethodGet, "/api/themes/"+th.ID+"/export/css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css"))
	assert.Contains(t, rec.Body.String(), "/* Theme: Exportable */")
	assert.Contains(t, rec.Body.String(), ".section-header-"+sec.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/themes/"+th.ID+"/export/json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env theme.ExportJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, theme.ExportVersion, env.Version)
	assert.Len(t, env.Sections, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/themes/missing/export/css", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
