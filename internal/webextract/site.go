// Package webextract decomposes arbitrary third-party web pages into
// reusable, styleable sections. There is no schema to rely on, so everything
// here is layered heuristics over one fetched snapshot: ordered
// classification passes, partial matches and graceful degradation instead of
// grammar-driven parsing.
package webextract

import (
	"context"
	"fmt"
	"log/slog"
	neturl "net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves raw HTML (or CSS text) for a URL. Implemented by the
// fetcher package; abstracted here so tests can substitute stubs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service runs the extraction pipeline. It holds no per-call state, so one
// Service is safely shared across concurrent extractions.
type Service struct {
	fetcher Fetcher
}

func NewService(f Fetcher) *Service {
	return &Service{fetcher: f}
}

// ExtractSite fetches a page and produces the immutable snapshot every
// downstream extraction step consumes: scripts stripped, asset URLs
// absolutized, inline styles and reachable external stylesheets concatenated
// into one CSS buffer.
//
// Stylesheet fetches are sequential and individually fallible: an unreachable
// stylesheet is logged, its link tag kept in the document, and extraction
// continues with the rest of the page.
func (s *Service) ExtractSite(ctx context.Context, pageURL string) (*ExtractedSite, error) {
	rawHTML, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	NormalizeAssets(doc, pageURL)

	var css strings.Builder
	doc.Find("style").Each(func(_ int, st *goquery.Selection) {
		css.WriteString(st.Text())
		css.WriteString("\n")
	})

	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		if href == "" {
			return
		}
		// NormalizeAssets already absolutized the href where possible.
		sheet, err := s.fetcher.Fetch(ctx, href)
		if err != nil {
			slog.Warn("stylesheet fetch failed, link kept in document",
				"stylesheet", href, "page", pageURL, "error", err)
			return
		}
		css.WriteString("/* inlined from " + href + " */\n")
		css.WriteString(RewriteCSSURLs(sheet, href))
		css.WriteString("\n")
		link.Remove()
	})

	htmlOut, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", pageURL, err)
	}

	return &ExtractedSite{HTML: htmlOut, CSS: css.String(), BaseURL: pageURL}, nil
}

// FetchRaw returns the page HTML exactly as the fetch chain delivered it,
// without normalization. Used for proxied rendering where the page's own
// scripts and relative structure must survive.
func (s *Service) FetchRaw(ctx context.Context, pageURL string) (string, error) {
	return s.fetcher.Fetch(ctx, pageURL)
}

// InjectCustomCSS prepares a fetched page for proxied rendering: asset URLs
// are absolutized, the caller's CSS is appended as an identifiable style tag
// and a base tag is prepended when the page lacks one. Scripts are kept
// intact here; the proxied page must keep behaving like the original.
func InjectCustomCSS(htmlSrc, customCSS, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	if base, err := neturl.Parse(baseURL); err == nil {
		doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
			rewriteAttr(s, "href", base)
		})
		doc.Find("script[src], img[src]").Each(func(_ int, s *goquery.Selection) {
			rewriteAttr(s, "src", base)
		})
	}

	if customCSS != "" {
		doc.Find("head").AppendHtml(`<style id="custom-theme-css">` + customCSS + `</style>`)
	}
	if doc.Find("base").Length() == 0 {
		doc.Find("head").PrependHtml(`<base href="` + baseURL + `">`)
	}

	return doc.Html()
}
