// Package designer is the embeddable entry point to the extraction pipeline:
// fetch a site, segment it into typed sections and read its design tokens in
// one call, without running the HTTP server.
package designer

import (
	"context"
	"time"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/browser"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/config"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/fetcher"
	"github.com/meet-hub2701/azavista-css-designer-backend/internal/webextract"
)

type Designer struct {
	config  *config.Config
	service *webextract.Service
}

type ExtractOptions struct {
	Timeout time.Duration // overall deadline; zero means the caller's context rules
}

type ExtractResult struct {
	URL            string
	Name           string
	Description    string
	Sections       []webextract.ExtractedSection
	Features       webextract.CSSFeatureSet
	HTML           string
	CSS            string
	ProcessingTime time.Duration
}

func New(cfg *config.Config) *Designer {
	opts := fetcher.Options{
		RequestTimeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		BrowserTimeout: time.Duration(cfg.Network.BrowserTimeout) * time.Second,
		MaxRedirects:   cfg.Network.MaxRedirects,
	}
	if cfg.Browser.UseCookies {
		opts.Cookies = browser.NewCookieJar(cfg.Browser.Browsers...)
	}

	return &Designer{
		config:  cfg,
		service: webextract.NewService(fetcher.New(opts)),
	}
}

func (d *Designer) Extract(ctx context.Context, url string, opts ExtractOptions) (*ExtractResult, error) {
	start := time.Now()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	site, err := d.service.ExtractSite(ctx, url)
	if err != nil {
		return nil, err
	}

	sections, err := webextract.ExtractSections(site.HTML, site.CSS)
	if err != nil {
		return nil, err
	}

	features := webextract.ExtractCSSFeatures(site.HTML)
	name, description := webextract.DeriveThemeInfo(site.HTML, url)

	return &ExtractResult{
		URL:            url,
		Name:           name,
		Description:    description,
		Sections:       sections,
		Features:       features,
		HTML:           site.HTML,
		CSS:            site.CSS,
		ProcessingTime: time.Since(start),
	}, nil
}

// Analyze reports the structural element map of a page without persisting
// anything.
func (d *Designer) Analyze(ctx context.Context, url string) (*webextract.WebsiteAnalysis, error) {
	return d.service.Analyze(ctx, url)
}
