// Package fetcher retrieves raw HTML for arbitrary public URLs. Many sites
// block default HTTP-client signatures, so fetching is a graduated escalation
// across independent strategies: cheap header-profile requests first, a full
// headless browser render as the last resort. Escalation happens only on
// failure; strategies never race.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/monitoring"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultBrowserTimeout = 30 * time.Second
	defaultMaxRedirects   = 5
)

// FetchError is returned once every strategy has been exhausted for a URL.
// It wraps the last underlying cause.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("all fetch strategies failed for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CookieSource supplies cookies to attach to header-profile requests.
// Implemented by the browser package; nil disables cookie attachment.
type CookieSource interface {
	CookiesFor(url string) []*http.Cookie
}

// Strategy is one independent, stateless way of obtaining a page.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url string) (string, error)
}

// Options tune the fallback chain. Zero values pick the defaults above.
type Options struct {
	RequestTimeout time.Duration
	BrowserTimeout time.Duration
	MaxRedirects   int
	Cookies        CookieSource
}

// PageFetcher walks the ordered strategy chain until one succeeds.
type PageFetcher struct {
	strategies []Strategy
}

// New builds the standard chain: Chrome header profile, Firefox header
// profile, then a headless browser render.
func New(opts Options) *PageFetcher {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = defaultBrowserTimeout
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = defaultMaxRedirects
	}

	return &PageFetcher{
		strategies: []Strategy{
			newProfileStrategy(chromeProfile(), opts),
			newProfileStrategy(firefoxProfile(), opts),
			&browserStrategy{timeout: opts.BrowserTimeout, userAgent: chromeProfile().UserAgent},
		},
	}
}

// NewWithStrategies builds a fetcher over an explicit chain. Used by tests
// and by callers that want to drop the browser fallback.
func NewWithStrategies(strategies ...Strategy) *PageFetcher {
	return &PageFetcher{strategies: strategies}
}

// Fetch tries each strategy in order and returns the first successful HTML.
// Callers never see a partial result: on total failure the returned error is
// a single aggregated FetchError naming the URL.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for _, strat := range f.strategies {
		html, err := strat.Fetch(ctx, url)
		if err == nil {
			monitoring.FetchAttemptsTotal.WithLabelValues(strat.Name(), "success").Inc()
			return html, nil
		}
		monitoring.FetchAttemptsTotal.WithLabelValues(strat.Name(), "failure").Inc()
		slog.Debug("fetch strategy failed, escalating",
			"strategy", strat.Name(), "url", url, "error", err)
		lastErr = err
	}
	return "", &FetchError{URL: url, Err: lastErr}
}

// profileStrategy performs a plain HTTP GET with a full browser header
// profile.
type profileStrategy struct {
	profile headerProfile
	client  *http.Client
	cookies CookieSource
}

func newProfileStrategy(profile headerProfile, opts Options) *profileStrategy {
	maxRedirects := opts.MaxRedirects
	return &profileStrategy{
		profile: profile,
		cookies: opts.Cookies,
		client: &http.Client{
			Timeout: opts.RequestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

func (p *profileStrategy) Name() string { return p.profile.Name }

func (p *profileStrategy) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", p.profile.UserAgent)
	for key, value := range p.profile.Headers {
		req.Header.Set(key, value)
	}

	if p.cookies != nil {
		for _, cookie := range p.cookies.CookiesFor(url) {
			req.AddCookie(cookie)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	return string(body), nil
}
