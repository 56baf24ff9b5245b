// Package browser reads cookies out of locally installed browser profiles so
// header-profile fetches can present an established session to sites that
// gate content behind one.
package browser

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register all cookie store readers
)

// CookieJar extracts cookies for a target URL from local browser stores.
// Extraction is best-effort: any store that cannot be read is skipped, and a
// URL with no matching cookies simply yields none.
type CookieJar struct {
	// Browsers restricts which browser families are consulted. Empty means
	// any.
	Browsers []string
}

func NewCookieJar(browsers ...string) *CookieJar {
	return &CookieJar{Browsers: browsers}
}

// CookiesFor implements fetcher.CookieSource.
func (j *CookieJar) CookiesFor(targetURL string) []*http.Cookie {
	parsed, err := url.Parse(targetURL)
	if err != nil || parsed.Host == "" {
		return nil
	}

	var cookies []*http.Cookie
	for cookie, err := range kooky.TraverseCookies(context.Background()) {
		if err != nil {
			continue
		}
		if !j.browserAllowed(cookie.Browser.Browser()) {
			continue
		}
		if !domainMatches(cookie.Domain, parsed.Host) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     cookie.Path,
			Domain:   cookie.Domain,
			Expires:  cookie.Expires,
			Secure:   cookie.Secure,
			HttpOnly: cookie.HttpOnly,
		})
	}
	return cookies
}

func (j *CookieJar) browserAllowed(name string) bool {
	if len(j.Browsers) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, allowed := range j.Browsers {
		if strings.Contains(name, strings.ToLower(allowed)) {
			return true
		}
	}
	return false
}

// domainMatches accepts exact host matches and parent-domain cookies
// (".example.com" matches "www.example.com").
func domainMatches(cookieDomain, host string) bool {
	if cookieDomain == "" || host == "" {
		return false
	}
	cookieDomain = strings.TrimPrefix(cookieDomain, ".")
	return cookieDomain == host || strings.HasSuffix(host, "."+cookieDomain)
}
