package webextract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var cssURLRe = regexp.MustCompile(`url\(\s*['"]?([^'")\s]+)['"]?\s*\)`)

// NormalizeAssets strips executable script content from the document and
// rewrites every relative href/src attribute to an absolute URL anchored at
// baseURL. Already-absolute, protocol-relative, data: and fragment references
// are left alone. A malformed base or href never aborts normalization; the
// attribute simply stays as it was.
func NormalizeAssets(doc *goquery.Document, baseURL string) {
	doc.Find("script").Remove()

	base, err := url.Parse(baseURL)
	if err != nil {
		return
	}

	doc.Find("[href]").Each(func(_ int, s *goquery.Selection) {
		rewriteAttr(s, "href", base)
	})
	doc.Find("[src]").Each(func(_ int, s *goquery.Selection) {
		rewriteAttr(s, "src", base)
	})
}

func rewriteAttr(s *goquery.Selection, attr string, base *url.URL) {
	val := s.AttrOr(attr, "")
	if val == "" || !isRelativeRef(val) {
		return
	}
	abs, err := base.Parse(val)
	if err != nil {
		return
	}
	s.SetAttr(attr, abs.String())
}

func isRelativeRef(ref string) bool {
	switch {
	case strings.HasPrefix(ref, "http://"),
		strings.HasPrefix(ref, "https://"),
		strings.HasPrefix(ref, "//"),
		strings.HasPrefix(ref, "data:"),
		strings.HasPrefix(ref, "#"):
		return false
	}
	return true
}

// RewriteCSSURLs resolves every relative url(...) reference in a stylesheet
// against the stylesheet's own URL, not the page URL. References that cannot
// be resolved are kept verbatim.
func RewriteCSSURLs(css, sheetURL string) string {
	base, err := url.Parse(sheetURL)
	if err != nil {
		return css
	}
	return cssURLRe.ReplaceAllStringFunc(css, func(match string) string {
		ref := cssURLRe.FindStringSubmatch(match)[1]
		if !isRelativeRef(ref) {
			return match
		}
		abs, err := base.Parse(ref)
		if err != nil {
			return match
		}
		return `url("` + abs.String() + `")`
	})
}
