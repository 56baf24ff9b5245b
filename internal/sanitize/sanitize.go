// Package sanitize neutralizes user-supplied HTML and CSS before it is
// stored or injected into a proxied page.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	cssImportRe     = regexp.MustCompile(`(?i)@import\s+[^;]+;`)
	cssExpressionRe = regexp.MustCompile(`(?i)expression\s*\([^)]*\)`)
	cssJSURLRe      = regexp.MustCompile(`(?i)url\s*\(\s*['"]?\s*javascript:[^)]*\)`)
)

// Sanitizer holds the HTML policy; build once, reuse everywhere.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds a policy permissive enough for styled section markup: layout
// elements, classes, ids and inline styles survive; scripts, event handlers
// and javascript: URLs do not.
func New() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements(
		"section", "header", "footer", "nav", "main", "article", "aside",
		"button", "form", "label", "input", "span", "figure", "figcaption",
	)
	p.AllowAttrs("class", "id", "style").Globally()
	p.AllowAttrs("type", "name", "value", "placeholder").OnElements("input")
	p.AllowAttrs("action", "method").OnElements("form")
	return &Sanitizer{policy: p}
}

// HTML strips everything executable from a markup fragment.
func (s *Sanitizer) HTML(html string) string {
	return s.policy.Sanitize(html)
}

// CSS removes the constructs that let a stylesheet reach outside itself:
// @import pulls, IE expression() evaluation and javascript: url() schemes.
func CSS(css string) string {
	css = cssImportRe.ReplaceAllString(css, "")
	css = cssExpressionRe.ReplaceAllString(css, "")
	css = cssJSURLRe.ReplaceAllString(css, "")
	return strings.TrimSpace(css)
}
