package webextract

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// DeriveThemeInfo produces a human-usable name and description for a theme
// auto-created from an extraction: the page title and excerpt when
// readability can find them, the host name otherwise.
func DeriveThemeInfo(htmlSrc, pageURL string) (name, description string) {
	article, err := readability.FromReader(strings.NewReader(htmlSrc), nil)
	if err == nil {
		name = strings.TrimSpace(article.Title)
		description = strings.TrimSpace(article.Excerpt)
	}

	if name == "" {
		if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
			name = u.Host
		} else {
			name = "Extracted Theme"
		}
	}
	return name, description
}
