package webextract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// elementGroups maps each ElementMap field to the selector group scanned for
// it. Order matters only for readability; each group fills its own list.
var elementGroups = []struct {
	kind  string
	group string
}{
	{"headers", "h1, h2, h3, h4, h5, h6"},
	{"buttons", `button, input[type="button"], input[type="submit"], a.btn, .button`},
	{"forms", "form, input, textarea, select"},
	{"navigation", "nav, header, .nav, .navbar, .navigation"},
	{"cards", ".card, .panel, article, .box"},
}

// Analyze fetches a page and reports the canonical selectors of its
// recognisable UI elements, grouped by kind.
func (s *Service) Analyze(ctx context.Context, pageURL string) (*WebsiteAnalysis, error) {
	site, err := s.ExtractSite(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(site.HTML))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	analysis := &WebsiteAnalysis{
		URL:        pageURL,
		AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, eg := range elementGroups {
		var selectors []string
		doc.Find(eg.group).Each(func(_ int, el *goquery.Selection) {
			if sel := canonicalSelector(el); sel != "" {
				selectors = append(selectors, sel)
			}
		})
		switch eg.kind {
		case "headers":
			analysis.Elements.Headers = selectors
		case "buttons":
			analysis.Elements.Buttons = selectors
		case "forms":
			analysis.Elements.Forms = selectors
		case "navigation":
			analysis.Elements.Navigation = selectors
		case "cards":
			analysis.Elements.Cards = selectors
		}
	}

	return analysis, nil
}
