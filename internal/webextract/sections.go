package webextract

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Classes too generic to produce a useful section name.
var structuralClasses = map[string]bool{
	"section":   true,
	"container": true,
	"row":       true,
	"col":       true,
}

// segmenter holds the per-invocation state of one segmentation pass. The
// claimed set is keyed by node identity so that no DOM node ever contributes
// to two sections; it is never shared across calls.
type segmenter struct {
	doc      *goquery.Document
	css      string
	claimed  map[*html.Node]bool
	sections []ExtractedSection
	counter  int
}

// ExtractSections decomposes a page into named, typed, styleable regions.
// The passes run in a fixed order (header, hero, footer, content candidates,
// degenerate-page fallback), so output is deterministic for identical input.
// A page without any recognisable structure yields an empty slice, not an
// error.
func ExtractSections(htmlSrc, css string) ([]ExtractedSection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	seg := &segmenter{
		doc:     doc,
		css:     css,
		claimed: make(map[*html.Node]bool),
		counter: 1,
	}
	seg.run()
	return seg.sections, nil
}

func (g *segmenter) run() {
	// 1. Header: first match wins.
	g.claim(g.doc.Find("header, .header, .navbar, #header").First(), SectionHeader, "Header")

	// 2. Hero: explicit hero class/id, otherwise the first section or div
	// containing an h1 that is not already claimed.
	hero := g.doc.Find(".hero, #hero").First()
	if hero.Length() == 0 {
		hero = g.doc.Find("section, div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.Find("h1").Length() > 0 && !g.claimed[s.Get(0)]
		}).First()
	}
	g.claim(hero, SectionHero, "Hero Section")

	// 3. Footer: last match, not first. Footers are typically the final such
	// element; earlier matches tend to be navigation artifacts.
	g.claim(g.doc.Find("footer, .footer, #footer").Last(), SectionFooter, "Footer")

	// 4. Generic content candidates in document order.
	g.doc.Find("section, article, main > div, .section, .container > div").Each(func(_ int, s *goquery.Selection) {
		if g.claimed[s.Get(0)] {
			return
		}
		// Empty decorative wrappers carry no styleable content.
		if s.Children().Length() == 0 && len(strings.TrimSpace(s.Text())) < 20 {
			return
		}

		typ := SectionContent
		if s.Find("form").Length() > 0 {
			typ = SectionCTA
		} else if s.Find(".feature, .card, .item").Length() > 2 {
			typ = SectionFeatures
		}

		g.claim(s, typ, fmt.Sprintf("Section %d", g.counter))
		g.counter++
	})

	// 5. Degenerate-page fallback: essentially no structure was found, so
	// promote substantial direct body children instead.
	if len(g.sections) <= 2 {
		g.doc.Find("body > div").Each(func(_ int, s *goquery.Selection) {
			if g.claimed[s.Get(0)] {
				return
			}
			if len(strings.TrimSpace(s.Text())) > 50 {
				g.claim(s, SectionContent, fmt.Sprintf("Section %d", g.counter))
				g.counter++
			}
		})
	}
}

// claim records the selection's root node as processed and emits it as a
// section. Selections whose root node is already claimed are ignored.
func (g *segmenter) claim(s *goquery.Selection, typ SectionType, defaultName string) {
	if s.Length() == 0 {
		return
	}
	node := s.Get(0)
	if g.claimed[node] {
		return
	}
	g.claimed[node] = true

	// Emitted section markup is presentation-only.
	s.Find(`script, style, link[rel="stylesheet"]`).Remove()

	name := defaultName
	if id := s.AttrOr("id", ""); id != "" {
		name = humanizeName(id)
	} else if class := s.AttrOr("class", ""); class != "" {
		for _, c := range strings.Fields(class) {
			if !structuralClasses[c] {
				name = humanizeName(c)
				break
			}
		}
	}

	outer, err := goquery.OuterHtml(s)
	if err != nil {
		outer = ""
	}

	selector := canonicalSelector(s)
	if selector == "" {
		selector = "div"
	}

	g.sections = append(g.sections, ExtractedSection{
		Type:     typ,
		Name:     name,
		HTML:     outer,
		CSS:      SliceRelevantCSS(g.css, s),
		Selector: selector,
	})
}

// canonicalSelector derives the best-effort selector for a selection's root
// element: id > first class > tag name. Empty when nothing usable exists.
func canonicalSelector(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if id := s.AttrOr("id", ""); id != "" {
		return "#" + id
	}
	if classes := strings.Fields(s.AttrOr("class", "")); len(classes) > 0 {
		return "." + classes[0]
	}
	node := s.Get(0)
	if node.Type == html.ElementNode && node.Data != "" {
		return strings.ToLower(node.Data)
	}
	return ""
}

// humanizeName turns "hero-banner" or "main_nav" into "Hero banner" and
// "Main nav".
func humanizeName(raw string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(raw)
	runes := []rune(cleaned)
	if len(runes) == 0 {
		return cleaned
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
