package webextract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxDiscoveredColors caps the color list at the first distinct values seen.
const maxDiscoveredColors = 10

var (
	colorTokenRe    = regexp.MustCompile(`#[0-9a-fA-F]{3,6}|rgba?\([^)]*\)`)
	fontFamilyRe    = regexp.MustCompile(`font-family:\s*([^;{}]+)`)
	bodyBlockRe     = regexp.MustCompile(`(?s)body\s*\{(.*?)\}`)
	bodyBgRe        = regexp.MustCompile(`background-color:\s*([^;}]+)`)
	bodyColorRe     = regexp.MustCompile(`(?:^|[\s;{])color:\s*([^;}]+)`)
	bodyFontRe      = regexp.MustCompile(`font-family:\s*([^;}]+)`)
	fontKeywords    = map[string]bool{"inherit": true, "initial": true, "unset": true}
	quoteStripper   = strings.NewReplacer(`'`, "", `"`, "")
)

// roleSelectors are the fixed candidate-selector groups tested per structural
// role, in a fixed order so output is deterministic.
var roleSelectors = []struct {
	role  string
	group string
}{
	{"header", "header, .header, #header, nav, .navbar"},
	{"footer", "footer, .footer, #footer"},
	{"button", `button, .btn, .button, input[type="submit"]`},
	{"card", ".card, .box, .panel, article"},
	{"form", "form, .form"},
}

// ExtractCSSFeatures scans a page for color tokens, font families, structural
// role selectors and a coarse global-style guess. It never fails: pages with
// nothing to find yield defaults and empty collections.
func ExtractCSSFeatures(htmlSrc string) CSSFeatureSet {
	features := CSSFeatureSet{
		Colors:       []string{},
		Fonts:        []string{},
		Selectors:    []SelectorMatch{},
		GlobalStyles: defaultGlobalStyles(),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return features
	}

	// Structural roles present on the page.
	for _, rs := range roleSelectors {
		if doc.Find(rs.group).Length() > 0 {
			features.Selectors = append(features.Selectors, SelectorMatch{Selector: rs.group, Type: rs.role})
		}
	}

	// Inline-style colors, first-seen order, capped.
	seenColors := make(map[string]bool)
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		for _, tok := range colorTokenRe.FindAllString(s.AttrOr("style", ""), -1) {
			if seenColors[tok] {
				continue
			}
			seenColors[tok] = true
			if len(features.Colors) < maxDiscoveredColors {
				features.Colors = append(features.Colors, tok)
			}
		}
	})

	// Inline style tags plus placeholders for stylesheets that were not
	// inlined.
	var css strings.Builder
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		css.WriteString(s.Text())
		css.WriteString("\n")
	})
	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		if href := s.AttrOr("href", ""); href != "" {
			css.WriteString("/* External CSS: " + href + " */\n")
		}
	})
	features.CSS = css.String()

	// Font families declared anywhere in the collected CSS.
	seenFonts := make(map[string]bool)
	for _, m := range fontFamilyRe.FindAllStringSubmatch(features.CSS, -1) {
		for _, font := range strings.Split(m[1], ",") {
			font = strings.TrimSpace(quoteStripper.Replace(font))
			if font == "" || fontKeywords[strings.ToLower(font)] {
				continue
			}
			if !seenFonts[font] {
				seenFonts[font] = true
				features.Fonts = append(features.Fonts, font)
			}
		}
	}

	// Single non-greedy body block match for the global-style guess.
	if body := bodyBlockRe.FindStringSubmatch(features.CSS); body != nil {
		decls := body[1]
		if m := bodyBgRe.FindStringSubmatch(decls); m != nil {
			features.GlobalStyles.BackgroundColor = strings.TrimSpace(m[1])
		}
		if m := bodyColorRe.FindStringSubmatch(decls); m != nil {
			features.GlobalStyles.Color = strings.TrimSpace(m[1])
		}
		if m := bodyFontRe.FindStringSubmatch(decls); m != nil {
			features.GlobalStyles.FontFamily = strings.TrimSpace(m[1])
		}
	}

	return features
}

func defaultGlobalStyles() GlobalStyles {
	return GlobalStyles{
		BackgroundColor: "transparent",
		Color:           "#212529",
		FontFamily:      "inherit",
		PrimaryColor:    "#007bff",
		SecondaryColor:  "#6c757d",
	}
}
