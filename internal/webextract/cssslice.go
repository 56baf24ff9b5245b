package webextract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxCSSSliceLen bounds the output of SliceRelevantCSS so a pathological
// stylesheet cannot blow up a section payload.
const maxCSSSliceLen = 100_000

// truncationMarker is appended whenever a slice hits maxCSSSliceLen.
const truncationMarker = "\n/* truncated: relevant CSS exceeded size limit */"

var (
	rootBlockRe = regexp.MustCompile(`:root\s*\{[^{}]*\}`)
	fontFaceRe  = regexp.MustCompile(`@font-face\s*\{[^{}]*\}`)
	cssRuleRe   = regexp.MustCompile(`([^{}]+)\{[^{}]*\}`)
)

// SliceRelevantCSS approximates the subset of fullCSS that visually affects
// the given element. It is a substring heuristic, not a cascade engine: it
// prefers including unrelated rules over losing a rule that was needed, since
// over-inclusion only bloats output while omission visibly breaks styling.
// It never fails; unusable input yields an empty string.
func SliceRelevantCSS(fullCSS string, sel *goquery.Selection) string {
	if strings.TrimSpace(fullCSS) == "" || sel == nil || sel.Length() == 0 {
		return ""
	}

	var fragments []string
	seen := make(map[string]bool)
	add := func(frag string) {
		frag = strings.TrimSpace(frag)
		if frag == "" || seen[frag] {
			return
		}
		seen[frag] = true
		fragments = append(fragments, frag)
	}

	// Global token blocks affect every section.
	for _, m := range rootBlockRe.FindAllString(fullCSS, -1) {
		add(m)
	}
	for _, m := range fontFaceRe.FindAllString(fullCSS, -1) {
		add(m)
	}

	candidates := candidateSelectors(sel)
	mediaBlocks, remainder := splitMediaBlocks(fullCSS)

	// Direct rule blocks whose selector text mentions any candidate. The
	// substring match deliberately picks up pseudo-class variants such as
	// ".btn:hover".
	for _, rule := range cssRuleRe.FindAllStringSubmatch(remainder, -1) {
		selectorText := strings.TrimSpace(rule[1])
		if strings.HasPrefix(selectorText, "@") {
			continue
		}
		for _, cand := range candidates {
			if strings.Contains(selectorText, cand) {
				add(rule[0])
				break
			}
		}
	}

	// A media block is included whole as soon as its body mentions a
	// candidate. Coarse, but responsive rules are never silently dropped.
	for _, block := range mediaBlocks {
		for _, cand := range candidates {
			if strings.Contains(block, cand) {
				add(block)
				break
			}
		}
	}

	out := strings.Join(fragments, "\n\n")
	if len(out) > maxCSSSliceLen {
		out = out[:maxCSSSliceLen] + truncationMarker
	}
	return out
}

// candidateSelectors builds the canonical selector of the element itself plus
// every descendant, deduplicated in discovery order.
func candidateSelectors(sel *goquery.Selection) []string {
	var out []string
	seen := make(map[string]bool)
	addCand := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}

	addCand(canonicalSelector(sel))
	sel.Find("*").Each(func(_ int, child *goquery.Selection) {
		addCand(canonicalSelector(child))
	})
	return out
}

// splitMediaBlocks separates complete @media blocks (balanced braces) from
// the rest of the stylesheet. An unterminated block is left in the remainder.
func splitMediaBlocks(css string) (blocks []string, remainder string) {
	var rest strings.Builder
	i := 0
	for i < len(css) {
		idx := strings.Index(css[i:], "@media")
		if idx < 0 {
			rest.WriteString(css[i:])
			break
		}
		rest.WriteString(css[i : i+idx])
		start := i + idx

		open := strings.IndexByte(css[start:], '{')
		if open < 0 {
			rest.WriteString(css[start:])
			break
		}

		depth := 0
		end := -1
		for j := start + open; j < len(css); j++ {
			switch css[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = j + 1
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			rest.WriteString(css[start:])
			break
		}

		blocks = append(blocks, css[start:end])
		i = end
	}
	return blocks, rest.String()
}
