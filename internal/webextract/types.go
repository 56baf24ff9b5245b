package webextract

// ExtractedSite is one immutable snapshot of a fetched page: script-stripped,
// URL-normalized HTML plus the concatenated inline and inlined-external CSS.
type ExtractedSite struct {
	HTML    string
	CSS     string
	BaseURL string
}

// SectionType classifies a structural region of a page. The segmenter only
// emits the types below; the persisted vocabulary is a superset of these.
type SectionType string

const (
	SectionHeader   SectionType = "header"
	SectionHero     SectionType = "hero"
	SectionFooter   SectionType = "footer"
	SectionCTA      SectionType = "cta"
	SectionFeatures SectionType = "features"
	SectionContent  SectionType = "content"
)

// ExtractedSection is a classified, named, styleable region of a decomposed
// page. Selector is a best-effort canonical selector for the originating
// element (id > first non-structural class > tag name), used for CSS
// association only; it is not guaranteed unique across the document.
type ExtractedSection struct {
	Type     SectionType `json:"type"`
	Name     string      `json:"name"`
	HTML     string      `json:"html"`
	CSS      string      `json:"css"`
	Selector string      `json:"selector"`
}

// SelectorMatch records that a candidate selector group for a structural role
// matched at least one element in the document.
type SelectorMatch struct {
	Selector string `json:"selector"`
	Type     string `json:"type"`
}

// GlobalStyles is a coarse guess at the page-wide appearance, pulled from the
// body rule when one exists and defaulted otherwise.
type GlobalStyles struct {
	BackgroundColor string `json:"backgroundColor"`
	Color           string `json:"color"`
	FontFamily      string `json:"fontFamily"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
}

// CSSFeatureSet is the derived, read-only view of a page's stylistic
// features. Recomputed per call, never persisted by this package.
type CSSFeatureSet struct {
	Colors       []string        `json:"colors"`
	Fonts        []string        `json:"fonts"`
	Selectors    []SelectorMatch `json:"selectors"`
	CSS          string          `json:"css"`
	GlobalStyles GlobalStyles    `json:"globalStyles"`
}

// Position describes where in its target element an injection point sits.
type Position string

const (
	PositionTop    Position = "top"
	PositionMiddle Position = "middle"
	PositionBottom Position = "bottom"
)

// InjectionPoint describes a DOM location where a caller may later insert
// content. Selectors are not unique across the returned list.
type InjectionPoint struct {
	Selector    string   `json:"selector"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	ElementType string   `json:"elementType"`
	Position    Position `json:"position"`
}

// InjectionMethod is the placement strategy used by a generated injection
// script.
type InjectionMethod string

const (
	InjectPrepend InjectionMethod = "prepend"
	InjectAppend  InjectionMethod = "append"
	InjectBefore  InjectionMethod = "before"
	InjectAfter   InjectionMethod = "after"
	InjectReplace InjectionMethod = "replace"
)

// ElementMap groups canonical selectors of recognisable UI elements found on
// a page.
type ElementMap struct {
	Headers    []string `json:"headers"`
	Buttons    []string `json:"buttons"`
	Forms      []string `json:"forms"`
	Navigation []string `json:"navigation"`
	Cards      []string `json:"cards"`
}

// WebsiteAnalysis is the result of a selector-level scan of a page.
type WebsiteAnalysis struct {
	URL        string     `json:"url"`
	Elements   ElementMap `json:"elements"`
	AnalyzedAt string     `json:"analyzedAt"`
}
