// Package theme defines the persisted theme and section model plus the
// deterministic CSS/JSON exporters over it.
package theme

import "time"

// SectionType is the persisted section vocabulary. It is a superset of what
// the segmenter emits today; the extra values exist for manually created and
// template-based sections.
type SectionType string

const (
	TypeHeader       SectionType = "header"
	TypeFooter       SectionType = "footer"
	TypeCard         SectionType = "card"
	TypeButton       SectionType = "button"
	TypeForm         SectionType = "form"
	TypeNavigation   SectionType = "navigation"
	TypeHero         SectionType = "hero"
	TypeContent      SectionType = "content"
	TypeCustom       SectionType = "custom"
	TypeCTA          SectionType = "cta"
	TypeFeatures     SectionType = "features"
	TypeTestimonials SectionType = "testimonials"
	TypePricing      SectionType = "pricing"
	TypeContact      SectionType = "contact"
)

// GlobalStyles holds the page-wide design tokens of a theme.
type GlobalStyles struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	FontFamily      string `json:"fontFamily"`
	BaseFontSize    string `json:"baseFontSize"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

// DefaultGlobalStyles returns the stock palette used when nothing was
// extracted.
func DefaultGlobalStyles() GlobalStyles {
	return GlobalStyles{
		PrimaryColor:    "#007bff",
		SecondaryColor:  "#6c757d",
		FontFamily:      "Arial, sans-serif",
		BaseFontSize:    "16px",
		BackgroundColor: "#ffffff",
		TextColor:       "#212529",
	}
}

// ColorSet groups the color slots of a section.
type ColorSet struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
	Hover      string `json:"hover"`
	Accent     string `json:"accent,omitempty"`
}

// Typography describes the text styling of a section.
type Typography struct {
	FontSize       string `json:"fontSize"`
	FontWeight     string `json:"fontWeight"`
	FontFamily     string `json:"fontFamily,omitempty"`
	LineHeight     string `json:"lineHeight"`
	LetterSpacing  string `json:"letterSpacing"`
	Color          string `json:"color,omitempty"`
	TextTransform  string `json:"textTransform,omitempty"`
	TextDecoration string `json:"textDecoration,omitempty"`
}

// Spacing describes the box spacing of a section.
type Spacing struct {
	Padding string `json:"padding"`
	Margin  string `json:"margin"`
	Gap     string `json:"gap"`
}

// Borders describes the border styling of a section.
type Borders struct {
	Radius string `json:"radius"`
	Width  string `json:"width"`
	Style  string `json:"style"`
	Color  string `json:"color,omitempty"`
}

// Effects describes visual effects applied to a section.
type Effects struct {
	Shadow     string `json:"shadow"`
	Transition string `json:"transition"`
	Transform  string `json:"transform,omitempty"`
	Opacity    string `json:"opacity,omitempty"`
}

// CSSProperties is the structured styling of one section, grouped the way
// the exporters expect.
type CSSProperties struct {
	Colors     ColorSet   `json:"colors"`
	Typography Typography `json:"typography"`
	Spacing    Spacing    `json:"spacing"`
	Borders    Borders    `json:"borders"`
	Effects    Effects    `json:"effects"`
}

// DefaultCSSProperties returns the neutral styling applied to sections
// auto-created from segmentation output.
func DefaultCSSProperties() CSSProperties {
	return CSSProperties{
		Colors: ColorSet{
			Background: "transparent",
			Text:       "inherit",
			Border:     "transparent",
			Hover:      "transparent",
		},
		Typography: Typography{
			FontSize:      "1rem",
			FontWeight:    "400",
			LineHeight:    "1.5",
			LetterSpacing: "normal",
		},
		Spacing: Spacing{
			Padding: "0",
			Margin:  "0",
			Gap:     "0",
		},
		Borders: Borders{
			Radius: "0",
			Width:  "0",
			Style:  "none",
		},
		Effects: Effects{
			Shadow:     "none",
			Transition: "none",
		},
	}
}

// Theme is one saved theme, typically seeded from a website extraction.
type Theme struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	SourceURL       string       `json:"sourceUrl,omitempty"`
	ExtractedHTML   string       `json:"extractedHtml,omitempty"`
	ExtractedCSS    string       `json:"extractedCss,omitempty"`
	ExtractedColors []string     `json:"extractedColors,omitempty"`
	ExtractedFonts  []string     `json:"extractedFonts,omitempty"`
	GlobalStyles    GlobalStyles `json:"globalStyles"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Section is one persisted, ordered, styleable region of a theme.
type Section struct {
	ID            string        `json:"id"`
	ThemeID       string        `json:"themeId"`
	Name          string        `json:"name"`
	Type          SectionType   `json:"type"`
	CSSProperties CSSProperties `json:"cssProperties"`
	CustomCSS     string        `json:"customCss,omitempty"`
	HTMLContent   string        `json:"htmlContent,omitempty"`
	Order         int           `json:"order"`
	IsActive      bool          `json:"isActive"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
