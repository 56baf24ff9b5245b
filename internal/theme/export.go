package theme

import (
	"fmt"
	"strings"
	"time"
)

// ExportVersion is the version stamped into JSON export envelopes.
const ExportVersion = "1.0.0"

// ExportJSON is the versioned envelope for a full theme export.
type ExportJSON struct {
	Theme      Theme     `json:"theme"`
	Sections   []Section `json:"sections"`
	ExportedAt time.Time `json:"exportedAt"`
	Version    string    `json:"version"`
}

// NewExportJSON assembles the export envelope for a theme and its sections.
func NewExportJSON(t Theme, sections []Section, exportedAt time.Time) ExportJSON {
	return ExportJSON{
		Theme:      t,
		Sections:   sections,
		ExportedAt: exportedAt,
		Version:    ExportVersion,
	}
}

// ExportCSS renders a theme and its ordered active sections as a single CSS
// text. Output is deterministic for a fixed input: the generation time
// appears only in the header comment, never in a rule.
func ExportCSS(t Theme, sections []Section, generatedAt time.Time) string {
	g := t.GlobalStyles
	var b strings.Builder

	fmt.Fprintf(&b, "/* Theme: %s */\n", t.Name)
	fmt.Fprintf(&b, "/* Generated: %s */\n\n", generatedAt.UTC().Format(time.RFC3339))

	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --primary-color: %s;\n", g.PrimaryColor)
	fmt.Fprintf(&b, "  --secondary-color: %s;\n", g.SecondaryColor)
	fmt.Fprintf(&b, "  --font-family: %s;\n", g.FontFamily)
	fmt.Fprintf(&b, "  --base-font-size: %s;\n", g.BaseFontSize)
	fmt.Fprintf(&b, "  --background-color: %s;\n", g.BackgroundColor)
	fmt.Fprintf(&b, "  --text-color: %s;\n", g.TextColor)
	b.WriteString("}\n\n")

	b.WriteString("body {\n")
	b.WriteString("  font-family: var(--font-family);\n")
	b.WriteString("  font-size: var(--base-font-size);\n")
	b.WriteString("  background-color: var(--background-color);\n")
	b.WriteString("  color: var(--text-color);\n")
	b.WriteString("}\n")

	for _, section := range sections {
		if !section.IsActive {
			continue
		}
		p := section.CSSProperties
		className := fmt.Sprintf(".section-%s-%s", section.Type, section.ID)

		fmt.Fprintf(&b, "\n/* Section: %s (%s) */\n", section.Name, section.Type)
		fmt.Fprintf(&b, "%s {\n", className)
		fmt.Fprintf(&b, "  background: %s;\n", p.Colors.Background)
		fmt.Fprintf(&b, "  color: %s;\n", p.Colors.Text)
		fmt.Fprintf(&b, "  border: %s %s %s;\n", p.Borders.Width, p.Borders.Style, p.Colors.Border)
		fmt.Fprintf(&b, "  border-radius: %s;\n", p.Borders.Radius)
		fmt.Fprintf(&b, "  padding: %s;\n", p.Spacing.Padding)
		fmt.Fprintf(&b, "  margin: %s;\n", p.Spacing.Margin)
		fmt.Fprintf(&b, "  gap: %s;\n", p.Spacing.Gap)
		fmt.Fprintf(&b, "  font-size: %s;\n", p.Typography.FontSize)
		fmt.Fprintf(&b, "  font-weight: %s;\n", p.Typography.FontWeight)
		fmt.Fprintf(&b, "  line-height: %s;\n", p.Typography.LineHeight)
		fmt.Fprintf(&b, "  letter-spacing: %s;\n", p.Typography.LetterSpacing)
		fmt.Fprintf(&b, "  box-shadow: %s;\n", p.Effects.Shadow)
		fmt.Fprintf(&b, "  transition: %s;\n", p.Effects.Transition)
		b.WriteString("}\n")

		fmt.Fprintf(&b, "%s:hover {\n", className)
		fmt.Fprintf(&b, "  background: %s;\n", p.Colors.Hover)
		if p.Effects.Transform != "" {
			fmt.Fprintf(&b, "  transform: %s;\n", p.Effects.Transform)
		}
		b.WriteString("}\n")

		if section.CustomCSS != "" {
			fmt.Fprintf(&b, "\n/* Custom CSS for %s */\n%s\n", section.Name, section.CustomCSS)
		}
	}

	return strings.TrimSpace(b.String())
}
