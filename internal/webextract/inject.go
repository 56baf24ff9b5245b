package webextract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mainContentSelectors is the priority list for the main-content injection
// point; only the first matching selector is reported.
var mainContentSelectors = []string{"main", "#main", ".main", "#content", ".content"}

// containerSelectors are each reported independently when present.
var containerSelectors = []string{".container", ".wrapper", "#wrapper", ".page"}

// FindInjectionPoints enumerates candidate DOM locations where a caller may
// later insert content, in fixed priority order. The body-bottom point is
// always present; everything else depends on the page. Duplicate selectors
// across points are allowed.
func FindInjectionPoints(htmlSrc string) ([]InjectionPoint, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	var points []InjectionPoint

	if doc.Find("header").Length() > 0 {
		points = append(points, InjectionPoint{
			Selector:    "header",
			Label:       "Header (Inside)",
			Description: "Inside the header element",
			ElementType: "header",
			Position:    PositionTop,
		})
	}

	if doc.Find("body").Length() > 0 {
		points = append(points, InjectionPoint{
			Selector:    "body",
			Label:       "Body (Top)",
			Description: "At the beginning of body",
			ElementType: "body",
			Position:    PositionTop,
		})
	}

	for _, selector := range mainContentSelectors {
		if doc.Find(selector).Length() > 0 {
			points = append(points, InjectionPoint{
				Selector:    selector,
				Label:       fmt.Sprintf("Main Content (%s)", selector),
				Description: "Inside main content area",
				ElementType: "main",
				Position:    PositionMiddle,
			})
			break
		}
	}

	if doc.Find("footer").Length() > 0 {
		points = append(points, InjectionPoint{
			Selector:    "footer",
			Label:       "Footer (Inside)",
			Description: "Inside the footer element",
			ElementType: "footer",
			Position:    PositionBottom,
		})
	}

	points = append(points, InjectionPoint{
		Selector:    "body",
		Label:       "Body (Bottom)",
		Description: "At the end of body",
		ElementType: "body",
		Position:    PositionBottom,
	})

	for _, selector := range containerSelectors {
		if doc.Find(selector).Length() > 0 {
			points = append(points, InjectionPoint{
				Selector:    selector,
				Label:       fmt.Sprintf("Container (%s)", selector),
				Description: "Inside container element",
				ElementType: "container",
				Position:    PositionMiddle,
			})
		}
	}

	return points, nil
}

// GenerateInjectionScript emits a self-contained browser snippet that injects
// a scoped style element plus one root element parsed from htmlContent at
// targetSelector using the given placement method. Pure templating; nothing
// is executed here.
func GenerateInjectionScript(htmlContent, cssContent, targetSelector string, method InjectionMethod) string {
	scoped := scopeCSS(cssContent)

	return strings.TrimSpace(fmt.Sprintf(`
(function() {
  var style = document.createElement('style');
  style.textContent = %s;
  document.head.appendChild(style);

  var target = document.querySelector(%s);
  if (!target) {
    return;
  }

  var holder = document.createElement('div');
  holder.innerHTML = %s;
  var element = holder.firstElementChild;
  if (!element) {
    return;
  }

  switch (%s) {
    case 'prepend':
      target.prepend(element);
      break;
    case 'append':
      target.append(element);
      break;
    case 'before':
      target.before(element);
      break;
    case 'after':
      target.after(element);
      break;
    case 'replace':
      target.replaceWith(element);
      break;
  }
})();`,
		jsString(scoped), jsString(targetSelector), jsString(htmlContent), jsString(string(method))))
}

// scopeCSS applies the fixed class-prefix substitution that namespaces
// injected styles away from the host page's shorthand classes.
func scopeCSS(css string) string {
	return strings.ReplaceAll(css, ".acd-", ".azavista-cd-")
}

// jsString renders s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return "'" + r.Replace(s) + "'"
}
