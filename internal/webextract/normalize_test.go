package webextract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestNormalizeAssets(t *testing.T) {
	doc := parseDoc(t, `<html><head></head><body>
<script>track()</script>
<a href="/about">about</a>
<img src="img/logo.png">
<a href="https://other.example/x">external</a>
<img src="data:image/png;base64,AAAA">
<a href="#section">anchor</a>
</body></html>`)

	NormalizeAssets(doc, "https://example.com/blog/post")

	if doc.Find("script").Length() != 0 {
		t.Error("script tag survived normalization")
	}

	tests := []struct {
		selector string
		attr     string
		want     string
	}{
		{`a[href^="https://example.com/about"]`, "href", "https://example.com/about"},
		{`img[src^="https://example.com/blog/img"]`, "src", "https://example.com/blog/img/logo.png"},
		{`a[href^="https://other.example"]`, "href", "https://other.example/x"},
		{`img[src^="data:"]`, "src", "data:image/png;base64,AAAA"},
		{`a[href^="#"]`, "href", "#section"},
	}
	for _, tt := range tests {
		sel := doc.Find(tt.selector)
		if sel.Length() == 0 {
			t.Errorf("no element matching %s", tt.selector)
			continue
		}
		if got := sel.AttrOr(tt.attr, ""); got != tt.want {
			t.Errorf("%s %s = %q, want %q", tt.selector, tt.attr, got, tt.want)
		}
	}
}

func TestNormalizeAssets_MalformedBase(t *testing.T) {
	doc := parseDoc(t, `<html><body><a href="/about">x</a></body></html>`)
	NormalizeAssets(doc, "://not-a-url")

	if got := doc.Find("a").AttrOr("href", ""); got != "/about" {
		t.Errorf("href = %q, want untouched %q", got, "/about")
	}
}

func TestRewriteCSSURLs(t *testing.T) {
	css := `
.hero { background: url('../img/bg.png'); }
@font-face { src: url("https://cdn.example.com/f.woff2"); }
.icon { background: url(data:image/svg+xml;base64,AA); }
`
	out := RewriteCSSURLs(css, "https://example.com/assets/css/site.css")

	if !strings.Contains(out, `url("https://example.com/assets/img/bg.png")`) {
		t.Errorf("relative url not resolved against stylesheet URL:\n%s", out)
	}
	if !strings.Contains(out, `url("https://cdn.example.com/f.woff2")`) {
		t.Error("absolute url was rewritten")
	}
	if !strings.Contains(out, "url(data:image/svg+xml;base64,AA)") {
		t.Error("data url was rewritten")
	}
}

func TestRewriteCSSURLs_BadSheetURL(t *testing.T) {
	css := `.a { background: url(x.png); }`
	if out := RewriteCSSURLs(css, "://bad"); out != css {
		t.Errorf("malformed sheet URL changed output: %q", out)
	}
}
