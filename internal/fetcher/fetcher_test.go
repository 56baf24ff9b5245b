package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// Verify interfaces are satisfied at compile time
var _ Strategy = (*profileStrategy)(nil)
var _ Strategy = (*browserStrategy)(nil)

type stubStrategy struct {
	name string
	html string
	err  error

	calls int
}

func (s *stubStrategy) Name() string { return s.name }
func (s *stubStrategy) Fetch(ctx context.Context, url string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.html, nil
}

func TestFetch_FirstStrategyWins(t *testing.T) {
	first := &stubStrategy{name: "first", html: "<html>a</html>"}
	second := &stubStrategy{name: "second", html: "<html>b</html>"}

	f := NewWithStrategies(first, second)
	html, err := f.Fetch(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if html != "<html>a</html>" {
		t.Errorf("got %q, want first strategy's result", html)
	}
	if second.calls != 0 {
		t.Error("second strategy was called although first succeeded")
	}
}

func TestFetch_EscalatesOnFailure(t *testing.T) {
	first := &stubStrategy{name: "first", err: errors.New("blocked")}
	second := &stubStrategy{name: "second", html: "<html>b</html>"}

	f := NewWithStrategies(first, second)
	html, err := f.Fetch(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if html != "<html>b</html>" {
		t.Errorf("got %q, want second strategy's result", html)
	}
	if first.calls != 1 {
		t.Errorf("first strategy called %d times, want 1", first.calls)
	}
}

func TestFetch_AllStrategiesExhausted(t *testing.T) {
	lastCause := errors.New("render timed out")
	f := NewWithStrategies(
		&stubStrategy{name: "first", err: errors.New("blocked")},
		&stubStrategy{name: "second", err: lastCause},
	)

	_, err := f.Fetch(context.Background(), "https://example.com/page")
	if err == nil {
		t.Fatal("expected error when every strategy fails")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fetchErr.URL != "https://example.com/page" {
		t.Errorf("FetchError.URL = %q", fetchErr.URL)
	}
	if !errors.Is(err, lastCause) {
		t.Error("FetchError does not wrap the last cause")
	}
	if !strings.Contains(err.Error(), "https://example.com/page") {
		t.Errorf("error message missing URL: %v", err)
	}
}

func TestProfileStrategy_SendsProfileHeaders(t *testing.T) {
	var gotUA, gotAccept, gotClientHints string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotClientHints = r.Header.Get("Sec-Ch-Ua")
		fmt.Fprint(w, "<html>ok</html>")
	}))
	defer server.Close()

	strat := newProfileStrategy(chromeProfile(), Options{RequestTimeout: 5 * time.Second})
	html, err := strat.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if html != "<html>ok</html>" {
		t.Errorf("body = %q", html)
	}
	if !strings.Contains(gotUA, "Chrome") {
		t.Errorf("User-Agent = %q, want a Chrome signature", gotUA)
	}
	if gotAccept == "" {
		t.Error("Accept header not sent")
	}
	if gotClientHints == "" {
		t.Error("client hint headers not sent")
	}
}

func TestProfileStrategy_RejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	strat := newProfileStrategy(chromeProfile(), Options{RequestTimeout: 5 * time.Second})
	_, err := strat.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error on 403")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should name the status: %v", err)
	}
}

func TestProfileStrategy_RedirectCap(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	strat := newProfileStrategy(chromeProfile(), Options{
		RequestTimeout: 5 * time.Second,
		MaxRedirects:   3,
	})
	_, err := strat.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error on redirect loop")
	}
	if !strings.Contains(err.Error(), "redirects") {
		t.Errorf("unexpected error: %v", err)
	}
}

type stubCookies struct {
	cookies []*http.Cookie
}

func (s *stubCookies) CookiesFor(url string) []*http.Cookie { return s.cookies }

func TestProfileStrategy_AttachesCookies(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	strat := newProfileStrategy(chromeProfile(), Options{
		RequestTimeout: 5 * time.Second,
		Cookies:        &stubCookies{cookies: []*http.Cookie{{Name: "session", Value: "abc123"}}},
	})
	if _, err := strat.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotCookie != "abc123" {
		t.Errorf("session cookie = %q, want %q", gotCookie, "abc123")
	}
}

func TestFetchAgainstBlockingServer(t *testing.T) {
	// Chrome profile is rejected, Firefox profile is let through.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("User-Agent"), "Chrome") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, "<html>let in</html>")
	}))
	defer server.Close()

	opts := Options{RequestTimeout: 5 * time.Second}
	f := NewWithStrategies(
		newProfileStrategy(chromeProfile(), opts),
		newProfileStrategy(firefoxProfile(), opts),
	)

	html, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if html != "<html>let in</html>" {
		t.Errorf("body = %q", html)
	}
}

func TestNew_BuildsFullChain(t *testing.T) {
	f := New(Options{})
	if len(f.strategies) != 3 {
		t.Fatalf("got %d strategies, want 3", len(f.strategies))
	}
	wantNames := []string{"chrome-profile", "firefox-profile", "headless-browser"}
	for i, want := range wantNames {
		if got := f.strategies[i].Name(); got != want {
			t.Errorf("strategies[%d].Name() = %q, want %q", i, got, want)
		}
	}
}
