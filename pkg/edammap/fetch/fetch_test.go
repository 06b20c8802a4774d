package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	page := `<html><head><title>BLAST</title><style>body{}</style></head>
	<body><h1>BLAST</h1><script>var x=1;</script><p>Basic   Local
	Alignment Search Tool</p></body></html>`

	text := ExtractText([]byte(page))

	if strings.Contains(text, "var x") || strings.Contains(text, "body{}") {
		t.Errorf("Script/style content should be removed: %q", text)
	}
	if !strings.Contains(text, "Basic Local Alignment Search Tool") {
		t.Errorf("Visible text missing or whitespace not collapsed: %q", text)
	}
}

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html><body><p>sequence alignment</p></body></html>"))
		case "/binary":
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write([]byte{0x00, 0x01})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTP(Options{})
	ctx := context.Background()

	text, ok := f.Fetch(ctx, srv.URL+"/page")
	if !ok || !strings.Contains(text, "sequence alignment") {
		t.Errorf("Fetch(/page) = %q, %v", text, ok)
	}

	if _, ok := f.Fetch(ctx, srv.URL+"/missing"); ok {
		t.Error("404 should report absent")
	}
	if _, ok := f.Fetch(ctx, srv.URL+"/binary"); ok {
		t.Error("Binary content should report absent")
	}
	if _, ok := f.Fetch(ctx, "not a url or id"); ok {
		t.Error("Unresolvable ref should report absent")
	}
}

func TestResolveRef(t *testing.T) {
	cases := []struct {
		ref  string
		want string
	}{
		{"https://example.org/x", "https://example.org/x"},
		{"2231712", europePMCSearch + "EXT_ID:2231712"},
		{"PMC1234567", europePMCSearch + "PMCID:PMC1234567"},
		{"10.1016/S0022-2836(05)80360-2", "https://doi.org/10.1016/S0022-2836(05)80360-2"},
		{"garbage ref", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := resolveRef(c.ref); got != c.want {
			t.Errorf("resolveRef(%q) = %q, want %q", c.ref, got, c.want)
		}
	}
}

// countingFetcher records how many times each ref reaches the inner fetcher.
type countingFetcher struct {
	inner Fetcher
	calls map[string]int
}

func (c *countingFetcher) Fetch(ctx context.Context, ref string) (string, bool) {
	c.calls[ref]++
	return c.inner.Fetch(ctx, ref)
}

func TestCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	counting := &countingFetcher{
		inner: Static{"https://example.org/a": "alpha text"},
		calls: map[string]int{},
	}

	cache, err := OpenCache(ctx, t.TempDir()+"/fetch.db", counting)
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	for i := 0; i < 3; i++ {
		text, ok := cache.Fetch(ctx, "https://example.org/a")
		if !ok || text != "alpha text" {
			t.Fatalf("Fetch attempt %d = %q, %v", i, text, ok)
		}
	}
	if counting.calls["https://example.org/a"] != 1 {
		t.Errorf("Inner fetcher called %d times, want 1", counting.calls["https://example.org/a"])
	}

	// Failures are cached too.
	for i := 0; i < 2; i++ {
		if _, ok := cache.Fetch(ctx, "https://example.org/missing"); ok {
			t.Fatal("Missing ref should report absent")
		}
	}
	if counting.calls["https://example.org/missing"] != 1 {
		t.Errorf("Failed fetch retried %d times, want 1", counting.calls["https://example.org/missing"])
	}
}

// deadlineFetcher fails once the request context is done, like a network
// fetcher whose request was cancelled mid-flight.
type deadlineFetcher struct {
	inner Fetcher
}

func (d *deadlineFetcher) Fetch(ctx context.Context, ref string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	return d.inner.Fetch(ctx, ref)
}

func TestCacheSkipsCancelledMisses(t *testing.T) {
	ctx := context.Background()
	counting := &countingFetcher{
		inner: &deadlineFetcher{inner: Static{"https://example.org/a": "alpha text"}},
		calls: map[string]int{},
	}

	cache, err := OpenCache(ctx, t.TempDir()+"/fetch.db", counting)
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, ok := cache.Fetch(cancelled, "https://example.org/a"); ok {
		t.Fatal("Fetch with a cancelled context should report absent")
	}

	// The miss was circumstantial and must not have been recorded: a later
	// run with a live context still reaches the URL.
	text, ok := cache.Fetch(ctx, "https://example.org/a")
	if !ok || text != "alpha text" {
		t.Fatalf("Fetch after cancellation = %q, %v; cancelled miss was cached", text, ok)
	}
}
