package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/nn/chapter1.html": true,
		"http://localhost:8000":                true,
		"chapter1.html":                        false,
		"/abs/path/chapter1.html":              false,
		"ftp://example.com/x":                  false,
		"https://":                             false,
	}
	for in, want := range tests {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestForSource(t *testing.T) {
	if _, ok := ForSource("https://example.com", Options{}).(*HTTPFetcher); !ok {
		t.Error("expected HTTPFetcher for URLs")
	}
	if _, ok := ForSource("chapter1.html", Options{}).(FileFetcher); !ok {
		t.Error("expected FileFetcher for paths")
	}
}

func TestHTTPFetcher(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<title>ok</title>"))
	}))
	defer srv.Close()

	f := New(Options{UserAgent: "test-agent"})
	res, err := f.Fetch(context.Background(), srv.URL+"/chapter1.html")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.HTML != "<title>ok</title>" || res.StatusCode != http.StatusOK {
		t.Errorf("unexpected result %+v", res)
	}
	if gotAgent != "test-agent" {
		t.Errorf("unexpected user agent %q", gotAgent)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	if err == nil || !strings.Contains(err.Error(), "unexpected status 404") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestHTTPFetcherDefaults(t *testing.T) {
	f := New(Options{})
	if f.userAgent != DefaultUserAgent || f.client.Timeout != DefaultTimeout {
		t.Errorf("expected defaults, got agent %q timeout %v", f.userAgent, f.client.Timeout)
	}
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter1.html")
	if err := os.WriteFile(path, []byte("<p>hi</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := FileFetcher{}.Fetch(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if res.HTML != "<p>hi</p>" || res.Source != path {
		t.Errorf("unexpected result %+v", res)
	}

	if _, err := (FileFetcher{}).Fetch(context.Background(), path+".missing"); err == nil {
		t.Error("expected an error for a missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FileFetcher{}).Fetch(ctx, path); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
