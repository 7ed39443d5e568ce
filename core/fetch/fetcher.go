// Package fetch implements the Fetcher interface.
// Tutorial pages come either from a web server over HTTP GET or from a
// local build directory on disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gaurav-prasanna/tutorpage/core"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "tutorpage/1.0 (https://github.com/gaurav-prasanna/tutorpage)"
)

// Options tunes the HTTP fetcher. Zero values mean defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
	}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:     url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

// FileFetcher reads pages from the local filesystem.
type FileFetcher struct{}

// Fetch reads the file at path. The context is only checked up front.
func (FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &core.FetchResult{
		Source:     path,
		StatusCode: http.StatusOK,
		HTML:       string(data),
	}, nil
}

// IsURL reports whether source is an absolute http or https URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ForSource picks the HTTP fetcher for URLs and the file fetcher otherwise.
func ForSource(source string, opts Options) core.Fetcher {
	if IsURL(source) {
		return New(opts)
	}
	return FileFetcher{}
}
