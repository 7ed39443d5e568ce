// Package crawl discovers the chapter pages of a tutorial for --all mode.
// Remote tutorials are found via sitemap.xml or link extraction, local
// ones by walking a directory, keeping discovery separate from processing.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/tutorpage/core"
)

// maxPages bounds a BFS crawl to avoid runaway discovery.
const maxPages = 100

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// DiscoverAll finds the chapter URLs that sit next to baseURL.
// It first tries sitemap.xml, then falls back to link crawling.
// The baseURL itself is always included, first.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	domain := parsed.Host
	scope := ScopeOf(baseURL)

	// Try sitemap first.
	sitemapURLStr := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := discoverFromSitemap(ctx, sitemapURLStr, domain, scope)
	if err == nil && len(urls) > 0 {
		queue := NewQueue()
		queue.Add(NormalizeURL(baseURL))
		for _, u := range urls {
			queue.Add(u)
		}
		return queue.All(), nil
	}

	// Fall back to BFS link crawling.
	return discoverFromLinks(ctx, baseURL, domain, scope, fetcher)
}

// discoverFromSitemap fetches and parses sitemap.xml for in-scope URLs.
func discoverFromSitemap(ctx context.Context, sitemapURL, domain, scope string) ([]string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseSitemap(body, domain, scope)
}

func parseSitemap(body []byte, domain, scope string) ([]string, error) {
	var sitemap sitemapIndex
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range sitemap.URLs {
		loc := strings.TrimSpace(u.Loc)
		if accept(loc, domain, scope) {
			urls = append(urls, NormalizeURL(loc))
		}
	}
	return urls, nil
}

// discoverFromLinks performs BFS crawling to find in-scope links.
func discoverFromLinks(ctx context.Context, startURL, domain, scope string, fetcher core.Fetcher) ([]string, error) {
	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))

	for queue.HasNext() && queue.Visited() < maxPages {
		currentURL := queue.Next()

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			continue // Skip failed pages, don't block the crawl.
		}

		links, err := extractLinks(result.HTML, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if accept(link, domain, scope) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return queue.All(), nil
}

func accept(link, domain, scope string) bool {
	return IsSameDomain(link, domain) && !IsStaticAsset(link) && InScope(link, scope)
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(href, base)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	// Skip mailto, javascript, etc.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	// Strip fragments.
	resolved.Fragment = ""
	return resolved.String()
}

// DiscoverFiles returns every .html and .htm file below root in lexical
// order, as paths joined onto root.
func DiscoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
