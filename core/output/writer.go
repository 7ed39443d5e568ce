// Package output handles file naming and writing for tutorpage outputs.
// In --only mode, filenames are flattened from the source
// (e.g. example_com_nn_chapter1.html, or chapter1.html for a local file).
// In --all mode, filenames mirror the URL path or the path below the
// scanned directory.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes output for --only mode under a flat filename.
func (w *Writer) WriteOnly(source string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, flatName(source)+ext)
	if err := checkNotSource(path, source); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes output for --all mode, mirroring the source structure.
// Example: https://site.com/nn/chapter1 → ./nn/chapter1.md
// Example: a file nn/chapter1.html below root → ./nn/chapter1.md
func (w *Writer) WriteAll(source, root string, data []byte, ext string) (string, error) {
	rel, err := relativeName(source, root)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.OutputDir, rel+ext)
	if err := checkNotSource(fullPath, source); err != nil {
		return "", err
	}

	// Ensure parent directories exist.
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// relativeName returns the extension-less output path for source.
func relativeName(source, root string) (string, error) {
	if isURL(source) {
		parsed, err := url.Parse(source)
		if err != nil {
			return "", fmt.Errorf("parsing URL: %w", err)
		}
		urlPath := strings.TrimSuffix(parsed.Path, "/")
		if urlPath == "" || urlPath == "/" {
			urlPath = "/index"
		}
		return trimExt(strings.TrimPrefix(urlPath, "/")), nil
	}

	rel, err := filepath.Rel(root, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(source)
	}
	return trimExt(rel), nil
}

// flatName converts a source into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
// Example: ./pages/chapter1.html → chapter1
func flatName(source string) string {
	if !isURL(source) {
		return sanitize(trimExt(filepath.Base(source)))
	}
	parsed, err := url.Parse(source)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(source)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(trimExt(path), "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// checkNotSource refuses to overwrite the page being processed.
func checkNotSource(path, source string) error {
	if isURL(source) {
		return nil
	}
	a, errA := filepath.Abs(path)
	b, errB := filepath.Abs(source)
	if errA == nil && errB == nil && a == b {
		return fmt.Errorf("refusing to overwrite source %s; choose another --output_dir", source)
	}
	return nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// trimExt drops a trailing .html or .htm so the renderer extension replaces it.
func trimExt(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return strings.TrimSuffix(p, filepath.Ext(p))
	}
	return p
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
