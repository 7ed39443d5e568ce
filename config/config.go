// Package config handles loading tutorpage configuration.
//
// Configuration is a YAML file, looked up at:
//   - the path given with --config
//   - $XDG_CONFIG_HOME/tutorpage/config.yaml
//   - ~/.config/tutorpage/config.yaml
//
// A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/tutorpage/core/fetch"
	"github.com/gaurav-prasanna/tutorpage/core/page"
	"gopkg.in/yaml.v3"
)

// FetchConfig controls HTTP fetching.
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Dir string `yaml:"dir,omitempty"` // default: current directory
}

// Config is the top-level configuration for tutorpage.
type Config struct {
	Selectors page.Selectors `yaml:"selectors,omitempty"`
	Fetch     FetchConfig    `yaml:"fetch,omitempty"`
	Output    OutputConfig   `yaml:"output,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Selectors: page.DefaultSelectors(),
		Fetch: FetchConfig{
			TimeoutSeconds: int(fetch.DefaultTimeout / time.Second),
			UserAgent:      fetch.DefaultUserAgent,
		},
	}
}

// ConfigDir returns the XDG config directory for tutorpage.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tutorpage")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tutorpage")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads path, or the XDG config file when path is empty.
// Returns DefaultConfig if the file doesn't exist.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Fetch.TimeoutSeconds < 0 {
		return cfg, fmt.Errorf("parsing config: fetch.timeout_seconds must not be negative")
	}

	cfg.Output.Dir = expandHome(cfg.Output.Dir)
	return cfg, nil
}

// FetchOptions converts the fetch section into fetcher options.
func (c Config) FetchOptions() fetch.Options {
	return fetch.Options{
		Timeout:   time.Duration(c.Fetch.TimeoutSeconds) * time.Second,
		UserAgent: c.Fetch.UserAgent,
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
