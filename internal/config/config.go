package config

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"recordboard/internal/model"
	"recordboard/internal/remote"
)

const (
	DefaultAddr           = "127.0.0.1:8080"
	DefaultRequestTimeout = 10 * time.Second
	DefaultEventQueue     = 64
	DefaultEnqueueTimeout = 5 * time.Second
)

// Config is the YAML document accepted by -f/--config.
type Config struct {
	Addr           string        `yaml:"addr,omitempty" json:"addr,omitempty"`
	UpstreamURL    string        `yaml:"upstreamURL,omitempty" json:"upstreamURL,omitempty"`
	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty" json:"requestTimeout,omitempty"`
	EventQueue     int           `yaml:"eventQueue,omitempty" json:"eventQueue,omitempty"`
	EnqueueTimeout time.Duration `yaml:"enqueueTimeout,omitempty" json:"enqueueTimeout,omitempty"`
	CORSOrigins    []string      `yaml:"corsOrigins,omitempty" json:"corsOrigins,omitempty"`
	// Headers are sent with every upstream request, e.g. an API token.
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// Default returns a Config pointing at the public demo collection.
func Default() *Config {
	return &Config{
		Addr:           DefaultAddr,
		UpstreamURL:    remote.DefaultCollectionURL,
		RequestTimeout: DefaultRequestTimeout,
		EventQueue:     DefaultEventQueue,
		EnqueueTimeout: DefaultEnqueueTimeout,
		CORSOrigins:    []string{"*"},
	}
}

// Load reads a YAML (or JSON) config from a local path or any afs URL.
// Fields missing from the document keep their defaults.
func Load(ctx context.Context, location string) (*Config, error) {
	data, err := Download(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", location, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", location, err)
	}
	return cfg, nil
}

// Validate rejects configs the board cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: addr is required")
	}
	u, err := url.Parse(c.UpstreamURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid upstreamURL %q", c.UpstreamURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: requestTimeout must be positive, got %s", c.RequestTimeout)
	}
	if c.EnqueueTimeout <= 0 {
		return fmt.Errorf("config: enqueueTimeout must be positive, got %s", c.EnqueueTimeout)
	}
	if c.EventQueue <= 0 {
		return fmt.Errorf("config: eventQueue must be positive, got %d", c.EventQueue)
	}
	return nil
}

// LoadSeed reads a list of records (YAML or JSON) used to seed the sandbox collection.
func LoadSeed(ctx context.Context, location string) ([]model.Record, error) {
	data, err := Download(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read seed %q: %w", location, err)
	}
	var out []model.Record
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse seed %q: %w", location, err)
	}
	return out, nil
}

// Download fetches location through afs. Plain paths are resolved against the working directory.
func Download(ctx context.Context, location string) ([]byte, error) {
	fs := afs.New()
	return fs.DownloadWithURL(ctx, normalize(location))
}

func normalize(location string) string {
	if strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return "file://" + filepath.ToSlash(location)
}
