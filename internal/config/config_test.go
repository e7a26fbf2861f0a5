package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordboard/internal/model"
)

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eventQueue: 8\ncorsOrigins: [\"http://localhost:4200\"]\n"), 0o644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.EventQueue)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORSOrigins)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *Config)
		valid       bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"empty addr", func(c *Config) { c.Addr = "" }, false},
		{"relative upstream", func(c *Config) { c.UpstreamURL = "/users" }, false},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, false},
		{"negative enqueue timeout", func(c *Config) { c.EnqueueTimeout = -time.Second }, false},
		{"zero queue", func(c *Config) { c.EventQueue = 0 }, false},
	}

	for _, tc := range testCases {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		if tc.valid {
			assert.NoError(t, err, tc.description)
		} else {
			assert.Error(t, err, tc.description)
		}
	}
}

func TestLoadSeedAcceptsJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"id":3,"name":"A","email":"a@x.io"}]`), 0o644))
	yamlPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- id: 4\n  name: B\n  email: b@x.io\n"), 0o644))

	records, err := LoadSeed(context.Background(), jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{ID: 3, Name: "A", Email: "a@x.io"}}, records)

	records, err = LoadSeed(context.Background(), yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{ID: 4, Name: "B", Email: "b@x.io"}}, records)
}
