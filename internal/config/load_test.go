package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/sigil/internal/constants"
	"github.com/mrz1836/sigil/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromPaths(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults apply when no files exist", func(t *testing.T) {
		cfg, err := LoadFromPaths(ctx, "", "")
		require.NoError(t, err)

		assert.Equal(t, constants.DefaultAPIBaseURL, cfg.API.BaseURL)
		assert.Equal(t, constants.DefaultRequestTimeout, cfg.API.Timeout)
		assert.Equal(t, constants.DefaultCatalogCacheSize, cfg.Catalog.CacheSize)
		assert.True(t, cfg.Catalog.OfflineFallback)
		assert.True(t, cfg.History.Enabled)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("global config overrides defaults", func(t *testing.T) {
		global := writeConfigFile(t, `
api:
  base_url: https://crypto.example.com/api/v1
  timeout: 5s
`)
		cfg, err := LoadFromPaths(ctx, "", global)
		require.NoError(t, err)

		assert.Equal(t, "https://crypto.example.com/api/v1", cfg.API.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		// Untouched values keep their defaults.
		assert.Equal(t, constants.DefaultCatalogCacheTTL, cfg.Catalog.CacheTTL)
	})

	t.Run("project config overrides global", func(t *testing.T) {
		global := writeConfigFile(t, `
api:
  base_url: https://global.example.com/api/v1
history:
  limit: 50
`)
		project := writeConfigFile(t, `
api:
  base_url: https://project.example.com/api/v1
`)
		cfg, err := LoadFromPaths(ctx, project, global)
		require.NoError(t, err)

		assert.Equal(t, "https://project.example.com/api/v1", cfg.API.BaseURL)
		// Global values not shadowed by the project file survive the merge.
		assert.Equal(t, 50, cfg.History.Limit)
	})

	t.Run("environment variable beats config file", func(t *testing.T) {
		t.Setenv("SIGIL_API_TOKEN", "env-token")
		global := writeConfigFile(t, `
api:
  token: file-token
`)
		cfg, err := LoadFromPaths(ctx, "", global)
		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.API.Token)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		bad := writeConfigFile(t, "api: [not: valid")
		_, err := LoadFromPaths(ctx, "", bad)
		require.Error(t, err)
	})

	t.Run("nonexistent path is skipped", func(t *testing.T) {
		_, err := LoadFromPaths(ctx, filepath.Join(t.TempDir(), "missing.yaml"), "")
		require.NoError(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
	})

	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, Validate(DefaultConfig()))
	})

	tests := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
	}{
		{
			name:     "empty base url",
			mutate:   func(c *Config) { c.API.BaseURL = "" },
			sentinel: errors.ErrConfigInvalidAPI,
		},
		{
			name:     "relative base url",
			mutate:   func(c *Config) { c.API.BaseURL = "localhost:8000" },
			sentinel: errors.ErrConfigInvalidAPI,
		},
		{
			name:     "relative crypto base url",
			mutate:   func(c *Config) { c.API.CryptoBaseURL = "localhost:9000" },
			sentinel: errors.ErrConfigInvalidAPI,
		},
		{
			name:     "zero timeout",
			mutate:   func(c *Config) { c.API.Timeout = 0 },
			sentinel: errors.ErrConfigInvalidAPI,
		},
		{
			name:     "excessive timeout",
			mutate:   func(c *Config) { c.API.Timeout = time.Hour },
			sentinel: errors.ErrConfigInvalidAPI,
		},
		{
			name:     "zero cache size",
			mutate:   func(c *Config) { c.Catalog.CacheSize = 0 },
			sentinel: errors.ErrConfigInvalidCatalog,
		},
		{
			name:     "negative cache ttl",
			mutate:   func(c *Config) { c.Catalog.CacheTTL = -time.Minute },
			sentinel: errors.ErrConfigInvalidCatalog,
		},
		{
			name:     "zero history limit",
			mutate:   func(c *Config) { c.History.Limit = 0 },
			sentinel: errors.ErrConfigInvalidHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			require.ErrorIs(t, Validate(cfg), tt.sentinel)
		})
	}
}

func TestProjectConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".sigil", "config.yaml"), ProjectConfigPath())
}
