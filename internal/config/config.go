// Package config loads and validates sigil configuration from files,
// environment variables, and CLI flag overrides.
package config

import (
	"time"

	"github.com/mrz1836/sigil/internal/constants"
)

// Config is the root configuration for sigil.
//
// Precedence, highest first: CLI flags, environment variables (SIGIL_*),
// project config (.sigil/config.yaml), global config (~/.sigil/config.yaml),
// built-in defaults.
type Config struct {
	// API configures the remote catalog and crypto service.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Catalog configures local caching of algorithm and curve listings.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// History configures local recording of completed operations.
	History HistoryConfig `mapstructure:"history" yaml:"history"`

	// Logging configures the log output.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig holds the remote service settings.
type APIConfig struct {
	// BaseURL is the base URL of the catalog and signing service,
	// e.g. "http://localhost:8000/api/v1".
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// CryptoBaseURL is the base URL for the sign and verify endpoints when
	// they are served separately from the catalog. Empty means BaseURL.
	CryptoBaseURL string `mapstructure:"crypto_base_url" yaml:"crypto_base_url"`

	// Token is the bearer token sent on every request. Prefer setting it via
	// the SIGIL_API_TOKEN environment variable over the config file.
	Token string `mapstructure:"token" yaml:"token"`

	// Timeout bounds each individual remote call.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// CatalogConfig holds catalog cache settings.
type CatalogConfig struct {
	// CacheSize is the maximum number of catalog entries kept in memory.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`

	// CacheTTL is how long cached catalog entries stay fresh.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`

	// OfflineFallback substitutes the built-in algorithm and curve tables
	// when the service is unreachable. On by default.
	OfflineFallback bool `mapstructure:"offline_fallback" yaml:"offline_fallback"`
}

// HistoryConfig holds operation history settings.
type HistoryConfig struct {
	// Enabled turns local history recording on or off.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Dir is the directory holding the history files. Empty means
	// ~/.sigil/history.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Limit is the default number of records shown by the history command.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// File enables logging to ~/.sigil/logs in addition to stderr.
	File bool `mapstructure:"file" yaml:"file"`

	// MaxSizeMB is the size at which the log file rotates.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is how many rotated log files to keep.
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// DefaultConfig returns a Config with the built-in defaults. These are the
// base layer for file, environment, and flag overrides.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: constants.DefaultAPIBaseURL,
			Timeout: constants.DefaultRequestTimeout,
		},
		Catalog: CatalogConfig{
			CacheSize:       constants.DefaultCatalogCacheSize,
			CacheTTL:        constants.DefaultCatalogCacheTTL,
			OfflineFallback: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   constants.DefaultHistoryLimit,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       true,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
