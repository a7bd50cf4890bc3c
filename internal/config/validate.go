package config

import (
	"net/url"
	"time"

	"github.com/mrz1836/sigil/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values and
// returns the first failure found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateAPIConfig(&cfg.API); err != nil {
		return err
	}
	if err := validateCatalogConfig(&cfg.Catalog); err != nil {
		return err
	}
	return validateHistoryConfig(&cfg.History)
}

func validateAPIConfig(cfg *APIConfig) error {
	if cfg.BaseURL == "" {
		return errors.Wrap(errors.ErrConfigInvalidAPI, "api.base_url must not be empty")
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.Wrapf(errors.ErrConfigInvalidAPI,
			"api.base_url must be an absolute URL, got %q", cfg.BaseURL)
	}

	if cfg.CryptoBaseURL != "" {
		parsed, err = url.Parse(cfg.CryptoBaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return errors.Wrapf(errors.ErrConfigInvalidAPI,
				"api.crypto_base_url must be an absolute URL, got %q", cfg.CryptoBaseURL)
		}
	}

	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidAPI,
			"api.timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Timeout > 10*time.Minute {
		return errors.Wrapf(errors.ErrConfigInvalidAPI,
			"api.timeout must be at most 10m, got %s", cfg.Timeout)
	}
	return nil
}

func validateCatalogConfig(cfg *CatalogConfig) error {
	if cfg.CacheSize < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidCatalog,
			"catalog.cache_size must be at least 1, got %d", cfg.CacheSize)
	}
	if cfg.CacheTTL <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidCatalog,
			"catalog.cache_ttl must be positive, got %s", cfg.CacheTTL)
	}
	return nil
}

func validateHistoryConfig(cfg *HistoryConfig) error {
	if cfg.Limit < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidHistory,
			"history.limit must be at least 1, got %d", cfg.Limit)
	}
	return nil
}
