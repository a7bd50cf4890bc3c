package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/sigil/internal/errors"
)

// newViperInstance creates a Viper instance with sigil defaults, the SIGIL_
// environment prefix, and dot-to-underscore key mapping (api.base_url reads
// SIGIL_API_BASE_URL).
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SIGIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults mirrors DefaultConfig onto the Viper instance. Keys must match
// the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.crypto_base_url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", defaults.API.Timeout.String())

	v.SetDefault("catalog.cache_size", defaults.Catalog.CacheSize)
	v.SetDefault("catalog.cache_ttl", defaults.Catalog.CacheTTL.String())
	v.SetDefault("catalog.offline_fallback", defaults.Catalog.OfflineFallback)

	v.SetDefault("history.enabled", defaults.History.Enabled)
	v.SetDefault("history.dir", "")
	v.SetDefault("history.limit", defaults.History.Limit)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

// isConfigNotFoundError returns true for viper's missing config file error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// Load reads configuration from all sources with proper precedence.
// Highest precedence first:
//  1. Environment variables (SIGIL_* prefix)
//  2. Project config (.sigil/config.yaml)
//  3. Global config (~/.sigil/config.yaml)
//  4. Built-in defaults
//
// Missing config files are not an error; many installs never create one.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("api.base_url", cfg.API.BaseURL).
		Dur("api.timeout", cfg.API.Timeout).
		Dur("catalog.cache_ttl", cfg.Catalog.CacheTTL).
		Bool("history.enabled", cfg.History.Enabled).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadFromPaths loads configuration from explicit file paths, primarily for
// tests. Either path may be empty to skip that layer; projectConfigPath has
// the higher precedence.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}
	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil {
		// Home dir unavailable, run on defaults.
		return nil //nolint:nilerr // Missing home directory is not a config error
	}
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
