package cli

import (
	"context"
	"net/http"
	"sync"

	"github.com/bluele/gcache"

	"github.com/mrz1836/sigil/internal/catalog"
	"github.com/mrz1836/sigil/internal/config"
	"github.com/mrz1836/sigil/internal/history"
	"github.com/mrz1836/sigil/internal/remote"
	"github.com/mrz1836/sigil/internal/resolver"
	"github.com/mrz1836/sigil/internal/signing"
)

// cachedConfig holds the config loaded during PersistentPreRunE so each
// subcommand doesn't re-read the files.
var (
	cachedConfig   *config.Config //nolint:gochecknoglobals // Loaded once per invocation
	cachedConfigMu sync.Mutex     //nolint:gochecknoglobals // Protects cachedConfig
)

// loadConfig loads the configuration once per process invocation.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cachedConfigMu.Lock()
	defer cachedConfigMu.Unlock()

	if cachedConfig != nil {
		return cachedConfig, nil
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	cachedConfig = cfg
	return cfg, nil
}

// services bundles the collaborators a subcommand needs.
type services struct {
	cfg      *config.Config
	catalog  *catalog.Client
	resolver *resolver.Resolver
	signer   *signing.Service
	store    *history.FileStore
}

// buildServices constructs the client stack from the loaded configuration.
// The history store is nil when history is disabled.
func buildServices(ctx context.Context) (*services, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	logger := GetLogger()

	httpClient := &http.Client{Timeout: cfg.API.Timeout}

	catalogClient := catalog.NewClient(cfg.API.BaseURL,
		catalog.WithHTTPClient(httpClient),
		catalog.WithToken(cfg.API.Token),
		catalog.WithLogger(logger),
		catalog.WithCache(gcache.New(cfg.Catalog.CacheSize).
			LRU().
			Expiration(cfg.Catalog.CacheTTL).
			Build()),
		catalog.WithOfflineFallback(cfg.Catalog.OfflineFallback),
	)

	cryptoBase := cfg.API.CryptoBaseURL
	if cryptoBase == "" {
		cryptoBase = cfg.API.BaseURL
	}
	cryptoClient := remote.NewClient(cryptoBase,
		remote.WithHTTPClient(httpClient),
		remote.WithToken(cfg.API.Token),
		remote.WithLogger(logger),
	)

	opts := []signing.Option{
		signing.WithLogger(logger),
		signing.WithVerifyMemo(signing.NewVerifyMemo()),
	}

	var store *history.FileStore
	if cfg.History.Enabled {
		store, err = history.NewFileStore(cfg.History.Dir)
		if err != nil {
			// History is bookkeeping; a broken store must not block signing.
			logger.Warn().Err(err).Msg("history disabled: store unavailable")
		} else {
			opts = append(opts, signing.WithHistory(store))
		}
	}

	return &services{
		cfg:      cfg,
		catalog:  catalogClient,
		resolver: resolver.New(catalogClient, logger),
		signer:   signing.NewService(catalogClient, cryptoClient, opts...),
		store:    store,
	}, nil
}
