// Package catalog fetches the algorithm and curve catalog from the remote
// resource service, caches it, and degrades to a built-in static catalog when
// the service is unreachable. Sign and verify stay usable fully offline.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bluele/gcache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/mrz1836/sigil/internal/constants"
	"github.com/mrz1836/sigil/internal/domain"
	"github.com/mrz1836/sigil/internal/errors"
	"github.com/mrz1836/sigil/internal/remote"
)

// Cache keys. The cache is append-only per key: only successful live fetches
// populate it and nothing in this package invalidates it. Invalidation is an
// external administrative action.
const (
	algorithmsCacheKey   = "algorithms:all"
	curvesCacheKeyPrefix = "curves:"
)

// Client reads the algorithm/curve catalog.
type Client struct {
	httpClient      remote.Doer
	baseURL         string
	token           string
	cache           gcache.Cache
	group           singleflight.Group
	logger          zerolog.Logger
	offlineFallback bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(d remote.Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCache injects the catalog cache. Tests use this to seed or replace the
// cache instead of relying on process-wide state.
func WithCache(cache gcache.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithOfflineFallback controls whether the built-in static catalog is
// substituted when the service is unreachable. On by default; turning it off
// makes an unreachable catalog surface as empty listings and failed lookups.
func WithOfflineFallback(enabled bool) Option {
	return func(c *Client) { c.offlineFallback = enabled }
}

// NewClient creates a catalog client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient:      &http.Client{Timeout: constants.DefaultRequestTimeout},
		baseURL:         strings.TrimRight(baseURL, "/"),
		logger:          zerolog.Nop(),
		offlineFallback: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = gcache.New(constants.DefaultCatalogCacheSize).
			LRU().
			Expiration(constants.DefaultCatalogCacheTTL).
			Build()
	}
	return c
}

// ListAlgorithms returns the catalog's algorithms. The response body may
// arrive in any of three envelope shapes (bare array, {items: [...]},
// {algorithms: [...]}); the first shape yielding a non-empty list wins. When
// the network call fails outright, or every shape yields an empty list, the
// built-in fallback catalog is returned instead of an error, so the caller
// always has at least the well-known families. Fallback use is logged at Warn
// with fallback=true so it stays distinguishable from live data.
func (c *Client) ListAlgorithms(ctx context.Context) []domain.Algorithm {
	if cached, err := c.cache.Get(algorithmsCacheKey); err == nil {
		if algorithms, ok := cached.([]domain.Algorithm); ok {
			return algorithms
		}
	}

	// Duplicate in-flight fetches for the same key collapse to one request;
	// they would race harmlessly to the same result anyway.
	result, fetchErr, _ := c.group.Do(algorithmsCacheKey, func() (any, error) {
		body, err := c.get(ctx, "/algorithms")
		if err != nil {
			return nil, err
		}
		algorithms, ok := decodeAlgorithmsEnvelope(body)
		if !ok || len(algorithms) == 0 {
			return nil, errors.Wrap(errors.ErrEnvelopeUnrecognized, "algorithm list")
		}
		return algorithms, nil
	})
	if fetchErr != nil {
		if !c.offlineFallback {
			c.logger.Warn().Err(fetchErr).Msg("catalog unavailable")
			return nil
		}
		c.logger.Warn().
			Err(fetchErr).
			Bool("fallback", true).
			Msg("catalog unavailable, using built-in algorithms")
		return fallbackAlgorithms()
	}

	algorithms := result.([]domain.Algorithm)
	_ = c.cache.Set(algorithmsCacheKey, algorithms)
	return algorithms
}

// ListCurves returns the enabled curves for an algorithm. The richer
// per-algorithm detail endpoint is preferred because it is authoritative for
// which curves are currently enabled; the flat curve-list endpoint filtered
// by algorithm id is the first fallback, the built-in table the last.
// Disabled curves are filtered out here, centrally, for every source.
func (c *Client) ListCurves(ctx context.Context, algorithmID string) []domain.Curve {
	cacheKey := curvesCacheKeyPrefix + algorithmID
	if cached, err := c.cache.Get(cacheKey); err == nil {
		if curves, ok := cached.([]domain.Curve); ok {
			return curves
		}
	}

	result, fetchErr, _ := c.group.Do(cacheKey, func() (any, error) {
		curves, err := c.fetchNestedCurves(ctx, algorithmID)
		if err == nil {
			return curves, nil
		}
		c.logger.Debug().
			Err(err).
			Str("algorithm_id", algorithmID).
			Msg("nested curve lookup failed, trying flat endpoint")
		return c.fetchFlatCurves(ctx, algorithmID)
	})
	if fetchErr != nil {
		if !c.offlineFallback {
			c.logger.Warn().Err(fetchErr).Str("algorithm_id", algorithmID).Msg("catalog unavailable")
			return nil
		}
		c.logger.Warn().
			Err(fetchErr).
			Bool("fallback", true).
			Str("algorithm_id", algorithmID).
			Msg("catalog unavailable, using built-in curves")
		return enabledOnly(fallbackCurves(algorithmID))
	}

	curves := enabledOnly(result.([]domain.Curve))
	_ = c.cache.Set(cacheKey, curves)
	return curves
}

// AlgorithmName resolves an algorithm id to its human-readable name,
// consulting the live catalog first and the built-in table when the catalog
// lookup fails or the id is unknown.
func (c *Client) AlgorithmName(ctx context.Context, algorithmID string) (string, error) {
	for _, alg := range c.ListAlgorithms(ctx) {
		if alg.ID == algorithmID || strings.EqualFold(alg.Name, algorithmID) {
			return alg.Name, nil
		}
	}
	if c.offlineFallback {
		for _, alg := range fallbackAlgorithms() {
			if alg.ID == algorithmID || strings.EqualFold(alg.Name, algorithmID) {
				return alg.Name, nil
			}
		}
	}
	return "", errors.Wrapf(errors.ErrAlgorithmNotFound, "id %q", algorithmID)
}

// FindCurve returns the enabled curve with the given name under an algorithm.
func (c *Client) FindCurve(ctx context.Context, algorithmID, curveName string) (domain.Curve, error) {
	for _, curve := range c.ListCurves(ctx, algorithmID) {
		if curve.Name == curveName {
			return curve, nil
		}
	}
	return domain.Curve{}, errors.Wrapf(errors.ErrCurveNotFound, "%q under algorithm %q", curveName, algorithmID)
}

// fetchNestedCurves reads the per-algorithm detail endpoint, which returns
// the curves nested under the algorithm.
func (c *Client) fetchNestedCurves(ctx context.Context, algorithmID string) ([]domain.Curve, error) {
	body, err := c.get(ctx, "/algorithms/"+url.PathEscape(algorithmID))
	if err != nil {
		return nil, err
	}
	curves, ok := decodeNestedCurves(body, algorithmID)
	if !ok {
		return nil, errors.Wrap(errors.ErrEnvelopeUnrecognized, "algorithm detail")
	}
	return curves, nil
}

// fetchFlatCurves reads the flat curve-list endpoint filtered by algorithm id.
func (c *Client) fetchFlatCurves(ctx context.Context, algorithmID string) ([]domain.Curve, error) {
	query := url.Values{}
	query.Set("algorithm_id", algorithmID)
	query.Set("status", string(domain.CurveEnabled))

	body, err := c.get(ctx, "/curves?"+query.Encode())
	if err != nil {
		return nil, err
	}
	curves, ok := decodeCurveList(body)
	if !ok {
		return nil, errors.Wrap(errors.ErrEnvelopeUnrecognized, "curve list")
	}

	filtered := curves[:0]
	for _, curve := range curves {
		if curve.AlgorithmID == "" || curve.AlgorithmID == algorithmID {
			filtered = append(filtered, curve)
		}
	}
	return filtered, nil
}

// get performs a GET request and returns the raw 2xx body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", constants.ContentTypeJSON)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := remote.CheckResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}
	return body, nil
}

// enabledOnly strips disabled curves. Callers never see a disabled curve,
// regardless of which source produced the list.
func enabledOnly(curves []domain.Curve) []domain.Curve {
	result := make([]domain.Curve, 0, len(curves))
	for _, curve := range curves {
		if curve.Enabled() {
			result = append(result, curve)
		}
	}
	return result
}

// idString normalizes the id representations seen across catalog versions
// (string ids, numeric ids) into a string join key.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}
