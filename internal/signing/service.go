// Package signing composes the digest policy, catalog, and remote crypto
// client into end-to-end sign and verify operations producing canonical
// result records.
package signing

import (
	"context"
	"strings"

	"github.com/bluele/gcache"
	"github.com/rs/zerolog"

	"github.com/mrz1836/sigil/internal/catalog"
	"github.com/mrz1836/sigil/internal/constants"
	"github.com/mrz1836/sigil/internal/ctxutil"
	"github.com/mrz1836/sigil/internal/digest"
	"github.com/mrz1836/sigil/internal/domain"
	"github.com/mrz1836/sigil/internal/errors"
	"github.com/mrz1836/sigil/internal/history"
	"github.com/mrz1836/sigil/internal/remote"
)

// Catalog is the catalog surface the service depends on.
type Catalog interface {
	// AlgorithmName resolves an algorithm id to its human-readable name.
	AlgorithmName(ctx context.Context, algorithmID string) (string, error)

	// FindCurve returns the enabled curve with the given name under an algorithm.
	FindCurve(ctx context.Context, algorithmID, curveName string) (domain.Curve, error)
}

// CryptoClient is the remote crypto service surface the service depends on.
type CryptoClient interface {
	// Sign submits a signing request.
	Sign(ctx context.Context, req remote.SignRequest, fingerprint domain.DocumentFingerprint) (domain.SignResult, error)

	// Verify submits a verification request.
	Verify(ctx context.Context, req remote.VerifyRequest, fingerprint domain.DocumentFingerprint) (domain.VerifyResult, error)
}

// HistorySink receives canonical result records. The service only writes
// records; it never reads them back.
type HistorySink interface {
	// AppendSign records a completed signing.
	AppendSign(result domain.SignResult) error

	// AppendVerify records a completed verification.
	AppendVerify(result domain.VerifyResult) error
}

// Service performs end-to-end sign and verify operations.
type Service struct {
	policy  *digest.Policy
	catalog Catalog
	client  CryptoClient
	history HistorySink
	memo    gcache.Cache
	logger  zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHistory attaches a history sink. Without one, results are not recorded.
func WithHistory(sink HistorySink) Option {
	return func(s *Service) { s.history = sink }
}

// WithVerifyMemo attaches a verification memo cache. Identical
// fingerprint/signature/key triples short-circuit to the memoized result
// without a network call.
func WithVerifyMemo(memo gcache.Cache) Option {
	return func(s *Service) { s.memo = memo }
}

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a signing service.
func NewService(cat Catalog, client CryptoClient, opts ...Option) *Service {
	s := &Service{
		policy:  digest.NewPolicy(),
		catalog: cat,
		client:  client,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignInput carries everything needed to sign a document. PrivateKey lives
// only for the duration of the call; it is never retained, never logged, and
// never written to history.
type SignInput struct {
	// Document is the literal document content to fingerprint.
	Document []byte

	// PrivateKey is the caller's private key material.
	PrivateKey string

	// Curve is the resolved curve to sign under.
	Curve domain.Curve
}

// Sign computes the document fingerprint for the chosen curve and submits it
// with the key material to the remote signing primitive. Digest failures are
// fatal and reported before any network call; network failures surface as
// the mapped *errors.APIError. No automatic retry is performed: signing is
// not idempotent-safe to blindly retry.
func (s *Service) Sign(ctx context.Context, input SignInput) (domain.SignResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return domain.SignResult{}, err
	}
	if len(input.Document) == 0 {
		return domain.SignResult{}, errors.ErrEmptyDocument
	}
	if input.Curve.Name == "" {
		return domain.SignResult{}, errors.ErrNoCurveSelected
	}
	if input.PrivateKey == "" {
		return domain.SignResult{}, errors.Wrap(errors.ErrEmptyValue, "private key")
	}

	fingerprint, err := s.fingerprint(input.Document, input.Curve)
	if err != nil {
		return domain.SignResult{}, err
	}

	s.logger.Info().
		Str("curve", input.Curve.Name).
		Str("digest", fingerprint.DigestAlgorithm).
		Msg("signing document")

	result, err := s.client.Sign(ctx, remote.SignRequest{
		Document:   fingerprint.EncodedValue,
		PrivateKey: input.PrivateKey,
		CurveName:  input.Curve.Name,
	}, fingerprint)
	if err != nil {
		return domain.SignResult{}, err
	}

	s.record(func() error { return s.history.AppendSign(result) })
	return result, nil
}

// VerifyInput carries everything needed to verify a signature.
type VerifyInput struct {
	// Document is the literal document content to fingerprint.
	Document []byte

	// Signature is the signature value to check.
	Signature string

	// PublicKey is the public key to check against.
	PublicKey string

	// AlgorithmID identifies the algorithm in the catalog.
	AlgorithmID string

	// CurveName is the curve the signature was produced under.
	CurveName string
}

// Verify computes the fingerprint exactly as Sign does (identical digest
// policy, identical curve) and submits it with the signature and public key.
// The algorithm's human-readable name is resolved through the catalog, which
// degrades to the built-in table when unreachable. A completed verification
// is always surfaced, never silently discarded.
func (s *Service) Verify(ctx context.Context, input VerifyInput) (domain.VerifyResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return domain.VerifyResult{}, err
	}
	if len(input.Document) == 0 {
		return domain.VerifyResult{}, errors.ErrEmptyDocument
	}
	if input.CurveName == "" {
		return domain.VerifyResult{}, errors.ErrNoCurveSelected
	}

	algorithmName, err := s.catalog.AlgorithmName(ctx, input.AlgorithmID)
	if err != nil {
		return domain.VerifyResult{}, err
	}

	curve, err := s.catalog.FindCurve(ctx, input.AlgorithmID, input.CurveName)
	if err != nil {
		// The curve may exist on the service even when the local catalog view
		// is degraded; fall back to a bare name and let the digest table decide.
		s.logger.Debug().
			Err(err).
			Str("curve", input.CurveName).
			Msg("curve not in catalog, proceeding with name only")
		curve = domain.Curve{Name: input.CurveName}
	}

	fingerprint, err := s.fingerprint(input.Document, curve)
	if err != nil {
		return domain.VerifyResult{}, err
	}

	memoKey := verifyMemoKey(fingerprint.EncodedValue, input.Signature, input.PublicKey)
	if s.memo != nil {
		if cached, cacheErr := s.memo.Get(memoKey); cacheErr == nil {
			if result, ok := cached.(domain.VerifyResult); ok {
				s.logger.Debug().Str("verification_id", result.VerificationID).Msg("verification memo hit")
				return result, nil
			}
		}
	}

	s.logger.Info().
		Str("algorithm", algorithmName).
		Str("curve", input.CurveName).
		Str("digest", fingerprint.DigestAlgorithm).
		Msg("verifying signature")

	result, err := s.client.Verify(ctx, remote.VerifyRequest{
		Document:      fingerprint.EncodedValue,
		Signature:     input.Signature,
		PublicKey:     input.PublicKey,
		AlgorithmName: algorithmName,
		CurveName:     input.CurveName,
	}, fingerprint)
	if err != nil {
		return domain.VerifyResult{}, err
	}

	if s.memo != nil {
		_ = s.memo.Set(memoKey, result)
	}
	s.record(func() error { return s.history.AppendVerify(result) })
	return result, nil
}

// fingerprint selects the digest for a curve and computes the document
// fingerprint. Both failure modes are local and abort before the network.
func (s *Service) fingerprint(document []byte, curve domain.Curve) (domain.DocumentFingerprint, error) {
	alg, err := s.policy.SelectForCurve(curve)
	if err != nil {
		return domain.DocumentFingerprint{}, err
	}
	return s.policy.ComputeFingerprint(document, alg)
}

// record appends to history when a sink is configured. History failures are
// logged, not propagated: a completed cryptographic operation outranks its
// bookkeeping.
func (s *Service) record(append func() error) {
	if s.history == nil {
		return
	}
	if err := append(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record history")
	}
}

// NewVerifyMemo builds the default verification memo cache.
func NewVerifyMemo() gcache.Cache {
	return gcache.New(constants.DefaultVerifyMemoSize).LRU().Build()
}

func verifyMemoKey(fingerprint, signature, publicKey string) string {
	return strings.Join([]string{fingerprint, signature, publicKey}, ":")
}

// Compile-time check that the catalog client satisfies Catalog.
var _ Catalog = (*catalog.Client)(nil)

// Compile-time check that the file store satisfies HistorySink.
var _ HistorySink = (*history.FileStore)(nil)

// Compile-time check that the remote client satisfies CryptoClient.
var _ CryptoClient = (*remote.Client)(nil)
