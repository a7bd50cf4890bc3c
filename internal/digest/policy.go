// Package digest selects message-digest algorithms for signature scheme and
// curve combinations, and encodes document fingerprints in the canonical
// numeric form the signing primitives consume.
package digest

import (
	"crypto"
	_ "crypto/sha256" // registers SHA-256 with the crypto package
	_ "crypto/sha512" // registers SHA-384 and SHA-512 with the crypto package
	"math/big"
	"strings"

	"github.com/mrz1836/sigil/internal/constants"
	"github.com/mrz1836/sigil/internal/domain"
	"github.com/mrz1836/sigil/internal/errors"
)

// Algorithm is a canonical digest algorithm name as understood by the
// platform crypto provider.
type Algorithm string

// Supported digest algorithms.
const (
	// SHA256 is the SHA-256 digest (32-byte output).
	SHA256 Algorithm = constants.DigestSHA256

	// SHA384 is the SHA-384 digest (48-byte output).
	SHA384 Algorithm = constants.DigestSHA384

	// SHA512 is the SHA-512 digest (64-byte output).
	SHA512 Algorithm = constants.DigestSHA512
)

// String returns the string representation of the Algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// hash maps the algorithm onto the platform provider's hash function.
// Returns ErrUnsupportedDigest when the provider does not implement it.
func (a Algorithm) hash() (crypto.Hash, error) {
	var h crypto.Hash
	switch a {
	case SHA256:
		h = crypto.SHA256
	case SHA384:
		h = crypto.SHA384
	case SHA512:
		h = crypto.SHA512
	default:
		return 0, errors.Wrapf(errors.ErrUnsupportedDigest, "unknown algorithm %q", string(a))
	}
	if !h.Available() {
		return 0, errors.Wrapf(errors.ErrUnsupportedDigest, "%s not available on this platform", string(a))
	}
	return h, nil
}

// Size returns the digest output length in bytes, or 0 for an unknown
// algorithm.
func (a Algorithm) Size() int {
	switch a {
	case SHA256:
		return 32
	case SHA384:
		return 48
	case SHA512:
		return 64
	default:
		return 0
	}
}

// curveDigests is the static curve-name table consulted when the catalog
// supplies no explicit digest hint. It covers the well-known families; the
// catalog hint covers everything else.
//
//nolint:gochecknoglobals // Static lookup table, read-only after init
var curveDigests = map[string]Algorithm{
	"secp256k1":    SHA256,
	"secp256r1":    SHA256,
	"prime256v1":   SHA256,
	"P-256":        SHA256,
	"secp384r1":    SHA384,
	"P-384":        SHA384,
	"secp521r1":    SHA512,
	"P-521":        SHA512,
	"Ed25519":      SHA512,
	"ed25519":      SHA512,
	"Edwards25519": SHA512,
	"RSA-2048":     SHA256,
	"RSA-3072":     SHA256,
	"RSA-4096":     SHA256,
}

// Policy is the pure digest-selection and fingerprint-encoding component.
// It holds no mutable state and is safe for concurrent use.
type Policy struct{}

// NewPolicy creates a digest policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// SelectAlgorithm resolves the digest algorithm for a curve. Resolution order:
//
//  1. An explicit hash_algorithm hint in the curve parameters, translated to
//     the canonical name. The catalog is the authority on parameter sets the
//     static table cannot know about, so the hint always wins.
//  2. The static table keyed by curve name.
//  3. SHA-256 as the default.
//
// A hint naming an algorithm the platform does not support fails with
// ErrUnsupportedDigest rather than silently falling through.
func (p *Policy) SelectAlgorithm(curveName string, params map[string]any) (Algorithm, error) {
	if hint, ok := digestHint(params); ok {
		alg, err := translateHint(hint)
		if err != nil {
			return "", err
		}
		return alg, nil
	}

	if alg, ok := curveDigests[curveName]; ok {
		return alg, nil
	}

	return SHA256, nil
}

// SelectForCurve resolves the digest algorithm for a catalog curve,
// preferring the curve's own hint over the static table.
func (p *Policy) SelectForCurve(curve domain.Curve) (Algorithm, error) {
	return p.SelectAlgorithm(curve.Name, curve.Parameters)
}

// ComputeFingerprint hashes the raw document bytes with the named algorithm,
// reinterprets the digest bytes as an unsigned big-endian integer, and renders
// that integer as a base-10 string. Downstream signing primitives consume this
// numeric message representative, not a byte blob; the byte order is pinned
// here because a little-endian interpretation would produce signatures that
// never verify.
func (p *Policy) ComputeFingerprint(document []byte, alg Algorithm) (domain.DocumentFingerprint, error) {
	h, err := alg.hash()
	if err != nil {
		return domain.DocumentFingerprint{}, err
	}

	hasher := h.New()
	hasher.Write(document)
	sum := hasher.Sum(nil)

	value := new(big.Int).SetBytes(sum)

	return domain.DocumentFingerprint{
		DigestAlgorithm: string(alg),
		EncodedValue:    value.String(),
	}, nil
}

// DecodeFingerprint parses a decimal fingerprint back into raw digest bytes,
// left-padded to size. It is the inverse of ComputeFingerprint's encoding and
// exists so the round-trip can be verified independently of network code.
func DecodeFingerprint(encoded string, size int) ([]byte, error) {
	value, ok := new(big.Int).SetString(encoded, 10)
	if !ok {
		return nil, errors.Wrapf(errors.ErrEmptyValue, "not a base-10 integer: %q", encoded)
	}
	if value.Sign() < 0 {
		return nil, errors.Wrapf(errors.ErrEmptyValue, "fingerprint must be non-negative: %q", encoded)
	}
	if value.BitLen() > size*8 {
		return nil, errors.Wrapf(errors.ErrEmptyValue, "fingerprint exceeds %d bytes", size)
	}
	return value.FillBytes(make([]byte, size)), nil
}

// digestHint extracts the optional hash_algorithm hint from curve parameters.
func digestHint(params map[string]any) (string, bool) {
	if params == nil {
		return "", false
	}
	hint, ok := params["hash_algorithm"].(string)
	if !ok || hint == "" {
		return "", false
	}
	return hint, true
}

// translateHint maps the digest spellings seen across catalog versions onto
// the canonical algorithm names.
func translateHint(hint string) (Algorithm, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(hint), "-", ""))
	switch normalized {
	case "SHA256":
		return SHA256, nil
	case "SHA384":
		return SHA384, nil
	case "SHA512":
		return SHA512, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedDigest, "catalog hint %q", hint)
	}
}
