package domain

import "time"

// DocumentFingerprint is the canonical numeric form of a document digest.
// It is derived data, computed fresh for every sign or verify call from the
// literal document bytes and the chosen curve. It is never cached and never
// persisted as identity data.
type DocumentFingerprint struct {
	// DigestAlgorithm is the canonical digest name used (e.g. "SHA256").
	DigestAlgorithm string `json:"digest_algorithm"`

	// EncodedValue is the digest's raw bytes reinterpreted as an unsigned
	// big-endian integer and rendered in base 10. This is the only wire form
	// the signing primitives accept; it is not a byte string and not base64.
	EncodedValue string `json:"encoded_value"`
}

// SignResult is the canonical record of a completed signing operation.
// Immutable once received; owned by the caller's session and never retried
// automatically.
type SignResult struct {
	// Signature is the signature value as returned by the signing service.
	Signature string `json:"signature"`

	// Fingerprint is the document fingerprint that was signed.
	Fingerprint DocumentFingerprint `json:"fingerprint"`

	// SigningID is the server-assigned identifier for this signing.
	SigningID string `json:"signing_id"`

	// SigningTime is when the server performed the signing.
	SigningTime time.Time `json:"signing_time"`

	// PublicKey is the public key corresponding to the private key used,
	// derived server-side.
	PublicKey string `json:"public_key"`

	// CurveName is the curve the signature was produced under.
	CurveName string `json:"curve_name,omitempty"`

	// AlgorithmName is the algorithm family name used.
	AlgorithmName string `json:"algorithm_name,omitempty"`
}

// VerifyResult is the canonical record of a completed verification.
// Immutable once received.
type VerifyResult struct {
	// IsValid reports whether the signature verified against the public key.
	IsValid bool `json:"is_valid"`

	// Fingerprint is the document fingerprint that was verified.
	Fingerprint DocumentFingerprint `json:"fingerprint"`

	// PublicKey is the public key the signature was checked against.
	PublicKey string `json:"public_key"`

	// CurveName is the curve used for verification.
	CurveName string `json:"curve_name"`

	// BitSize is the curve's bit size as reported by the service.
	BitSize int `json:"bit_size"`

	// VerificationID is the server-assigned record id, when the server
	// creates one.
	VerificationID string `json:"verification_id,omitempty"`

	// VerificationTime is when the server performed the verification.
	VerificationTime time.Time `json:"verification_time,omitempty"`
}
