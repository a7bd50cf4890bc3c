// Package constants provides centralized constant values used throughout sigil.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory and file names used by sigil for local state.
const (
	// SigilHome is the hidden directory name where sigil stores all its data.
	// This directory is created in the user's home directory.
	SigilHome = ".sigil"

	// HistoryDir is the directory name where signing and verification history is stored.
	HistoryDir = "history"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// SignHistoryFileName is the JSONL file holding signing results.
	SignHistoryFileName = "signatures.jsonl"

	// VerifyHistoryFileName is the JSONL file holding verification results.
	VerifyHistoryFileName = "verifications.jsonl"
)

// Remote service defaults.
const (
	// DefaultAPIBaseURL is the default base URL of the catalog service.
	DefaultAPIBaseURL = "http://localhost:8000/api/v1"

	// DefaultRequestTimeout is the default maximum duration for a single remote call.
	// Sign and verify requests complete in well under this in practice; the headroom
	// covers slow catalog cold starts.
	DefaultRequestTimeout = 30 * time.Second

	// ContentTypeJSON is the content type sent on every remote request.
	ContentTypeJSON = "application/json"
)

// Catalog cache defaults.
const (
	// DefaultCatalogCacheSize is the maximum number of catalog entries kept in memory.
	// One entry per algorithm plus the algorithm list itself, so this is generous.
	DefaultCatalogCacheSize = 64

	// DefaultCatalogCacheTTL controls how long catalog entries are considered fresh.
	// Algorithm metadata rarely changes; invalidation is an administrative action.
	DefaultCatalogCacheTTL = 24 * time.Hour

	// DefaultVerifyMemoSize bounds the verification result memo.
	DefaultVerifyMemoSize = 256
)

// Digest algorithm names as understood by the platform crypto provider.
const (
	// DigestSHA256 is the canonical name for SHA-256.
	DigestSHA256 = "SHA256"

	// DigestSHA384 is the canonical name for SHA-384.
	DigestSHA384 = "SHA384"

	// DigestSHA512 is the canonical name for SHA-512.
	DigestSHA512 = "SHA512"
)

// History defaults.
const (
	// DefaultHistoryLimit is the number of history records shown when no limit is given.
	DefaultHistoryLimit = 20
)
