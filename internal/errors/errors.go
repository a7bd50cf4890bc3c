// Package errors provides centralized error handling for sigil.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrUnsupportedDigest indicates the requested digest algorithm is not
	// available from the platform crypto provider. This is a fatal local error;
	// no network call is attempted after it.
	ErrUnsupportedDigest = errors.New("unsupported digest algorithm")

	// ErrValidation indicates the remote service rejected the request as invalid
	// (HTTP 400 or 422). The server message is surfaced verbatim when present.
	ErrValidation = errors.New("request validation failed")

	// ErrAuthRequired indicates the remote service requires authentication (HTTP 401).
	ErrAuthRequired = errors.New("authentication required")

	// ErrForbidden indicates the authenticated user may not perform the operation (HTTP 403).
	ErrForbidden = errors.New("operation forbidden")

	// ErrNotFound indicates the requested remote resource does not exist (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited indicates the remote service is throttling the client (HTTP 429).
	// Callers should back off rather than retry immediately.
	ErrRateLimited = errors.New("rate limited")

	// ErrServerTransient indicates a server-side failure (HTTP 5xx) that may clear
	// on its own. Sigil never retries automatically; retry policy belongs to the caller.
	ErrServerTransient = errors.New("transient server error")

	// ErrNetwork indicates a transport-level failure before any HTTP status was
	// received. Distinct from ErrServerTransient.
	ErrNetwork = errors.New("network unreachable")

	// ErrAlgorithmNotFound indicates no algorithm matches the given id or name.
	ErrAlgorithmNotFound = errors.New("algorithm not found")

	// ErrCurveNotFound indicates no curve matches the given name under the
	// selected algorithm.
	ErrCurveNotFound = errors.New("curve not found")

	// ErrNoCurveSelected indicates a sign or verify operation was attempted
	// before a curve selection was resolved.
	ErrNoCurveSelected = errors.New("no curve selected")

	// ErrEmptyDocument indicates the document content was empty.
	ErrEmptyDocument = errors.New("document cannot be empty")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrEnvelopeUnrecognized indicates no known response envelope shape matched
	// the catalog or verification payload.
	ErrEnvelopeUnrecognized = errors.New("unrecognized response envelope")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidAPI indicates an invalid API configuration value.
	ErrConfigInvalidAPI = errors.New("invalid API configuration")

	// ErrConfigInvalidCatalog indicates an invalid catalog configuration value.
	ErrConfigInvalidCatalog = errors.New("invalid catalog configuration")

	// ErrConfigInvalidHistory indicates an invalid history configuration value.
	ErrConfigInvalidHistory = errors.New("invalid history configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrHistoryDisabled indicates history recording is disabled in configuration.
	ErrHistoryDisabled = errors.New("history is disabled")

	// ErrHistoryCorrupted indicates a history file contains unreadable records.
	ErrHistoryCorrupted = errors.New("history file corrupted")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
// Sigil reserves exit code 2 for user-correctable validation failures.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
