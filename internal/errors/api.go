package errors

import (
	"errors"
	"fmt"
)

// APIError is the sole error currency crossing the remote boundary. Every
// network failure, regardless of which endpoint produced it, is translated
// into one APIError before it reaches an orchestrator.
//
// APIError unwraps to the taxonomy sentinel matching its status class, so
// callers keep using errors.Is():
//
//	if errors.Is(err, errors.ErrRateLimited) {
//	    // back off
//	}
type APIError struct {
	// StatusCode is the HTTP status that produced the error, or 0 for
	// transport-level failures that never received a status.
	StatusCode int

	// Message is the human-readable description. When the server supplied a
	// message it is carried verbatim; otherwise it is synthesized from the
	// status code alone.
	Message string

	// RawBody holds the unparsed response body when one was available.
	// Useful for debugging evolving backend contracts; may be empty.
	RawBody string
}

// NewAPIError builds an APIError for an HTTP status with an optional server
// message. When message is empty a generic one is synthesized from the code.
func NewAPIError(statusCode int, message, rawBody string) *APIError {
	if message == "" {
		message = fmt.Sprintf("API error: %d", statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		RawBody:    rawBody,
	}
}

// NewNetworkError builds an APIError for a transport-level failure that never
// produced an HTTP status.
func NewNetworkError(cause error) *APIError {
	return &APIError{
		StatusCode: 0,
		Message:    fmt.Sprintf("network error: %v", cause),
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the status code onto the fixed error taxonomy so the sentinel
// checks work through the wrapper.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 0:
		return ErrNetwork
	case e.StatusCode == 400 || e.StatusCode == 422:
		return ErrValidation
	case e.StatusCode == 401:
		return ErrAuthRequired
	case e.StatusCode == 403:
		return ErrForbidden
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode == 429:
		return ErrRateLimited
	case e.StatusCode >= 500:
		return ErrServerTransient
	default:
		return nil
	}
}

// IsAPIError reports whether err carries an *APIError anywhere in its chain,
// returning it when found.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
