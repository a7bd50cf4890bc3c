// Package testutil provides shared helpers for sigil's test files.
//
// The mock errors here simulate the failure modes sigil's services meet in
// practice: an unreachable signing service, a broken catalog, a history
// store that cannot be written. They should only be imported by *_test.go
// files.
package testutil

import "errors"

// Mock errors used to simulate failure scenarios in tests.
var (
	// ErrMockNetwork simulates a transport-level failure reaching the
	// signing service.
	ErrMockNetwork = errors.New("network error")

	// ErrMockAPIError simulates a non-2xx response from the signing service.
	ErrMockAPIError = errors.New("API error")

	// ErrMockCatalogUnavailable simulates an algorithm catalog that cannot
	// be fetched.
	ErrMockCatalogUnavailable = errors.New("catalog unavailable")

	// ErrMockStoreUnavailable simulates a history store that cannot accept
	// writes.
	ErrMockStoreUnavailable = errors.New("history store unavailable")
)
