package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing
// messages. This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrUnsupportedDigest,
		info: ErrorInfo{
			Message: "The digest algorithm for this curve is not supported on this platform.",
			Action:  "Choose a different curve, or check the curve's hash_algorithm parameter.",
		},
	},
	{
		err: ErrValidation,
		info: ErrorInfo{
			Message: "The service rejected the request as invalid.",
			Action:  "Check the key, signature, and curve values and try again.",
		},
	},
	{
		err: ErrAuthRequired,
		info: ErrorInfo{
			Message: "Authentication is required for this operation.",
			Action:  "Set api.token in your config or the SIGIL_API_TOKEN environment variable.",
		},
	},
	{
		err: ErrForbidden,
		info: ErrorInfo{
			Message: "You are not allowed to perform this operation.",
			Action:  "Check that your account has signing permissions.",
		},
	},
	{
		err: ErrNotFound,
		info: ErrorInfo{
			Message: "The requested resource was not found on the server.",
			Action:  "Run 'sigil algorithms' to see what the service currently offers.",
		},
	},
	{
		err: ErrRateLimited,
		info: ErrorInfo{
			Message: "The service is rate limiting requests.",
			Action:  "Wait a moment before trying again. Sigil never retries automatically.",
		},
	},
	{
		err: ErrServerTransient,
		info: ErrorInfo{
			Message: "The service reported an internal error.",
			Action:  "Try again later. If the problem persists, contact the service operator.",
		},
	},
	{
		err: ErrNetwork,
		info: ErrorInfo{
			Message: "Could not reach the service.",
			Action:  "Check your network connection and the api.base_url setting. Catalog listings still work offline from built-in data.",
		},
	},
	{
		err: ErrAlgorithmNotFound,
		info: ErrorInfo{
			Message: "No algorithm matches the given id.",
			Action:  "Run 'sigil algorithms' to list the available algorithms.",
		},
	},
	{
		err: ErrCurveNotFound,
		info: ErrorInfo{
			Message: "No curve with that name is enabled for the selected algorithm.",
			Action:  "Run 'sigil curves --algorithm <id>' to list the enabled curves.",
		},
	},
	{
		err: ErrEmptyDocument,
		info: ErrorInfo{
			Message: "The document content was empty.",
			Action:  "Provide document content via --in or --text.",
		},
	},
}

// UserMessage returns a user-friendly message for the given error.
// Falls back to the raw error text when no mapping exists.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Message
		}
	}
	return err.Error()
}

// Actionable returns the suggested action for the given error, or empty when
// no action is known.
func Actionable(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Action
		}
	}
	return ""
}
