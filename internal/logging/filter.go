// Package logging provides zerolog utilities that keep key material and
// credentials out of log output. Every log writer in sigil is wrapped by
// FilteringWriter; call sites that handle key material additionally use
// SafeValue before attaching fields.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns matches key material and credential shapes that must
// never reach a log file. PEM blocks are matched whole, including the body,
// so a pasted private key cannot leak between its armor lines.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// PEM private key blocks, armor and body
	regexp.MustCompile(`(?s)-----BEGIN[A-Z ]*PRIVATE KEY-----.*?-----END[A-Z ]*PRIVATE KEY-----`),

	// A dangling PEM header without its footer (truncated paste)
	regexp.MustCompile(`-----BEGIN[A-Z ]*PRIVATE KEY-----\S*`),

	// Bearer tokens in headers or messages
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/-]{16,}=*`),

	// Authorization header values
	regexp.MustCompile(`(?i)authorization\s*[:=]\s*["']?[a-zA-Z0-9._~+/-]{16,}=*["']?`),

	// API tokens assigned inline (token=..., api_token: "...")
	regexp.MustCompile(`(?i)(api[_-]?token|token|auth)\s*[:=]\s*["']?[a-zA-Z0-9+/=._-]{16,}["']?`),

	// Generic secret assignments
	regexp.MustCompile(`(?i)(secret|password|credential|passwd|pwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// sensitiveFieldNames are field names whose values are always redacted,
// matched case-insensitively and by substring.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"private_key",
	"privatekey",
	"private-key",
	"api_token",
	"apitoken",
	"api-token",
	"auth_token",
	"authtoken",
	"auth-token",
	"password",
	"passwd",
	"secret",
	"credential",
	"credentials",
	"bearer",
	"authorization",
	"sigil_api_token",
}

// SensitiveDataHook is a zerolog hook that flags events whose message
// contains sensitive material. Zerolog hooks cannot rewrite the message, so
// the hook marks the event; the FilteringWriter wrapping the sink performs
// the actual redaction.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements the zerolog.Hook interface.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces any sensitive pattern match in value with
// [REDACTED].
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether a field name indicates key material
// or a credential.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if lowerName == sensitive || strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns the value safe to attach to a log field: fully redacted
// when the field name is sensitive, pattern-filtered otherwise.
//
// Usage:
//
//	log.Debug().Str("curve", logging.SafeValue("curve", name)).Msg("resolved curve")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and redacts sensitive data from
// everything written through it. Log file writers are always wrapped so key
// material never reaches disk even if a call site forgets SafeValue.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter wraps w in a FilteringWriter.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering sensitive data before writing.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	_, err = fw.w.Write([]byte(filtered))
	if err != nil {
		return 0, err
	}
	// Report the original length so callers don't see a short write.
	return len(p), nil
}
