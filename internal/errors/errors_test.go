package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinels are distinct", func(t *testing.T) {
		sentinels := []error{
			ErrUnsupportedDigest,
			ErrValidation,
			ErrAuthRequired,
			ErrForbidden,
			ErrNotFound,
			ErrRateLimited,
			ErrServerTransient,
			ErrNetwork,
			ErrAlgorithmNotFound,
			ErrCurveNotFound,
		}
		for i, a := range sentinels {
			for j, b := range sentinels {
				if i == j {
					continue
				}
				assert.NotErrorIs(t, a, b)
			}
		}
	})

	t.Run("wrapped sentinel matches with errors.Is", func(t *testing.T) {
		err := fmt.Errorf("selecting digest: %w", ErrUnsupportedDigest)
		assert.ErrorIs(t, err, ErrUnsupportedDigest)
	})
}

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       error
	}{
		{name: "400 maps to validation", statusCode: 400, want: ErrValidation},
		{name: "422 maps to validation", statusCode: 422, want: ErrValidation},
		{name: "401 maps to auth required", statusCode: 401, want: ErrAuthRequired},
		{name: "403 maps to forbidden", statusCode: 403, want: ErrForbidden},
		{name: "404 maps to not found", statusCode: 404, want: ErrNotFound},
		{name: "429 maps to rate limited", statusCode: 429, want: ErrRateLimited},
		{name: "500 maps to transient", statusCode: 500, want: ErrServerTransient},
		{name: "503 maps to transient", statusCode: 503, want: ErrServerTransient},
		{name: "0 maps to network", statusCode: 0, want: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.statusCode, "", "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewAPIError(t *testing.T) {
	t.Run("synthesizes message from status code", func(t *testing.T) {
		err := NewAPIError(500, "", "")
		assert.Equal(t, "API error: 500", err.Message)
		assert.Equal(t, "API error: 500", err.Error())
	})

	t.Run("carries server message verbatim", func(t *testing.T) {
		err := NewAPIError(422, "curve_name is required", `{"detail":"curve_name is required"}`)
		assert.Equal(t, "curve_name is required", err.Error())
		assert.Equal(t, `{"detail":"curve_name is required"}`, err.RawBody)
	})
}

func TestIsAPIError(t *testing.T) {
	t.Run("finds APIError through wrapping", func(t *testing.T) {
		inner := NewAPIError(404, "", "")
		wrapped := Wrap(inner, "fetching curves")

		got, ok := IsAPIError(wrapped)
		require.True(t, ok)
		assert.Equal(t, 404, got.StatusCode)
	})

	t.Run("returns false for plain errors", func(t *testing.T) {
		_, ok := IsAPIError(errors.New("boom"))
		assert.False(t, ok)
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
		assert.NoError(t, Wrapf(nil, "context %d", 1))
	})

	t.Run("preserves error chain", func(t *testing.T) {
		err := Wrapf(ErrCurveNotFound, "loading curves for %s", "ecdsa")
		assert.ErrorIs(t, err, ErrCurveNotFound)
		assert.Contains(t, err.Error(), "loading curves for ecdsa")
	})
}

func TestUserMessage(t *testing.T) {
	t.Run("maps known sentinel", func(t *testing.T) {
		msg := UserMessage(fmt.Errorf("verify: %w", ErrRateLimited))
		assert.Equal(t, "The service is rate limiting requests.", msg)
		assert.NotEmpty(t, Actionable(ErrRateLimited))
	})

	t.Run("maps APIError through taxonomy", func(t *testing.T) {
		err := NewAPIError(401, "", "")
		assert.Equal(t, "Authentication is required for this operation.", UserMessage(err))
	})

	t.Run("falls back to raw error text", func(t *testing.T) {
		err := errors.New("something odd")
		assert.Equal(t, "something odd", UserMessage(err))
		assert.Empty(t, Actionable(err))
	})
}

func TestExitCode2Error(t *testing.T) {
	err := NewExitCode2Error(ErrValidation)
	assert.True(t, IsExitCode2Error(err))
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, IsExitCode2Error(ErrValidation))
}
