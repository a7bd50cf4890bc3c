package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sigilerrors "github.com/mrz1836/sigil/internal/errors"
)

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestCheckResponse(t *testing.T) {
	t.Run("2xx passes", func(t *testing.T) {
		assert.NoError(t, CheckResponse(httpResponse(200, "")))
		assert.NoError(t, CheckResponse(httpResponse(201, "")))
	})

	t.Run("surfaces detail field verbatim", func(t *testing.T) {
		err := CheckResponse(httpResponse(422, `{"detail":"curve_name is required"}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, sigilerrors.ErrValidation)
		assert.Equal(t, "curve_name is required", err.Error())
	})

	t.Run("surfaces message field", func(t *testing.T) {
		err := CheckResponse(httpResponse(400, `{"message":"bad key"}`))
		assert.Equal(t, "bad key", err.Error())
	})

	t.Run("surfaces error field", func(t *testing.T) {
		err := CheckResponse(httpResponse(403, `{"error":"no signing permission"}`))
		assert.ErrorIs(t, err, sigilerrors.ErrForbidden)
		assert.Equal(t, "no signing permission", err.Error())
	})

	t.Run("unparsable 500 body synthesizes message", func(t *testing.T) {
		err := CheckResponse(httpResponse(500, "<html>Internal Server Error</html>"))
		require.Error(t, err)
		assert.ErrorIs(t, err, sigilerrors.ErrServerTransient)

		apiErr, ok := sigilerrors.IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 500, apiErr.StatusCode)
		assert.Equal(t, "API error: 500", apiErr.Message)
		assert.Equal(t, "<html>Internal Server Error</html>", apiErr.RawBody)
	})

	t.Run("status taxonomy", func(t *testing.T) {
		tests := []struct {
			status int
			want   error
		}{
			{status: 401, want: sigilerrors.ErrAuthRequired},
			{status: 404, want: sigilerrors.ErrNotFound},
			{status: 429, want: sigilerrors.ErrRateLimited},
			{status: 503, want: sigilerrors.ErrServerTransient},
		}
		for _, tt := range tests {
			err := CheckResponse(httpResponse(tt.status, "{}"))
			assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		}
	})
}

func TestNormalizeVerifyEnvelope(t *testing.T) {
	t.Run("modern envelope with nested metadata", func(t *testing.T) {
		raw := json.RawMessage(`{
			"verification": true,
			"meta_data": {"document": "987", "public_key": "abc", "curve_name": "secp384r1", "bit_size": 384},
			"verification_id": "v42"
		}`)

		result, err := normalizeVerifyEnvelope(raw)
		require.NoError(t, err)
		assert.True(t, result.IsValid)
		assert.Equal(t, "987", result.Fingerprint.EncodedValue)
		assert.Equal(t, "abc", result.PublicKey)
		assert.Equal(t, "secp384r1", result.CurveName)
		assert.Equal(t, 384, result.BitSize)
		assert.Equal(t, "v42", result.VerificationID)
	})

	t.Run("legacy flat envelope", func(t *testing.T) {
		raw := json.RawMessage(`{"is_valid": true, "document_hash": "123", "verification_id": "v1"}`)

		result, err := normalizeVerifyEnvelope(raw)
		require.NoError(t, err)
		assert.True(t, result.IsValid)
		assert.Equal(t, "123", result.Fingerprint.EncodedValue)
		assert.Equal(t, "v1", result.VerificationID)
		assert.Equal(t, 256, result.BitSize)
	})

	t.Run("modern false verification", func(t *testing.T) {
		raw := json.RawMessage(`{"verification": false}`)

		result, err := normalizeVerifyEnvelope(raw)
		require.NoError(t, err)
		assert.False(t, result.IsValid)
		assert.Equal(t, 256, result.BitSize)
	})

	t.Run("canonical field preferred when both present", func(t *testing.T) {
		raw := json.RawMessage(`{"verification": true, "is_valid": false}`)

		result, err := normalizeVerifyEnvelope(raw)
		require.NoError(t, err)
		assert.True(t, result.IsValid)
	})

	t.Run("unrecognized shape fails", func(t *testing.T) {
		_, err := normalizeVerifyEnvelope(json.RawMessage(`{"status": "ok"}`))
		assert.ErrorIs(t, err, sigilerrors.ErrEnvelopeUnrecognized)
	})
}
