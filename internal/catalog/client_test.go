package catalog

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/sigil/internal/domain"
	sigilerrors "github.com/mrz1836/sigil/internal/errors"
)

func TestClient_ListAlgorithms(t *testing.T) {
	t.Run("live catalog wins over fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/algorithms", r.URL.Path)
			_, _ = w.Write([]byte(`{"items": [{"id": "1", "name": "ECDSA", "type": "ec", "is_default": true}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		algorithms := client.ListAlgorithms(context.Background())

		require.Len(t, algorithms, 1)
		assert.Equal(t, "1", algorithms[0].ID)
	})

	t.Run("network failure degrades to built-in list", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := zerolog.New(&logBuf)

		client := NewClient("http://127.0.0.1:1", WithLogger(logger))
		algorithms := client.ListAlgorithms(context.Background())

		require.NotEmpty(t, algorithms)
		assert.Equal(t, "ECDSA", algorithms[0].Name)
		assert.True(t, algorithms[0].IsDefault)
		// Fallback use must stay distinguishable from live data.
		assert.Contains(t, logBuf.String(), `"fallback":true`)
	})

	t.Run("fallback disabled surfaces an empty list", func(t *testing.T) {
		var logBuf bytes.Buffer
		logger := zerolog.New(&logBuf)

		client := NewClient("http://127.0.0.1:1",
			WithLogger(logger), WithOfflineFallback(false))
		algorithms := client.ListAlgorithms(context.Background())

		assert.Empty(t, algorithms)
		assert.NotContains(t, logBuf.String(), `"fallback":true`)
	})

	t.Run("empty catalog degrades to built-in list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"items": []}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		algorithms := client.ListAlgorithms(context.Background())
		assert.NotEmpty(t, algorithms)
	})

	t.Run("second call served from cache", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`[{"id": "1", "name": "ECDSA", "type": "ec"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		client.ListAlgorithms(context.Background())
		client.ListAlgorithms(context.Background())

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("fallback results are not cached", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`[{"id": "live", "name": "ECDSA", "type": "ec"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		first := client.ListAlgorithms(context.Background())
		second := client.ListAlgorithms(context.Background())

		assert.Equal(t, "ECDSA", first[0].ID, "first call degraded to fallback")
		assert.Equal(t, "live", second[0].ID, "second call fetched live data")
	})
}

func TestClient_ListCurves(t *testing.T) {
	t.Run("nested detail endpoint preferred", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/algorithms/1", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"id": "1", "name": "ECDSA",
				"curves": [{"id": "10", "name": "secp256k1", "bit_size": 256, "status": "enabled"}]
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		curves := client.ListCurves(context.Background(), "1")

		require.Len(t, curves, 1)
		assert.Equal(t, "secp256k1", curves[0].Name)
		assert.Equal(t, "1", curves[0].AlgorithmID)
	})

	t.Run("flat endpoint used when nested fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/algorithms/1" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			require.Equal(t, "/curves", r.URL.Path)
			require.Equal(t, "1", r.URL.Query().Get("algorithm_id"))
			require.Equal(t, "enabled", r.URL.Query().Get("status"))
			_, _ = w.Write([]byte(`[{"id": "10", "name": "secp384r1", "algorithm_id": "1", "status": "enabled"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		curves := client.ListCurves(context.Background(), "1")

		require.Len(t, curves, 1)
		assert.Equal(t, "secp384r1", curves[0].Name)
	})

	t.Run("flat endpoint filters foreign algorithms", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/algorithms/1" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`[
				{"id": "10", "name": "secp256k1", "algorithm_id": "1"},
				{"id": "20", "name": "Ed25519", "algorithm_id": "2"}
			]`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		curves := client.ListCurves(context.Background(), "1")

		require.Len(t, curves, 1)
		assert.Equal(t, "secp256k1", curves[0].Name)
	})

	t.Run("built-in table when both endpoints fail", func(t *testing.T) {
		var logBuf bytes.Buffer
		client := NewClient("http://127.0.0.1:1", WithLogger(zerolog.New(&logBuf)))
		curves := client.ListCurves(context.Background(), "ECDSA")

		require.NotEmpty(t, curves)
		assert.Equal(t, "secp256k1", curves[0].Name)
		assert.Contains(t, logBuf.String(), `"fallback":true`)
	})

	t.Run("disabled curves never escape, any source", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{
				"curves": [
					{"id": "10", "name": "secp256k1", "status": "enabled"},
					{"id": "11", "name": "weakcurve", "status": "disabled"}
				]
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		curves := client.ListCurves(context.Background(), "1")

		require.Len(t, curves, 1)
		for _, curve := range curves {
			assert.True(t, curve.Enabled())
		}
	})

	t.Run("second call served from cache", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"curves": [{"id": "10", "name": "secp256k1"}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		client.ListCurves(context.Background(), "1")
		client.ListCurves(context.Background(), "1")

		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_AlgorithmName(t *testing.T) {
	t.Run("resolves from live catalog", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id": "7", "name": "ECDSA", "type": "ec"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		name, err := client.AlgorithmName(context.Background(), "7")
		require.NoError(t, err)
		assert.Equal(t, "ECDSA", name)
	})

	t.Run("resolves from built-in table offline", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		name, err := client.AlgorithmName(context.Background(), "EdDSA")
		require.NoError(t, err)
		assert.Equal(t, "EdDSA", name)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		_, err := client.AlgorithmName(context.Background(), "nope")
		assert.ErrorIs(t, err, sigilerrors.ErrAlgorithmNotFound)
	})
}

func TestClient_FindCurve(t *testing.T) {
	t.Run("finds enabled curve by name", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		curve, err := client.FindCurve(context.Background(), "ECDSA", "secp384r1")
		require.NoError(t, err)
		assert.Equal(t, 384, curve.BitSize)
	})

	t.Run("unknown curve fails", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		_, err := client.FindCurve(context.Background(), "ECDSA", "curve25519")
		assert.ErrorIs(t, err, sigilerrors.ErrCurveNotFound)
	})
}

func TestFallbackCatalog(t *testing.T) {
	t.Run("fallback algorithms never empty", func(t *testing.T) {
		assert.NotEmpty(t, fallbackAlgorithms())
	})

	t.Run("every fallback curve is enabled", func(t *testing.T) {
		for _, alg := range fallbackAlgorithms() {
			for _, curve := range fallbackCurves(alg.ID) {
				assert.True(t, curve.Enabled(), "%s/%s", alg.ID, curve.Name)
				assert.Equal(t, alg.ID, curve.AlgorithmID)
			}
		}
	})

	t.Run("default family has curves", func(t *testing.T) {
		var defaultAlg domain.Algorithm
		for _, alg := range fallbackAlgorithms() {
			if alg.IsDefault {
				defaultAlg = alg
			}
		}
		require.NotEmpty(t, defaultAlg.ID)
		assert.NotEmpty(t, fallbackCurves(defaultAlg.ID))
	})
}
