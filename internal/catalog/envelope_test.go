package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/sigil/internal/domain"
)

func TestDecodeAlgorithmsEnvelope(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		body := []byte(`[{"id": "1", "name": "ECDSA", "type": "elliptic-curve", "is_default": true}]`)

		algorithms, ok := decodeAlgorithmsEnvelope(body)
		require.True(t, ok)
		require.Len(t, algorithms, 1)
		assert.Equal(t, "1", algorithms[0].ID)
		assert.Equal(t, "ECDSA", algorithms[0].Name)
		assert.Equal(t, domain.FamilyECDSA, algorithms[0].Family)
		assert.True(t, algorithms[0].IsDefault)
	})

	t.Run("items envelope", func(t *testing.T) {
		body := []byte(`{"items": [{"id": "2", "name": "RSA", "type": "rsa"}]}`)

		algorithms, ok := decodeAlgorithmsEnvelope(body)
		require.True(t, ok)
		require.Len(t, algorithms, 1)
		assert.Equal(t, domain.FamilyRSA, algorithms[0].Family)
	})

	t.Run("algorithms envelope", func(t *testing.T) {
		body := []byte(`{"algorithms": [{"id": "3", "name": "EdDSA", "type": "eddsa"}]}`)

		algorithms, ok := decodeAlgorithmsEnvelope(body)
		require.True(t, ok)
		require.Len(t, algorithms, 1)
		assert.Equal(t, domain.FamilyEdDSA, algorithms[0].Family)
	})

	t.Run("numeric ids normalized to strings", func(t *testing.T) {
		body := []byte(`[{"id": 7, "name": "ECDSA", "type": "ec"}]`)

		algorithms, ok := decodeAlgorithmsEnvelope(body)
		require.True(t, ok)
		assert.Equal(t, "7", algorithms[0].ID)
	})

	t.Run("empty bare array falls through to items", func(t *testing.T) {
		// A shape only wins when it yields a non-empty list.
		body := []byte(`{"items": [{"id": "1", "name": "ECDSA", "type": "ec"}], "algorithms": []}`)

		algorithms, ok := decodeAlgorithmsEnvelope(body)
		require.True(t, ok)
		require.Len(t, algorithms, 1)
	})

	t.Run("all shapes empty does not match", func(t *testing.T) {
		_, ok := decodeAlgorithmsEnvelope([]byte(`{"items": [], "algorithms": []}`))
		assert.False(t, ok)
	})

	t.Run("garbage does not match", func(t *testing.T) {
		_, ok := decodeAlgorithmsEnvelope([]byte(`"nope"`))
		assert.False(t, ok)
	})
}

func TestDecodeNestedCurves(t *testing.T) {
	t.Run("curves nested under algorithm detail", func(t *testing.T) {
		body := []byte(`{
			"id": "1",
			"name": "ECDSA",
			"curves": [
				{"id": "10", "name": "secp256k1", "bit_size": 256, "status": "enabled"},
				{"id": "11", "name": "secp384r1", "bit_size": 384, "status": "disabled"}
			]
		}`)

		curves, ok := decodeNestedCurves(body, "1")
		require.True(t, ok)
		require.Len(t, curves, 2)
		assert.Equal(t, "1", curves[0].AlgorithmID, "nested curves inherit the requested algorithm id")
		assert.Equal(t, domain.CurveDisabled, curves[1].Status)
	})

	t.Run("detail without curves does not match", func(t *testing.T) {
		_, ok := decodeNestedCurves([]byte(`{"id": "1", "name": "ECDSA"}`), "1")
		assert.False(t, ok)
	})

	t.Run("missing status defaults to enabled", func(t *testing.T) {
		body := []byte(`{"curves": [{"id": "10", "name": "secp256k1"}]}`)

		curves, ok := decodeNestedCurves(body, "1")
		require.True(t, ok)
		assert.True(t, curves[0].Enabled())
	})
}

func TestDecodeCurveList(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		body := []byte(`[{"id": "10", "name": "secp256k1", "algorithm_id": 1, "status": "enabled"}]`)

		curves, ok := decodeCurveList(body)
		require.True(t, ok)
		require.Len(t, curves, 1)
		assert.Equal(t, "1", curves[0].AlgorithmID)
	})

	t.Run("items envelope", func(t *testing.T) {
		body := []byte(`{"items": [{"id": "10", "name": "Ed25519", "status": "enabled"}]}`)

		curves, ok := decodeCurveList(body)
		require.True(t, ok)
		require.Len(t, curves, 1)
	})

	t.Run("parameters carried opaquely", func(t *testing.T) {
		body := []byte(`[{"id": "10", "name": "custom1", "parameters": {"hash_algorithm": "SHA384", "p": "0xff"}}]`)

		curves, ok := decodeCurveList(body)
		require.True(t, ok)
		assert.Equal(t, "SHA384", curves[0].DigestHint())
		assert.Equal(t, "0xff", curves[0].Parameters["p"])
	})
}
