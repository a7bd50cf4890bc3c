package resolver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/sigil/internal/domain"
)

// mockCatalog is a CatalogReader with controllable per-call behavior.
type mockCatalog struct {
	mu         sync.Mutex
	algorithms []domain.Algorithm
	curves     map[string][]domain.Curve
	// gates holds channels that block ListCurves for an algorithm id until closed.
	gates map[string]chan struct{}
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		algorithms: []domain.Algorithm{
			{ID: "ECDSA", Name: "ECDSA", Family: domain.FamilyECDSA, IsDefault: true},
			{ID: "RSA", Name: "RSA", Family: domain.FamilyRSA},
			{ID: "EdDSA", Name: "EdDSA", Family: domain.FamilyEdDSA},
		},
		curves: map[string][]domain.Curve{
			"ECDSA": {
				{ID: "1", Name: "secp256k1", AlgorithmID: "ECDSA", Status: domain.CurveEnabled},
				{ID: "2", Name: "secp384r1", AlgorithmID: "ECDSA", Status: domain.CurveEnabled},
			},
			"RSA": {
				{ID: "3", Name: "RSA-2048", AlgorithmID: "RSA", Status: domain.CurveEnabled},
			},
			"EdDSA": {
				{ID: "4", Name: "Ed25519", AlgorithmID: "EdDSA", Status: domain.CurveEnabled},
			},
		},
		gates: make(map[string]chan struct{}),
	}
}

func (m *mockCatalog) gate(algorithmID string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.gates[algorithmID] = ch
	return ch
}

func (m *mockCatalog) ListAlgorithms(_ context.Context) []domain.Algorithm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.algorithms
}

func (m *mockCatalog) ListCurves(_ context.Context, algorithmID string) []domain.Curve {
	m.mu.Lock()
	gate := m.gates[algorithmID]
	delete(m.gates, algorithmID)
	curves := m.curves[algorithmID]
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return curves
}

func newTestResolver(catalog CatalogReader) *Resolver {
	return New(catalog, zerolog.Nop())
}

func TestResolver_LoadAlgorithms(t *testing.T) {
	r := newTestResolver(newMockCatalog())

	assert.Equal(t, StateIdle, r.Snapshot().State)

	algorithms := r.LoadAlgorithms(context.Background())
	require.Len(t, algorithms, 3)
	assert.Equal(t, StateAlgorithmsReady, r.Snapshot().State)
}

func TestResolver_SelectAlgorithm(t *testing.T) {
	t.Run("selects first curve as deterministic default", func(t *testing.T) {
		r := newTestResolver(newMockCatalog())
		r.LoadAlgorithms(context.Background())

		snap := r.SelectAlgorithm(context.Background(), "ECDSA")

		assert.Equal(t, StateCurvesReady, snap.State)
		require.True(t, snap.CurveSelected)
		assert.Equal(t, "secp256k1", snap.Curve.Name)
	})

	t.Run("changing algorithm clears curve selection immediately", func(t *testing.T) {
		catalog := newMockCatalog()
		r := newTestResolver(catalog)
		r.SelectAlgorithm(context.Background(), "ECDSA")

		gate := catalog.gate("RSA")
		done := make(chan Snapshot, 1)
		go func() {
			done <- r.SelectAlgorithm(context.Background(), "RSA")
		}()

		// While the RSA fetch is in flight, no ECDSA curve may linger.
		require.Eventually(t, func() bool {
			snap := r.Snapshot()
			return snap.State == StateLoadingCurves && !snap.CurveSelected && len(snap.Curves) == 0
		}, time.Second, time.Millisecond)

		close(gate)
		snap := <-done
		assert.Equal(t, "RSA-2048", snap.Curve.Name)
	})

	t.Run("reselecting same algorithm keeps curve choice", func(t *testing.T) {
		r := newTestResolver(newMockCatalog())
		r.SelectAlgorithm(context.Background(), "ECDSA")
		r.SelectCurve("secp384r1")

		snap := r.SelectAlgorithm(context.Background(), "ECDSA")
		assert.Equal(t, "secp384r1", snap.Curve.Name)
	})

	t.Run("empty curve list leaves selection unset", func(t *testing.T) {
		catalog := newMockCatalog()
		catalog.curves["ECDSA"] = nil
		r := newTestResolver(catalog)

		snap := r.SelectAlgorithm(context.Background(), "ECDSA")

		assert.Equal(t, StateCurvesReady, snap.State)
		assert.False(t, snap.CurveSelected)
		assert.True(t, snap.Empty())
	})
}

func TestResolver_StaleFetchDiscarded(t *testing.T) {
	t.Run("late response for superseded selection is dropped", func(t *testing.T) {
		// Select RSA, then EdDSA before the RSA curve fetch returns. The RSA
		// response must never populate state.
		catalog := newMockCatalog()
		r := newTestResolver(catalog)

		rsaGate := catalog.gate("RSA")
		rsaDone := make(chan Snapshot, 1)
		go func() {
			rsaDone <- r.SelectAlgorithm(context.Background(), "RSA")
		}()

		require.Eventually(t, func() bool {
			return r.Snapshot().AlgorithmID == "RSA"
		}, time.Second, time.Millisecond)

		snap := r.SelectAlgorithm(context.Background(), "EdDSA")
		require.Equal(t, "Ed25519", snap.Curve.Name)

		close(rsaGate)
		late := <-rsaDone

		assert.Equal(t, "EdDSA", late.AlgorithmID)
		assert.Equal(t, "Ed25519", late.Curve.Name, "stale RSA curves must not appear")

		final := r.Snapshot()
		assert.Equal(t, StateCurvesReady, final.State)
		require.Len(t, final.Curves, 1)
		assert.Equal(t, "Ed25519", final.Curves[0].Name)
	})

	t.Run("A then B then A settles on A", func(t *testing.T) {
		// B's fetch resolves after A's second fetch; the final curve list
		// must belong to A.
		catalog := newMockCatalog()
		r := newTestResolver(catalog)

		bGate := catalog.gate("RSA")
		bDone := make(chan Snapshot, 1)

		r.SelectAlgorithm(context.Background(), "ECDSA")
		go func() {
			bDone <- r.SelectAlgorithm(context.Background(), "RSA")
		}()
		require.Eventually(t, func() bool {
			return r.Snapshot().AlgorithmID == "RSA"
		}, time.Second, time.Millisecond)

		snap := r.SelectAlgorithm(context.Background(), "ECDSA")
		require.Equal(t, "secp256k1", snap.Curve.Name)

		close(bGate)
		<-bDone

		final := r.Snapshot()
		assert.Equal(t, "ECDSA", final.AlgorithmID)
		require.NotEmpty(t, final.Curves)
		for _, curve := range final.Curves {
			assert.Equal(t, "ECDSA", curve.AlgorithmID)
		}
	})
}

func TestSnapshot_Empty(t *testing.T) {
	assert.True(t, Snapshot{State: StateCurvesReady}.Empty())
	assert.False(t, Snapshot{State: StateLoadingCurves}.Empty())
	assert.False(t, Snapshot{
		State:  StateCurvesReady,
		Curves: []domain.Curve{{Name: "secp256k1"}},
	}.Empty())
}
