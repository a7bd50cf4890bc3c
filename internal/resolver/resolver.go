// Package resolver coordinates the linked algorithm and curve selections.
// Selecting an algorithm invalidates the curve list and triggers a refetch;
// out-of-order fetch completions are discarded so a fast user toggling
// between algorithms can never end up with curves from algorithm A displayed
// while algorithm B is selected.
package resolver

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/sigil/internal/domain"
)

// State represents the resolver's position in the selection flow.
type State string

// Resolver states.
const (
	// StateIdle means nothing has been loaded yet.
	StateIdle State = "idle"

	// StateLoadingAlgorithms means the algorithm list fetch is in flight.
	StateLoadingAlgorithms State = "loading_algorithms"

	// StateAlgorithmsReady means algorithms are loaded and none is selected.
	StateAlgorithmsReady State = "algorithms_ready"

	// StateLoadingCurves means a curve fetch for the selected algorithm is in flight.
	StateLoadingCurves State = "loading_curves"

	// StateCurvesReady means the curve list for the selected algorithm is resolved.
	StateCurvesReady State = "curves_ready"
)

// CatalogReader is the catalog surface the resolver depends on.
type CatalogReader interface {
	// ListAlgorithms returns the available algorithms, degrading to built-in
	// data on failure.
	ListAlgorithms(ctx context.Context) []domain.Algorithm

	// ListCurves returns the enabled curves for an algorithm.
	ListCurves(ctx context.Context, algorithmID string) []domain.Curve
}

// Snapshot is a consistent view of the resolver's selections.
type Snapshot struct {
	// State is the current resolution state.
	State State

	// Algorithms is the loaded algorithm list.
	Algorithms []domain.Algorithm

	// AlgorithmID is the currently selected algorithm, or empty.
	AlgorithmID string

	// Curves is the curve list belonging to AlgorithmID. Never contains
	// curves from a different algorithm.
	Curves []domain.Curve

	// Curve is the currently selected curve, or zero when unset.
	Curve domain.Curve

	// CurveSelected reports whether Curve holds a selection.
	CurveSelected bool
}

// Empty reports whether the resolved curve list is empty.
func (s Snapshot) Empty() bool {
	return s.State == StateCurvesReady && len(s.Curves) == 0
}

// Resolver is the algorithm→curve selection state machine. All exported
// methods are safe for concurrent use. Stale curve fetches are discarded by
// generation comparison, not by canceling the underlying request: catalog
// reads are cheap and side-effect free on abandonment.
type Resolver struct {
	catalog CatalogReader
	logger  zerolog.Logger

	mu          sync.Mutex
	state       State
	algorithms  []domain.Algorithm
	algorithmID string
	curves      []domain.Curve
	curve       domain.Curve
	curveSet    bool
	generation  uint64
}

// New creates a resolver over the given catalog.
func New(catalog CatalogReader, logger zerolog.Logger) *Resolver {
	return &Resolver{
		catalog: catalog,
		logger:  logger,
		state:   StateIdle,
	}
}

// LoadAlgorithms fetches the algorithm list. Safe to call repeatedly; each
// call refreshes the list from the catalog (which itself caches).
func (r *Resolver) LoadAlgorithms(ctx context.Context) []domain.Algorithm {
	r.mu.Lock()
	if r.state == StateIdle {
		r.state = StateLoadingAlgorithms
	}
	r.mu.Unlock()

	algorithms := r.catalog.ListAlgorithms(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms = algorithms
	if r.state == StateLoadingAlgorithms {
		r.state = StateAlgorithmsReady
	}
	return algorithms
}

// SelectAlgorithm changes the algorithm selection and resolves its curves.
// If the id differs from the algorithm the current curves belong to, the
// curve selection is cleared immediately: a curve list for a different
// algorithm is never valid for the new selection.
//
// Ordering guarantee: when SelectAlgorithm is invoked again before a prior
// curve fetch resolves, the prior response is discarded on arrival. Only the
// response matching the current selection populates state.
func (r *Resolver) SelectAlgorithm(ctx context.Context, algorithmID string) Snapshot {
	r.mu.Lock()
	if algorithmID != r.algorithmID {
		r.curves = nil
		r.curve = domain.Curve{}
		r.curveSet = false
	}
	r.algorithmID = algorithmID
	r.state = StateLoadingCurves
	r.generation++
	issued := r.generation
	r.mu.Unlock()

	curves := r.catalog.ListCurves(ctx, algorithmID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if issued != r.generation {
		// A newer selection superseded this fetch while it was in flight.
		r.logger.Debug().
			Str("algorithm_id", algorithmID).
			Uint64("issued", issued).
			Uint64("current", r.generation).
			Msg("discarding stale curve fetch")
		return r.snapshotLocked()
	}

	r.curves = curves
	r.state = StateCurvesReady
	if len(curves) == 0 {
		// Leave the selection unset; the caller surfaces the empty state.
		r.curve = domain.Curve{}
		r.curveSet = false
		return r.snapshotLocked()
	}

	if !r.curveSet || !curveIn(curves, r.curve.Name) {
		// Deterministic default: first curve in stable catalog order. The
		// catalog never returns disabled curves, so the default is always
		// selectable.
		r.curve = curves[0]
		r.curveSet = true
	}
	return r.snapshotLocked()
}

// SelectCurve sets the curve selection by name within the resolved list.
// Unknown names leave the selection unchanged and return the current view.
func (r *Resolver) SelectCurve(name string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, curve := range r.curves {
		if curve.Name == name {
			r.curve = curve
			r.curveSet = true
			break
		}
	}
	return r.snapshotLocked()
}

// Snapshot returns a consistent view of the current selections.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Resolver) snapshotLocked() Snapshot {
	algorithms := make([]domain.Algorithm, len(r.algorithms))
	copy(algorithms, r.algorithms)
	curves := make([]domain.Curve, len(r.curves))
	copy(curves, r.curves)

	return Snapshot{
		State:         r.state,
		Algorithms:    algorithms,
		AlgorithmID:   r.algorithmID,
		Curves:        curves,
		Curve:         r.curve,
		CurveSelected: r.curveSet,
	}
}

func curveIn(curves []domain.Curve, name string) bool {
	for _, curve := range curves {
		if curve.Name == name {
			return true
		}
	}
	return false
}
