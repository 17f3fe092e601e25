package catalog

import (
	"slices"
	"sync"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/pkg/utils"
)

// normalizer wraps utils.TextNormalizer for accent and case insensitive
// matching. utils.TextNormalizer is not safe for concurrent use, so the
// engine constructs one per operation under its lock.
type normalizer struct {
	tn *utils.TextNormalizer
}

func newNormalizer() *normalizer {
	return &normalizer{tn: utils.NewTextNormalizer()}
}

func (n *normalizer) Normalize(s string) string {
	return n.tn.Normalize(s)
}

func (n *normalizer) contains(s, substr string) bool {
	return n.tn.Contains(s, substr)
}

// Snapshot is a filtered catalog projection. Loaded distinguishes "no
// data fetched yet" from "criteria matched nothing".
type Snapshot struct {
	// Items in the order the gateway returned them (featured first,
	// then newest first).
	Items []*types.Software
	// Loaded is false until the first SetAll call.
	Loaded bool
	// NoResults is true when data is loaded but the active criteria
	// matched nothing.
	NoResults bool
	// Generation identifies which SetAll the snapshot was computed
	// from. Callers racing a reload can discard stale snapshots by
	// comparing generations.
	Generation uint64
}

// Engine holds the full catalog list and computes filtered views.
// Safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	all        []*types.Software
	criteria   Criteria
	loaded     bool
	generation uint64
}

// NewEngine creates an empty engine. Call SetAll once data arrives.
func NewEngine() *Engine {
	return &Engine{}
}

// SetAll replaces the backing list and bumps the generation so views
// computed from the previous list can be recognized as stale. The
// active criteria are kept and reapply to the new list.
func (e *Engine) SetAll(softwares []*types.Software) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.all = slices.Clone(softwares)
	e.loaded = true
	e.generation++

	return e.generation
}

// SetAllFrom replaces the backing list only when the generation still
// matches token. A load that raced a newer SetAll is discarded and
// false is returned, so stale query results never overwrite fresh data.
func (e *Engine) SetAllFrom(token uint64, softwares []*types.Software) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.generation != token {
		return false
	}

	e.all = slices.Clone(softwares)
	e.loaded = true
	e.generation++

	return true
}

// Generation returns the current data generation.
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.generation
}

// Criteria returns the active filter selections.
func (e *Engine) Criteria() Criteria {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.criteria
}

// ApplyFilters sets the criteria and returns the filtered snapshot.
// Filtering is pure over the backing list: reapplying the same criteria
// yields the same sequence, order preserved.
func (e *Engine) ApplyFilters(criteria Criteria) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.criteria = criteria

	return e.snapshotLocked()
}

// Search updates only the free-text query, keeping other filters.
func (e *Engine) Search(query string) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.criteria.Query = query

	return e.snapshotLocked()
}

// Reset clears all criteria and returns the unfiltered snapshot.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.criteria = Criteria{}

	return e.snapshotLocked()
}

// Snapshot recomputes the filtered view from the latest list and the
// active criteria.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	items := Apply(e.all, e.criteria)

	return Snapshot{
		Items:      items,
		Loaded:     e.loaded,
		NoResults:  e.loaded && len(items) == 0 && len(e.all) > 0,
		Generation: e.generation,
	}
}

// Apply filters a list with the given criteria. Entities pass when
// every active criterion matches; unset criteria match everything.
func Apply(all []*types.Software, criteria Criteria) []*types.Software {
	if criteria.IsZero() {
		return slices.Clone(all)
	}

	n := newNormalizer()
	filtered := make([]*types.Software, 0, len(all))

	for _, software := range all {
		if criteria.matches(software, n) {
			filtered = append(filtered, software)
		}
	}

	return filtered
}
