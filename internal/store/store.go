// Package store holds the authoritative search session state: the current
// filter state, the candidate set, and the derived result. All mutations go
// through the store so normalization, recombination, and URL mirroring
// happen on every change without callers having to remember any of them.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/metrics"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/observability"
	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
	"github.com/Ayupanchal18/Renters-sub007/internal/listings"
	"github.com/Ayupanchal18/Renters-sub007/internal/search"
	"github.com/Ayupanchal18/Renters-sub007/internal/urlquery"
)

// URLSink receives the canonical query string after every filter mutation.
// The HTTP layer hands it back to clients; tests capture it directly.
type URLSink interface {
	ReplaceQuery(query string)
}

// NopSink discards URL updates.
type NopSink struct{}

func (NopSink) ReplaceQuery(string) {}

// Store is safe for concurrent use. Candidates are refreshed from the source
// lazily and every mutation recomputes the filtered result synchronously, so
// readers always see a result consistent with the state that produced it.
type Store struct {
	mu sync.Mutex

	source listings.Source
	engine *search.Engine
	sink   URLSink
	logger logger.Logger
	obs    *observability.Observability // nil disables otel recording

	sourceName string
	candidates []listings.Listing
	loaded     bool

	state  filterstate.FilterState
	result search.Result
}

func New(source listings.Source, engine *search.Engine, sink URLSink, sourceName string, log logger.Logger) *Store {
	if sink == nil {
		sink = NopSink{}
	}
	return &Store{
		source:     source,
		engine:     engine,
		sink:       sink,
		sourceName: sourceName,
		logger:     log.WithFields(map[string]interface{}{"component": "search-store"}),
		state:      filterstate.Default(),
	}
}

// WithObservability attaches an otel recorder for per-search metrics.
func (s *Store) WithObservability(obs *observability.Observability) *Store {
	s.obs = obs
	return s
}

// Refresh re-fetches candidates from the source and recombines.
func (s *Store) Refresh(ctx context.Context) error {
	items, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.ListingSourceErrors.WithLabelValues(s.sourceName).Inc()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = items
	s.loaded = true
	s.recompute()
	return nil
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

// State returns a copy of the current filter state.
func (s *Store) State() filterstate.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the most recently computed combination result.
func (s *Store) Result() search.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// CanonicalQuery returns the URL query string for the current state.
func (s *Store) CanonicalQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return urlquery.Encode(s.state)
}

// Search applies a complete filter state plus a free-text query as the new
// session state, then returns the combined result. This is the
// request-scoped entry point used by the HTTP layer.
//
// When the source can pre-filter (an index-backed FilterSource), the
// narrowed candidate set is used for this search; the engine still
// re-applies the full pipeline, so the index only ever narrows, never
// decides. Index failures degrade to the last full candidate set.
func (s *Store) Search(ctx context.Context, state filterstate.FilterState, query string) (search.Result, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return search.Result{}, err
	}

	start := time.Now()

	if query != "" {
		state.SearchQuery = query
	}
	normalized := filterstate.Normalize(state)

	candidates := s.snapshotCandidates()
	if fs, ok := s.source.(listings.FilterSource); ok {
		pre, err := fs.Search(ctx, normalized, normalized.SearchQuery)
		if err != nil {
			metrics.ListingSourceErrors.WithLabelValues(s.sourceName).Inc()
			s.logger.Warn("index pre-filter failed, combining over full candidate set", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			candidates = pre
		}
	}

	s.mu.Lock()
	s.state = normalized
	// The stored candidate set stays the full one; the pre-filtered subset
	// only feeds this request's combination.
	s.result = s.engine.Combine(candidates, normalized, normalized.SearchQuery, normalized.SortBy)
	s.sink.ReplaceQuery(urlquery.Encode(normalized))
	res := s.result
	s.mu.Unlock()

	metrics.SearchesTotal.WithLabelValues(s.sourceName).Inc()
	metrics.SearchDuration.WithLabelValues(s.sourceName).Observe(time.Since(start).Seconds())
	metrics.SearchResults.WithLabelValues(s.sourceName).Observe(float64(res.TotalCount))
	if s.obs != nil {
		s.obs.RecordSearch(ctx, "success")
		s.obs.RecordSearchDuration(ctx, time.Since(start), "success")
	}

	return res, nil
}

func (s *Store) snapshotCandidates() []listings.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]listings.Listing, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Update merges a partial update (field name to raw value) into the current
// state, re-normalizing the merged whole.
func (s *Store) Update(ctx context.Context, updates map[string]interface{}) (search.Result, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return search.Result{}, err
	}

	s.mu.Lock()
	s.state = filterstate.Merge(s.state, updates)
	s.recompute()
	res := s.result
	s.mu.Unlock()
	return res, nil
}

// SetField updates a single filter field from a raw value.
func (s *Store) SetField(ctx context.Context, field filterstate.Field, value interface{}) (search.Result, error) {
	return s.Update(ctx, map[string]interface{}{field.String(): value})
}

// ClearField resets one filter field to its default, leaving the rest alone.
func (s *Store) ClearField(ctx context.Context, field filterstate.Field) (search.Result, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return search.Result{}, err
	}

	s.mu.Lock()
	s.state = filterstate.ClearField(s.state, field)
	s.recompute()
	res := s.result
	s.mu.Unlock()
	return res, nil
}

// ClearAll resets every filter field while preserving sort, view mode, and
// scroll position.
func (s *Store) ClearAll(ctx context.Context) (search.Result, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return search.Result{}, err
	}

	s.mu.Lock()
	s.state = filterstate.ClearFilters(s.state)
	s.recompute()
	res := s.result
	s.mu.Unlock()
	return res, nil
}

// SetSort changes the sort order. Results are re-sorted but not re-filtered.
func (s *Store) SetSort(sortBy string) search.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortBy = filterstate.NormalizeSort(sortBy)
	s.recompute()
	return s.result
}

// SetViewMode changes the presentation mode without touching results.
func (s *Store) SetViewMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = filterstate.Normalize(withViewMode(s.state, mode))
	s.sink.ReplaceQuery(urlquery.Encode(s.state))
}

// SetScrollPosition records the scroll offset for later restoration. It does
// not touch the URL or the result set.
func (s *Store) SetScrollPosition(pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos < 0 {
		pos = 0
	}
	s.state.ScrollPosition = pos
}

// ReplaceState swaps in a decoded state wholesale, e.g. when restoring from
// a shared URL.
func (s *Store) ReplaceState(ctx context.Context, state filterstate.FilterState) (search.Result, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return search.Result{}, err
	}

	s.mu.Lock()
	s.state = filterstate.Normalize(state)
	s.recompute()
	res := s.result
	s.mu.Unlock()
	return res, nil
}

// recompute runs the combination engine over the current candidates and
// mirrors the canonical query. Callers must hold s.mu.
func (s *Store) recompute() {
	s.result = s.engine.Combine(s.candidates, s.state, s.state.SearchQuery, s.state.SortBy)
	s.sink.ReplaceQuery(urlquery.Encode(s.state))

	s.logger.Debug("state recomputed", map[string]interface{}{
		"candidates": len(s.candidates),
		"matched":    s.result.TotalCount,
	})
}

func withViewMode(s filterstate.FilterState, mode string) filterstate.FilterState {
	s.ViewMode = mode
	return s
}
