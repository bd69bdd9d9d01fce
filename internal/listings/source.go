package listings

import (
	"context"

	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
)

// Source supplies candidate listings to the combination engine.
type Source interface {
	// Fetch returns the full candidate set. The engine applies all filter
	// semantics in-process; sources may return a superset.
	Fetch(ctx context.Context) ([]Listing, error)
}

// FilterSource is an optional capability for sources that can pre-narrow the
// candidate set server-side from the current filter state. The in-memory
// engine remains canonical: its AND pipeline still runs over whatever a
// FilterSource returns.
type FilterSource interface {
	Source
	Search(ctx context.Context, filters filterstate.FilterState, query string) ([]Listing, error)
}
