package search

import (
	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
	"github.com/Ayupanchal18/Renters-sub007/internal/listings"
)

// Result is the derived output of one combination run. It is recomputed
// wholesale on every invocation, never mutated incrementally.
type Result struct {
	// Filtered holds the surviving listings in sorted order.
	Filtered []listings.Listing `json:"filteredProperties"`
	// TotalCount always equals len(Filtered).
	TotalCount int `json:"totalCount"`
	// Applied echoes the filters exactly as received (not re-normalized),
	// for consumers rendering active-filter chips.
	Applied filterstate.FilterState `json:"appliedFilters"`
}
