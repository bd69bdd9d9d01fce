// Package search implements the filter combination engine: a strict AND
// pipeline over candidate listings plus free-text search and sorting.
package search

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
	"github.com/Ayupanchal18/Renters-sub007/internal/listings"
	"github.com/Ayupanchal18/Renters-sub007/internal/propertytype"
)

type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		logger: log.WithFields(map[string]interface{}{"component": "search-engine"}),
	}
}

// Combine applies every active filter predicate (AND semantics) plus the
// free-text query to the candidate set, then sorts the survivors.
//
// Each stage only narrows the working set, so predicate order affects
// performance, never correctness. Zero candidates or zero survivors is a
// valid terminal state, not an error. The candidates slice is never mutated.
func (e *Engine) Combine(candidates []listings.Listing, filters filterstate.FilterState, query string, sortBy string) Result {
	start := time.Now()

	working := make([]listings.Listing, len(candidates))
	copy(working, candidates)

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		working = keep(working, func(l listings.Listing) bool {
			return containsFold(l.Title, q) ||
				containsFold(l.Category, q) ||
				containsFold(l.PropertyType, q) ||
				containsFold(l.Description, q)
		})
	}

	if loc := strings.ToLower(strings.TrimSpace(filters.Location)); loc != "" {
		working = keep(working, func(l listings.Listing) bool {
			return containsFold(l.City, loc) ||
				containsFold(l.Address, loc) ||
				containsFold(l.Location, loc)
		})
	}

	if want, ok := propertytype.Normalize(filters.PropertyType, propertytype.SourceFilter); ok && want != "" {
		working = keep(working, func(l listings.Listing) bool {
			got, ok := propertytype.Normalize(l.PropertyType, propertytype.SourceBackend)
			return ok && got == want
		})
	}

	if !filters.PriceRange.IsDefault() {
		working = keep(working, func(l listings.Listing) bool {
			rent := l.RentValue()
			return rent >= filters.PriceRange.Min && rent <= filters.PriceRange.Max
		})
	}

	if len(filters.Bedrooms) > 0 {
		working = keep(working, func(l listings.Listing) bool {
			return matchesBedrooms(l.Bedrooms, filters.Bedrooms)
		})
	}

	if len(filters.Amenities) > 0 {
		working = keep(working, func(l listings.Listing) bool {
			return hasAllAmenities(l.Amenities, filters.Amenities)
		})
	}

	if len(filters.Furnishing) > 0 {
		working = keep(working, func(l listings.Listing) bool {
			furnishing := strings.ToLower(l.Furnishing)
			for _, opt := range filters.Furnishing {
				if strings.Contains(furnishing, strings.ToLower(opt)) {
					return true
				}
			}
			return false
		})
	}

	if filters.VerifiedOnly {
		working = keep(working, listings.Listing.VerifiedFlag)
	}

	if filters.AvailableFrom != "" {
		if wantDate, err := time.Parse("2006-01-02", filters.AvailableFrom); err == nil {
			working = keep(working, func(l listings.Listing) bool {
				// No availability date means "always available".
				if l.AvailableFrom == "" {
					return true
				}
				got, err := time.Parse("2006-01-02", l.AvailableFrom)
				if err != nil {
					return true
				}
				return !got.After(wantDate)
			})
		}
	}

	sortListings(working, sortBy)

	e.logger.Debug("combination complete", map[string]interface{}{
		"candidates": len(candidates),
		"survivors":  len(working),
		"sortBy":     sortBy,
		"durationMs": time.Since(start).Milliseconds(),
	})

	return Result{
		Filtered:   working,
		TotalCount: len(working),
		Applied:    filters,
	}
}

func keep(in []listings.Listing, pred func(listings.Listing) bool) []listings.Listing {
	out := in[:0:0]
	for _, l := range in {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}

func containsFold(haystack, needleLower string) bool {
	return strings.Contains(strings.ToLower(haystack), needleLower)
}

// matchesBedrooms reports whether count falls into ANY selected bucket.
// The "5+" bucket matches five or more; others match exactly.
func matchesBedrooms(count int, buckets []string) bool {
	for _, bucket := range buckets {
		if bucket == "5+" {
			if count >= 5 {
				return true
			}
			continue
		}
		if strconv.Itoa(count) == bucket {
			return true
		}
	}
	return false
}

// hasAllAmenities requires every selected amenity (AND, not OR); each one
// must case-insensitively substring-match at least one listing amenity.
func hasAllAmenities(have []string, required []string) bool {
	for _, req := range required {
		reqLower := strings.ToLower(req)
		found := false
		for _, amenity := range have {
			if strings.Contains(strings.ToLower(amenity), reqLower) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortListings(items []listings.Listing, sortBy string) {
	switch filterstate.NormalizeSort(sortBy) {
	case filterstate.SortRentLowToHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].RentValue() < items[j].RentValue()
		})
	case filterstate.SortRentHighToLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].RentValue() > items[j].RentValue()
		})
	case filterstate.SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case filterstate.SortFeatured:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Featured != items[j].Featured {
				return items[i].Featured
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	default:
		// newest; relevance has no scoring backend and falls through here too.
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}
