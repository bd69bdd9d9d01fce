package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
	"github.com/Ayupanchal18/Renters-sub007/internal/listings"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestEngine() *Engine {
	return NewEngine(logger.NewNoOpLogger())
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func rentCandidates(rents ...int) []listings.Listing {
	out := make([]listings.Listing, 0, len(rents))
	for i, rent := range rents {
		out = append(out, listings.Listing{
			ID:          string(rune('a' + i)),
			Title:       "Listing",
			MonthlyRent: rent,
			CreatedAt:   day(i + 1),
		})
	}
	return out
}

func ids(items []listings.Listing) []string {
	out := make([]string, 0, len(items))
	for _, l := range items {
		out = append(out, l.ID)
	}
	return out
}

// ==========================
// Filter Pipeline Tests
// ==========================

func TestCombine_NoFiltersKeepsEverything(t *testing.T) {
	candidates := rentCandidates(500, 1500, 2500)

	res := newTestEngine().Combine(candidates, filterstate.Default(), "", "")

	assert.Equal(t, 3, res.TotalCount)
	assert.Len(t, res.Filtered, 3)
}

func TestCombine_PriceRangeInclusiveBounds(t *testing.T) {
	candidates := rentCandidates(500, 1500, 2500, 3500, 4500)

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		PriceRange: filterstate.PriceRange{Min: 1000, Max: 3000},
	}), "", "")

	// 1500 and 2500 fall inside; 500, 3500, 4500 do not.
	assert.Equal(t, 2, res.TotalCount)

	// Boundary values are inclusive on both ends.
	edge := newTestEngine().Combine(rentCandidates(1000, 3000), filterstate.Normalize(filterstate.FilterState{
		PriceRange: filterstate.PriceRange{Min: 1000, Max: 3000},
	}), "", "")
	assert.Equal(t, 2, edge.TotalCount)
}

func TestCombine_FreeTextSearch(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "1", Title: "Sunny 2BHK near Metro"},
		{ID: "2", Title: "Quiet villa", Description: "garden and METRO access"},
		{ID: "3", Title: "Budget room", Category: "shared"},
		{ID: "4", Title: "Office space", PropertyType: "commercial"},
	}

	res := newTestEngine().Combine(candidates, filterstate.Default(), "  metro ", "")

	assert.ElementsMatch(t, []string{"1", "2"}, ids(res.Filtered))
}

func TestCombine_LocationMatchesCityAddressLocation(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "1", City: "Pune"},
		{ID: "2", Address: "14 Pune Cantonment Road"},
		{ID: "3", Location: "Koregaon Park, Pune"},
		{ID: "4", City: "Mumbai"},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		Location: "pune",
	}), "", "")

	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids(res.Filtered))
}

func TestCombine_PropertyTypeCanonicalComparison(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "1", PropertyType: "apartment"},
		{ID: "2", PropertyType: "villa"},
		{ID: "3", PropertyType: "unmapped-thing"},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		PropertyType: "flat", // filter alias for apartment
	}), "", "")

	assert.ElementsMatch(t, []string{"1"}, ids(res.Filtered))
}

func TestCombine_BedroomsFivePlusBucket(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "4br", Bedrooms: 4},
		{ID: "5br", Bedrooms: 5},
		{ID: "6br", Bedrooms: 6},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		Bedrooms: []string{"5+"},
	}), "", "")

	assert.ElementsMatch(t, []string{"5br", "6br"}, ids(res.Filtered))
}

func TestCombine_BedroomsAnyBucketMatches(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "1br", Bedrooms: 1},
		{ID: "2br", Bedrooms: 2},
		{ID: "3br", Bedrooms: 3},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		Bedrooms: []string{"1", "3"},
	}), "", "")

	assert.ElementsMatch(t, []string{"1br", "3br"}, ids(res.Filtered))
}

func TestCombine_AmenitiesRequireAll(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "both", Amenities: []string{"WiFi", "Covered Parking", "Gym"}},
		{ID: "wifi-only", Amenities: []string{"wifi"}},
		{ID: "parking-only", Amenities: []string{"parking"}},
		{ID: "neither", Amenities: []string{"pool"}},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		Amenities: []string{"wifi", "parking"},
	}), "", "")

	// AND semantics with case-insensitive substring matching.
	assert.ElementsMatch(t, []string{"both"}, ids(res.Filtered))
}

func TestCombine_FurnishingAnyMatch(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "f", Furnishing: "Furnished"},
		{ID: "sf", Furnishing: "Semi-Furnished"},
		{ID: "uf", Furnishing: "Unfurnished"},
		{ID: "none", Furnishing: ""},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		Furnishing: []string{"semi-furnished"},
	}), "", "")

	assert.ElementsMatch(t, []string{"sf"}, ids(res.Filtered))
}

func TestCombine_VerifiedOnly(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "v", Verified: true},
		{ID: "legacy", IsVerified: true},
		{ID: "not", Verified: false},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		VerifiedOnly: true,
	}), "", "")

	assert.ElementsMatch(t, []string{"v", "legacy"}, ids(res.Filtered))
}

func TestCombine_AvailableFrom(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "ready", AvailableFrom: "2026-09-01"},
		{ID: "later", AvailableFrom: "2026-11-01"},
		{ID: "always", AvailableFrom: ""},
		{ID: "garbled", AvailableFrom: "soon"},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		AvailableFrom: "2026-10-01",
	}), "", "")

	// Listings available on or before the wanted date survive; missing or
	// unparsable dates count as always available.
	assert.ElementsMatch(t, []string{"ready", "always", "garbled"}, ids(res.Filtered))
}

func TestCombine_AllFiltersAreANDed(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "match", PropertyType: "apartment", City: "Pune", MonthlyRent: 15000, Bedrooms: 2, Verified: true, Amenities: []string{"wifi"}},
		{ID: "wrong-city", PropertyType: "apartment", City: "Mumbai", MonthlyRent: 15000, Bedrooms: 2, Verified: true, Amenities: []string{"wifi"}},
		{ID: "too-pricey", PropertyType: "apartment", City: "Pune", MonthlyRent: 50000, Bedrooms: 2, Verified: true, Amenities: []string{"wifi"}},
		{ID: "unverified", PropertyType: "apartment", City: "Pune", MonthlyRent: 15000, Bedrooms: 2, Amenities: []string{"wifi"}},
	}

	res := newTestEngine().Combine(candidates, filterstate.Normalize(filterstate.FilterState{
		PropertyType: "apartment",
		Location:     "Pune",
		PriceRange:   filterstate.PriceRange{Min: 10000, Max: 20000},
		Bedrooms:     []string{"2"},
		Amenities:    []string{"wifi"},
		VerifiedOnly: true,
	}), "", "")

	assert.ElementsMatch(t, []string{"match"}, ids(res.Filtered))
}

func TestCombine_ZeroSurvivorsIsValid(t *testing.T) {
	res := newTestEngine().Combine(rentCandidates(500), filterstate.Normalize(filterstate.FilterState{
		PriceRange: filterstate.PriceRange{Min: 90000, Max: 95000},
	}), "", "")

	assert.Equal(t, 0, res.TotalCount)
	assert.Empty(t, res.Filtered)
}

func TestCombine_DoesNotMutateCandidates(t *testing.T) {
	candidates := rentCandidates(300, 100, 200)
	originalIDs := ids(candidates)

	newTestEngine().Combine(candidates, filterstate.Default(), "", filterstate.SortRentLowToHigh)

	assert.Equal(t, originalIDs, ids(candidates))
}

// ==========================
// Sorting Tests
// ==========================

func TestCombine_Sorting(t *testing.T) {
	candidates := []listings.Listing{
		{ID: "old-cheap", MonthlyRent: 1000, CreatedAt: day(1)},
		{ID: "mid-featured", MonthlyRent: 2000, CreatedAt: day(2), Featured: true},
		{ID: "new-pricey", MonthlyRent: 3000, CreatedAt: day(3)},
	}

	tests := []struct {
		name     string
		sortBy   string
		expected []string
	}{
		{
			name:     "rent low to high",
			sortBy:   filterstate.SortRentLowToHigh,
			expected: []string{"old-cheap", "mid-featured", "new-pricey"},
		},
		{
			name:     "rent high to low",
			sortBy:   filterstate.SortRentHighToLow,
			expected: []string{"new-pricey", "mid-featured", "old-cheap"},
		},
		{
			name:     "newest",
			sortBy:   filterstate.SortNewest,
			expected: []string{"new-pricey", "mid-featured", "old-cheap"},
		},
		{
			name:     "oldest",
			sortBy:   filterstate.SortOldest,
			expected: []string{"old-cheap", "mid-featured", "new-pricey"},
		},
		{
			name:     "featured first then newest",
			sortBy:   filterstate.SortFeatured,
			expected: []string{"mid-featured", "new-pricey", "old-cheap"},
		},
		{
			name:     "legacy alias maps through",
			sortBy:   "price-low",
			expected: []string{"old-cheap", "mid-featured", "new-pricey"},
		},
		{
			name:     "relevance falls back to newest",
			sortBy:   filterstate.SortRelevance,
			expected: []string{"new-pricey", "mid-featured", "old-cheap"},
		},
		{
			name:     "unknown falls back to newest",
			sortBy:   "bogus",
			expected: []string{"new-pricey", "mid-featured", "old-cheap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestEngine().Combine(candidates, filterstate.Default(), "", tt.sortBy)

			assert.Equal(t, tt.expected, ids(res.Filtered))
		})
	}
}

func TestCombine_AppliedEchoesFiltersAsReceived(t *testing.T) {
	filters := filterstate.FilterState{PropertyType: "flat", SortBy: "price-low"}

	res := newTestEngine().Combine(nil, filters, "", "")

	// The engine echoes what it was handed; normalization is the caller's job.
	assert.Equal(t, filters, res.Applied)
}

func TestListing_RentValueFallback(t *testing.T) {
	assert.Equal(t, 12000, listings.Listing{MonthlyRent: 12000, Price: 99}.RentValue())
	assert.Equal(t, 9000, listings.Listing{Price: 9000}.RentValue())
	assert.Equal(t, 0, listings.Listing{}.RentValue())
}
