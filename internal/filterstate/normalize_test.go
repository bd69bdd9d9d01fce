package filterstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Normalization Tests
// ==========================

func TestNormalize_DefaultsForZeroValue(t *testing.T) {
	got := Normalize(FilterState{})

	assert.Equal(t, Default(), got)
}

func TestNormalize_Idempotent(t *testing.T) {
	tests := []struct {
		name  string
		input FilterState
	}{
		{
			name:  "zero value",
			input: FilterState{},
		},
		{
			name: "fully populated",
			input: FilterState{
				PropertyType:   "Apartments",
				PriceRange:     PriceRange{Min: 5000, Max: 30000},
				Bedrooms:       []string{"2", "5+"},
				Amenities:      []string{"WiFi", "Parking"},
				Furnishing:     []string{"furnished"},
				VerifiedOnly:   true,
				Location:       "  Pune  ",
				AvailableFrom:  "2026-09-15T10:00:00Z",
				SearchQuery:    "near metro",
				SortBy:         "price-low",
				ViewMode:       "list",
				ScrollPosition: 240,
			},
		},
		{
			name: "adversarial",
			input: FilterState{
				PropertyType: "castle",
				PriceRange:   PriceRange{Min: 900000, Max: -5},
				Bedrooms:     []string{"99", "two", "3"},
				Amenities:    []string{"", "  ", "wifi", "wifi", "WIFI"},
				Furnishing:   []string{"luxury"},
				Location:     "<script>alert(1)</script>",
				SearchQuery:  "javascript:void(0)",
				SortBy:       "cheapest",
				ViewMode:     "carousel",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Normalize(tt.input)
			twice := Normalize(once)

			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalize_PriceRange(t *testing.T) {
	tests := []struct {
		name     string
		input    PriceRange
		expected PriceRange
	}{
		{
			name:     "zero value means unset",
			input:    PriceRange{},
			expected: PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		},
		{
			name:     "negative max falls back to ceiling",
			input:    PriceRange{Min: 2000, Max: -1},
			expected: PriceRange{Min: 2000, Max: DefaultMaxPrice},
		},
		{
			name:     "min above max swaps",
			input:    PriceRange{Min: 30000, Max: 10000},
			expected: PriceRange{Min: 10000, Max: 30000},
		},
		{
			name:     "out of range clamps",
			input:    PriceRange{Min: -500, Max: 900000},
			expected: PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		},
		{
			name:     "valid band untouched",
			input:    PriceRange{Min: 8000, Max: 25000},
			expected: PriceRange{Min: 8000, Max: 25000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(FilterState{PriceRange: tt.input})

			assert.Equal(t, tt.expected, got.PriceRange)
		})
	}
}

func TestNormalize_ArrayFields(t *testing.T) {
	got := Normalize(FilterState{
		Bedrooms:   []string{"3", "nope", "1", "3"},
		Amenities:  []string{" WiFi ", "PARKING", "wifi", ""},
		Furnishing: []string{"Furnished", "palatial"},
	})

	// Allowed members survive in canonical order, deduplicated.
	assert.Equal(t, []string{"1", "3"}, got.Bedrooms)
	assert.Equal(t, []string{"wifi", "parking"}, got.Amenities)
	assert.Equal(t, []string{"furnished"}, got.Furnishing)
}

func TestNormalize_AmenitiesCapped(t *testing.T) {
	many := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}

	got := Normalize(FilterState{Amenities: many})

	assert.Len(t, got.Amenities, MaxAmenities)
}

func TestNormalize_InjectionDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "script tag", input: "<script>alert(1)</script>"},
		{name: "spaced script tag", input: "< script >alert(1)"},
		{name: "javascript url", input: "javascript:alert(1)"},
		{name: "event handler", input: "x onerror=alert(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(FilterState{Location: tt.input, SearchQuery: tt.input})

			assert.Empty(t, got.Location)
			assert.Empty(t, got.SearchQuery)
		})
	}
}

func TestNormalize_Dates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "iso date kept", input: "2026-09-15", expected: "2026-09-15"},
		{name: "rfc3339 truncated", input: "2026-09-15T10:30:00Z", expected: "2026-09-15"},
		{name: "garbage dropped", input: "next tuesday", expected: ""},
		{name: "empty stays empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(FilterState{AvailableFrom: tt.input})

			assert.Equal(t, tt.expected, got.AvailableFrom)
		})
	}
}

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "newest", expected: SortNewest},
		{input: " NEWEST ", expected: SortNewest},
		{input: "price-low", expected: SortRentLowToHigh},
		{input: "price-high", expected: SortRentHighToLow},
		{input: "unknown", expected: SortRelevance},
		{input: "", expected: SortRelevance},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSort(tt.input))
		})
	}
}

// ==========================
// Parse Boundary Tests
// ==========================

func TestParse_NilInput(t *testing.T) {
	got, recovered := Parse(nil)

	assert.True(t, recovered)
	assert.Equal(t, Default(), got)
}

func TestParse_WellFormedInput(t *testing.T) {
	got, recovered := Parse(map[string]interface{}{
		"propertyType": "apartment",
		"priceRange":   map[string]interface{}{"min": float64(5000), "max": float64(20000)},
		"bedrooms":     []interface{}{"2", "3"},
		"amenities":    "wifi,parking",
		"verifiedOnly": true,
		"location":     "Pune",
		"sortBy":       "newest",
	})

	assert.False(t, recovered)
	assert.Equal(t, "apartment", got.PropertyType)
	assert.Equal(t, PriceRange{Min: 5000, Max: 20000}, got.PriceRange)
	assert.Equal(t, []string{"2", "3"}, got.Bedrooms)
	assert.Equal(t, []string{"wifi", "parking"}, got.Amenities)
	assert.True(t, got.VerifiedOnly)
	assert.Equal(t, "Pune", got.Location)
	assert.Equal(t, SortNewest, got.SortBy)
}

func TestParse_CoercesLooseTypes(t *testing.T) {
	got, _ := Parse(map[string]interface{}{
		"priceRange":     map[string]interface{}{"min": "₹ 5,000", "max": "20,000.50"},
		"verifiedOnly":   "yes",
		"scrollPosition": float64(120),
	})

	assert.Equal(t, PriceRange{Min: 5000, Max: 20000}, got.PriceRange)
	assert.True(t, got.VerifiedOnly)
	assert.Equal(t, 120, got.ScrollPosition)
}

func TestParse_RecoversFromMalformedFields(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
	}{
		{
			name:  "wrong type for propertyType",
			input: map[string]interface{}{"propertyType": 42},
		},
		{
			name:  "priceRange as string",
			input: map[string]interface{}{"priceRange": "cheap"},
		},
		{
			name:  "prototype pollution key",
			input: map[string]interface{}{"__proto__": map[string]interface{}{"polluted": true}},
		},
		{
			name:  "scrollPosition as object",
			input: map[string]interface{}{"scrollPosition": map[string]interface{}{}},
		},
		{
			name:  "bedrooms as number",
			input: map[string]interface{}{"bedrooms": 3.5},
		},
		{
			name:  "amenities as object",
			input: map[string]interface{}{"amenities": map[string]interface{}{"wifi": true}},
		},
		{
			name:  "verifiedOnly as array",
			input: map[string]interface{}{"verifiedOnly": []interface{}{"true"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, recovered := Parse(tt.input)

			assert.True(t, recovered)
			assert.Equal(t, Default(), got)
		})
	}
}

func TestParse_MixedArrayKeepsStringsAndFlagsRecovery(t *testing.T) {
	got, recovered := Parse(map[string]interface{}{
		"bedrooms": []interface{}{"2", 3.5, "3"},
	})

	assert.True(t, recovered)
	assert.Equal(t, []string{"2", "3"}, got.Bedrooms)
}

func TestParse_NullArrayIsCleanEmpty(t *testing.T) {
	got, recovered := Parse(map[string]interface{}{
		"amenities": nil,
	})

	assert.False(t, recovered)
	assert.Empty(t, got.Amenities)
}

func TestParse_OutputIsNormalized(t *testing.T) {
	got, _ := Parse(map[string]interface{}{
		"propertyType": "Flat",
		"sortBy":       "price-low",
		"amenities":    []interface{}{"WiFi", "WIFI"},
	})

	assert.Equal(t, got, Normalize(got))
	assert.Equal(t, "apartment", got.PropertyType)
	assert.Equal(t, SortRentLowToHigh, got.SortBy)
	assert.Equal(t, []string{"wifi"}, got.Amenities)
}
