package filterstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func populatedState() FilterState {
	return Normalize(FilterState{
		PropertyType:   "apartment",
		PriceRange:     PriceRange{Min: 5000, Max: 20000},
		Bedrooms:       []string{"2", "3"},
		Amenities:      []string{"wifi"},
		Furnishing:     []string{"furnished"},
		VerifiedOnly:   true,
		Location:       "Pune",
		AvailableFrom:  "2026-09-15",
		SearchQuery:    "metro",
		SortBy:         SortNewest,
		ViewMode:       ViewList,
		ScrollPosition: 480,
	})
}

func TestClearFilters_ResetsFiltersKeepsView(t *testing.T) {
	got := ClearFilters(populatedState())

	defaults := Default()
	assert.Equal(t, defaults.PropertyType, got.PropertyType)
	assert.Equal(t, defaults.PriceRange, got.PriceRange)
	assert.Equal(t, defaults.Bedrooms, got.Bedrooms)
	assert.Equal(t, defaults.Amenities, got.Amenities)
	assert.Equal(t, defaults.Furnishing, got.Furnishing)
	assert.Equal(t, defaults.VerifiedOnly, got.VerifiedOnly)
	assert.Equal(t, defaults.Location, got.Location)
	assert.Equal(t, defaults.AvailableFrom, got.AvailableFrom)
	assert.Equal(t, defaults.SearchQuery, got.SearchQuery)

	// View state survives clearing.
	assert.Equal(t, SortNewest, got.SortBy)
	assert.Equal(t, ViewList, got.ViewMode)
	assert.Equal(t, 480, got.ScrollPosition)
}

func TestClearField_EachFieldInIsolation(t *testing.T) {
	defaults := Default()

	tests := []struct {
		field  Field
		verify func(t *testing.T, got FilterState)
	}{
		{
			field: FieldPropertyType,
			verify: func(t *testing.T, got FilterState) {
				assert.Equal(t, defaults.PropertyType, got.PropertyType)
			},
		},
		{
			field: FieldPriceRange,
			verify: func(t *testing.T, got FilterState) {
				assert.Equal(t, defaults.PriceRange, got.PriceRange)
			},
		},
		{
			field: FieldBedrooms,
			verify: func(t *testing.T, got FilterState) {
				assert.Equal(t, defaults.Bedrooms, got.Bedrooms)
			},
		},
		{
			field: FieldAmenities,
			verify: func(t *testing.T, got FilterState) {
				assert.Equal(t, defaults.Amenities, got.Amenities)
			},
		},
		{
			field: FieldFurnishing,
			verify: func(t *testing.T, got FilterState) {
				assert.Equal(t, defaults.Furnishing, got.Furnishing)
			},
		},
		{
			field: FieldVerifiedOnly,
			verify: func(t *testing.T, got FilterState) {
				assert.False(t, got.VerifiedOnly)
			},
		},
		{
			field: FieldLocation,
			verify: func(t *testing.T, got FilterState) {
				assert.Empty(t, got.Location)
			},
		},
		{
			field: FieldAvailableFrom,
			verify: func(t *testing.T, got FilterState) {
				assert.Empty(t, got.AvailableFrom)
			},
		},
		{
			field: FieldSearchQuery,
			verify: func(t *testing.T, got FilterState) {
				assert.Empty(t, got.SearchQuery)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			base := populatedState()
			got := ClearField(base, tt.field)

			tt.verify(t, got)

			// Only the named field changed: restoring it makes the states equal.
			restored := got
			switch tt.field {
			case FieldPropertyType:
				restored.PropertyType = base.PropertyType
			case FieldPriceRange:
				restored.PriceRange = base.PriceRange
			case FieldBedrooms:
				restored.Bedrooms = base.Bedrooms
			case FieldAmenities:
				restored.Amenities = base.Amenities
			case FieldFurnishing:
				restored.Furnishing = base.Furnishing
			case FieldVerifiedOnly:
				restored.VerifiedOnly = base.VerifiedOnly
			case FieldLocation:
				restored.Location = base.Location
			case FieldAvailableFrom:
				restored.AvailableFrom = base.AvailableFrom
			case FieldSearchQuery:
				restored.SearchQuery = base.SearchQuery
			}
			assert.True(t, Equal(base, restored))
		})
	}
}

func TestCaptureAndRestoreView(t *testing.T) {
	state := populatedState()

	view := CaptureView(state)
	assert.Equal(t, ViewState{SortBy: SortNewest, ViewMode: ViewList, ScrollPosition: 480}, view)

	fresh := Default()
	got := RestoreView(fresh, view)

	assert.Equal(t, SortNewest, got.SortBy)
	assert.Equal(t, ViewList, got.ViewMode)
	assert.Equal(t, 480, got.ScrollPosition)

	// Filter fields untouched by restore.
	assert.Equal(t, fresh.PropertyType, got.PropertyType)
	assert.Equal(t, fresh.Location, got.Location)
}
