package filterstate

// ViewState is the presentation-only subset of FilterState, persisted when a
// user navigates away from and back to a results view.
type ViewState struct {
	SortBy         string `json:"sortBy"`
	ViewMode       string `json:"viewMode"`
	ScrollPosition int    `json:"scrollPosition"`
}

// ClearFilters resets every filter field to its default while preserving the
// view fields untouched.
func ClearFilters(s FilterState) FilterState {
	out := Default()
	out.SortBy = s.SortBy
	out.ViewMode = s.ViewMode
	out.ScrollPosition = s.ScrollPosition
	return out
}

// ClearField resets a single filter field to its default. The switch is
// exhaustive over the closed Field set: adding a field without handling it
// here is a compile-time visible omission, not a silent no-op at a distance.
func ClearField(s FilterState, f Field) FilterState {
	out := s
	defaults := Default()

	switch f {
	case FieldPropertyType:
		out.PropertyType = defaults.PropertyType
	case FieldPriceRange:
		out.PriceRange = defaults.PriceRange
	case FieldBedrooms:
		out.Bedrooms = defaults.Bedrooms
	case FieldAmenities:
		out.Amenities = defaults.Amenities
	case FieldFurnishing:
		out.Furnishing = defaults.Furnishing
	case FieldVerifiedOnly:
		out.VerifiedOnly = defaults.VerifiedOnly
	case FieldLocation:
		out.Location = defaults.Location
	case FieldAvailableFrom:
		out.AvailableFrom = defaults.AvailableFrom
	case FieldSearchQuery:
		out.SearchQuery = defaults.SearchQuery
	}

	return out
}

// CaptureView copies the view-only fields out of a state.
func CaptureView(s FilterState) ViewState {
	return ViewState{
		SortBy:         s.SortBy,
		ViewMode:       s.ViewMode,
		ScrollPosition: s.ScrollPosition,
	}
}

// RestoreView applies a previously captured view onto a state without
// touching any filter field.
func RestoreView(s FilterState, v ViewState) FilterState {
	out := s
	out.SortBy = v.SortBy
	out.ViewMode = v.ViewMode
	out.ScrollPosition = v.ScrollPosition
	return out
}
