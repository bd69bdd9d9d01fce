// Package filterstate holds the canonical search/filter/view state for one
// search session: the data contract every other search component consumes.
//
// Filter fields narrow the candidate set; view fields (SortBy, ViewMode,
// ScrollPosition) affect only presentation and survive filter clearing.
package filterstate

// Price bounds and string caps for normalization and validation.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100000

	MaxAmenities      = 10
	MaxLocationLen    = 100
	MaxSearchQueryLen = 200
)

// Sort orders. "relevance" is the UI default; without a scoring backend it
// falls back to newest-first inside the engine.
const (
	SortRelevance     = "relevance"
	SortRentLowToHigh = "rent_low_to_high"
	SortRentHighToLow = "rent_high_to_low"
	SortNewest        = "newest"
	SortOldest        = "oldest"
	SortFeatured      = "featured"
)

// View modes.
const (
	ViewGrid = "grid"
	ViewList = "list"
	ViewMap  = "map"
)

// Bedroom buckets; "5+" matches any count of five or more.
var BedroomOptions = []string{"1", "2", "3", "4", "5+"}

// Furnishing options.
var FurnishingOptions = []string{"furnished", "semi-furnished", "unfurnished"}

var sortOptions = map[string]bool{
	SortRelevance:     true,
	SortRentLowToHigh: true,
	SortRentHighToLow: true,
	SortNewest:        true,
	SortOldest:        true,
	SortFeatured:      true,
}

// Legacy sort aliases still arriving from older clients.
var sortAliases = map[string]string{
	"price-low":  SortRentLowToHigh,
	"price-high": SortRentHighToLow,
}

var viewOptions = map[string]bool{
	ViewGrid: true,
	ViewList: true,
	ViewMap:  true,
}

// PriceRange is an inclusive monthly-rent band. Min == DefaultMinPrice and
// Max == DefaultMaxPrice together mean "no price filter".
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// IsDefault reports whether the range is the no-filter sentinel.
func (p PriceRange) IsDefault() bool {
	return p.Min == DefaultMinPrice && p.Max == DefaultMaxPrice
}

// FilterState is the full set of search/filter/view fields held by the
// client for one search session.
type FilterState struct {
	PropertyType  string     `json:"propertyType"`
	PriceRange    PriceRange `json:"priceRange"`
	Bedrooms      []string   `json:"bedrooms"`
	Amenities     []string   `json:"amenities"`
	Furnishing    []string   `json:"furnishing"`
	VerifiedOnly  bool       `json:"verifiedOnly"`
	Location      string     `json:"location"`
	AvailableFrom string     `json:"availableFrom,omitempty"` // ISO date, empty = unset
	SearchQuery   string     `json:"searchQuery"`

	// View state — never treated as a filter predicate.
	SortBy         string `json:"sortBy"`
	ViewMode       string `json:"viewMode"`
	ScrollPosition int    `json:"scrollPosition"`
}

// Default returns the initial FilterState created at store initialization.
func Default() FilterState {
	return FilterState{
		PropertyType:   "",
		PriceRange:     PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		Bedrooms:       []string{},
		Amenities:      []string{},
		Furnishing:     []string{},
		VerifiedOnly:   false,
		Location:       "",
		AvailableFrom:  "",
		SearchQuery:    "",
		SortBy:         SortRelevance,
		ViewMode:       ViewGrid,
		ScrollPosition: 0,
	}
}

// Field identifies a single filter field for targeted clearing. The set is
// closed so that clearing logic stays an exhaustive switch.
type Field int

const (
	FieldPropertyType Field = iota
	FieldPriceRange
	FieldBedrooms
	FieldAmenities
	FieldFurnishing
	FieldVerifiedOnly
	FieldLocation
	FieldAvailableFrom
	FieldSearchQuery
)

func (f Field) String() string {
	switch f {
	case FieldPropertyType:
		return "propertyType"
	case FieldPriceRange:
		return "priceRange"
	case FieldBedrooms:
		return "bedrooms"
	case FieldAmenities:
		return "amenities"
	case FieldFurnishing:
		return "furnishing"
	case FieldVerifiedOnly:
		return "verifiedOnly"
	case FieldLocation:
		return "location"
	case FieldAvailableFrom:
		return "availableFrom"
	case FieldSearchQuery:
		return "searchQuery"
	}
	return "unknown"
}

// Fields lists every filter field once, for callers that iterate.
func Fields() []Field {
	return []Field{
		FieldPropertyType,
		FieldPriceRange,
		FieldBedrooms,
		FieldAmenities,
		FieldFurnishing,
		FieldVerifiedOnly,
		FieldLocation,
		FieldAvailableFrom,
		FieldSearchQuery,
	}
}
