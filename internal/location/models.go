// Package location standardizes free-text and geolocation-derived location
// data into one canonical shape, and runs the reverse-geocoding fallback
// chain for position lookups.
package location

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is the canonical normalized location shape. Formatted is always
// derived from City and State and stays consistent after normalization.
type Location struct {
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Formatted   string      `json:"formatted"`
	Coordinates Coordinates `json:"coordinates"`
}

// Position is a raw device/IP position before reverse geocoding.
type Position struct {
	Coordinates Coordinates `json:"coordinates"`
	Accuracy    float64     `json:"accuracy,omitempty"`
}

// ProviderFields is the provider-independent subset each reverse-geocoding
// adapter extracts from its own response shape.
type ProviderFields struct {
	City    string
	State   string
	Country string
}
