// Package listings defines the candidate listing record consumed by the
// combination engine, plus the sources that supply candidates.
package listings

import "time"

// Listing is the candidate record the filter pipeline runs over. The search
// core treats it as read-only input and does not own or validate its
// business content; schema validation happens only at document-ingest
// boundaries (see MemorySource).
type Listing struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	PropertyType string   `json:"propertyType"`
	Description  string   `json:"description"`
	City         string   `json:"city"`
	Address      string   `json:"address"`
	Location     string   `json:"location"`
	MonthlyRent  int      `json:"monthlyRent"`
	Price        int      `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Amenities    []string `json:"amenities"`
	Furnishing   string   `json:"furnishing"`
	Verified     bool     `json:"verified"`
	IsVerified   bool     `json:"isVerified"`
	// AvailableFrom is an ISO date (YYYY-MM-DD); empty means always available.
	AvailableFrom string    `json:"availableFrom,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Featured      bool      `json:"featured"`
}

// RentValue returns the monthly rent, falling back to Price, defaulting to 0
// so unpriced listings still participate in range comparisons.
func (l Listing) RentValue() int {
	if l.MonthlyRent > 0 {
		return l.MonthlyRent
	}
	if l.Price > 0 {
		return l.Price
	}
	return 0
}

// VerifiedFlag reports verification under either legacy field name.
func (l Listing) VerifiedFlag() bool {
	return l.Verified || l.IsVerified
}
