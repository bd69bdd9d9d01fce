// Package propertytype maps the property-type vocabularies used by the
// different UI surfaces into the single canonical set stored by the backend.
package propertytype

import "strings"

// Source identifies which surface a raw property-type token came from.
// Each surface historically grew its own vocabulary for the same concepts.
type Source int

const (
	SourceHomepage Source = iota
	SourceFilter
	SourceBackend
)

// Canonical backend vocabulary.
const (
	Apartment   = "apartment"
	House       = "house"
	Villa       = "villa"
	PayingGuest = "pg"
	Hostel      = "hostel"
	Studio      = "studio"
	Room        = "room"
	Commercial  = "commercial"
)

var canonical = map[string]bool{
	Apartment:   true,
	House:       true,
	Villa:       true,
	PayingGuest: true,
	Hostel:      true,
	Studio:      true,
	Room:        true,
	Commercial:  true,
}

// Homepage quick-pick chips use display labels.
var homepageTokens = map[string]string{
	"apartments":   Apartment,
	"flats":        Apartment,
	"houses":       House,
	"villas":       Villa,
	"pg & hostels": PayingGuest,
	"pg":           PayingGuest,
	"hostels":      Hostel,
	"studios":      Studio,
	"rooms":        Room,
	"commercial":   Commercial,
}

// The filter panel uses singular lowercase tokens plus a few legacy aliases.
var filterTokens = map[string]string{
	"apartment":        Apartment,
	"flat":             Apartment,
	"house":            House,
	"independent":      House,
	"villa":            Villa,
	"pg":               PayingGuest,
	"paying-guest":     PayingGuest,
	"hostel":           Hostel,
	"studio":           Studio,
	"studio-apartment": Studio,
	"room":             Room,
	"single-room":      Room,
	"commercial":       Commercial,
}

// Normalize maps a raw surface token into the canonical vocabulary.
//
// An empty raw value means "no constraint" and normalizes to ("", true).
// A non-empty value with no known mapping returns ("", false) so callers can
// treat it as an invalid selection rather than an error.
func Normalize(raw string, source Source) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", true
	}

	switch source {
	case SourceHomepage:
		if c, ok := homepageTokens[token]; ok {
			return c, true
		}
		// Chips occasionally carry already-canonical values.
		if canonical[token] {
			return token, true
		}
	case SourceFilter:
		if c, ok := filterTokens[token]; ok {
			return c, true
		}
	case SourceBackend:
		if canonical[token] {
			return token, true
		}
	}

	return "", false
}

// IsCanonical reports whether token belongs to the backend vocabulary.
func IsCanonical(token string) bool {
	return canonical[token]
}

// Canonical returns the canonical vocabulary in stable order.
func Canonical() []string {
	return []string{Apartment, House, Villa, PayingGuest, Hostel, Studio, Room, Commercial}
}
