// Package urlquery maps filter state to and from a URL query string so a
// search session is bookmarkable and shareable. The mapping is a loss-free
// round trip modulo normalization: only non-default values are written, and
// defaults are implicit on decode.
package urlquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
)

const (
	paramType          = "type"
	paramMinPrice      = "minPrice"
	paramMaxPrice      = "maxPrice"
	paramBedrooms      = "bedrooms"
	paramAmenities     = "amenities"
	paramFurnishing    = "furnishing"
	paramVerified      = "verified"
	paramLocation      = "location"
	paramAvailableFrom = "availableFrom"
	paramSort          = "sort"
	paramView          = "view"
)

// Encode serializes state into a query string, omitting every field still at
// its default so URLs stay short. The default state encodes to "".
func Encode(state filterstate.FilterState) string {
	s := filterstate.Normalize(state)
	v := url.Values{}

	if s.PropertyType != "" {
		v.Set(paramType, s.PropertyType)
	}
	if s.PriceRange.Min != filterstate.DefaultMinPrice {
		v.Set(paramMinPrice, strconv.Itoa(s.PriceRange.Min))
	}
	if s.PriceRange.Max != filterstate.DefaultMaxPrice {
		v.Set(paramMaxPrice, strconv.Itoa(s.PriceRange.Max))
	}
	if len(s.Bedrooms) > 0 {
		v.Set(paramBedrooms, strings.Join(s.Bedrooms, ","))
	}
	if len(s.Amenities) > 0 {
		v.Set(paramAmenities, strings.Join(s.Amenities, ","))
	}
	if len(s.Furnishing) > 0 {
		v.Set(paramFurnishing, strings.Join(s.Furnishing, ","))
	}
	if s.VerifiedOnly {
		v.Set(paramVerified, "true")
	}
	if s.Location != "" {
		v.Set(paramLocation, s.Location)
	}
	if s.AvailableFrom != "" {
		v.Set(paramAvailableFrom, s.AvailableFrom)
	}
	if s.SortBy != filterstate.SortRelevance {
		v.Set(paramSort, s.SortBy)
	}
	if s.ViewMode != filterstate.ViewGrid {
		v.Set(paramView, s.ViewMode)
	}

	return v.Encode()
}

// Decode parses a query string back into a FilterState. Missing parameters
// keep their defaults; malformed values degrade instead of failing, so any
// input produces a usable state. An empty query decodes to the default state.
func Decode(query string) filterstate.FilterState {
	query = strings.TrimPrefix(strings.TrimSpace(query), "?")

	s := filterstate.Default()

	// ParseQuery keeps whatever parsed before the first malformed pair;
	// decode works with that rather than rejecting the whole URL.
	v, _ := url.ParseQuery(query)

	if raw := v.Get(paramType); raw != "" {
		s.PropertyType = raw
	}
	if raw := v.Get(paramMinPrice); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			s.PriceRange.Min = n
		}
	}
	if raw := v.Get(paramMaxPrice); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			s.PriceRange.Max = n
		}
	}
	if raw := v.Get(paramBedrooms); raw != "" {
		s.Bedrooms = splitList(raw)
	}
	if raw := v.Get(paramAmenities); raw != "" {
		s.Amenities = splitList(raw)
	}
	if raw := v.Get(paramFurnishing); raw != "" {
		s.Furnishing = splitList(raw)
	}
	if raw := v.Get(paramVerified); raw != "" {
		s.VerifiedOnly = raw == "true" || raw == "1"
	}
	if raw := v.Get(paramLocation); raw != "" {
		s.Location = raw
	}
	if raw := v.Get(paramAvailableFrom); raw != "" {
		s.AvailableFrom = raw
	}
	if raw := v.Get(paramSort); raw != "" {
		s.SortBy = raw
	}
	if raw := v.Get(paramView); raw != "" {
		s.ViewMode = raw
	}

	return filterstate.Normalize(s)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
