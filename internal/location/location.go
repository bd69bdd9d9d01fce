package location

import (
	"fmt"
	"strings"
)

// FromText builds a Location from free text, honoring the "City, State"
// comma-split convention.
func FromText(text string) Location {
	city, state := splitCityState(text)
	return Normalize(Location{City: city, State: state})
}

// Normalize trims every field and re-derives Formatted from City and State,
// so partially filled locations always come out consistent.
func Normalize(loc Location) Location {
	out := loc
	out.City = strings.TrimSpace(out.City)
	out.State = strings.TrimSpace(out.State)
	out.Country = strings.TrimSpace(out.Country)
	out.Formatted = formatLocation(out.City, out.State)
	return out
}

// Standardize adapts per-provider fields into the canonical Location shape.
// It returns nil when no usable city was found, which moves the
// reverse-geocoding chain on to the next provider.
func Standardize(fields ProviderFields, coords Coordinates) *Location {
	city := strings.TrimSpace(fields.City)
	if city == "" {
		return nil
	}

	loc := Location{
		City:        city,
		State:       strings.TrimSpace(fields.State),
		Country:     strings.TrimSpace(fields.Country),
		Coordinates: coords,
	}
	loc.Formatted = formatLocation(loc.City, loc.State)
	return &loc
}

func formatLocation(city, state string) string {
	if city == "" {
		return ""
	}
	if state == "" {
		return city
	}
	return fmt.Sprintf("%s, %s", city, state)
}

func splitCityState(text string) (city, state string) {
	parts := strings.SplitN(text, ",", 2)
	city = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		state = strings.TrimSpace(parts[1])
	}
	return city, state
}
