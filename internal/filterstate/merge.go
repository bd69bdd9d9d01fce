package filterstate

// Merge layers partial updates over base, later updates overriding earlier
// ones field-by-field. priceRange is merged key-by-key so an update carrying
// only "min" keeps the current max. The result is always re-normalized, so
// merging is associative up to normalization's idempotence.
func Merge(base FilterState, updates ...map[string]interface{}) FilterState {
	out := base

	for _, update := range updates {
		applyUpdate(&out, update)
	}

	return Normalize(out)
}

func applyUpdate(s *FilterState, raw map[string]interface{}) {
	if raw == nil {
		return
	}

	for key, value := range raw {
		switch key {
		case "propertyType":
			if v, ok := asString(value); ok {
				s.PropertyType = v
			}
		case "priceRange":
			if m, ok := value.(map[string]interface{}); ok {
				if minRaw, exists := m["min"]; exists {
					if min, err := parseInt(minRaw); err == nil {
						s.PriceRange.Min = min
					}
				}
				if maxRaw, exists := m["max"]; exists {
					if max, err := parseInt(maxRaw); err == nil {
						s.PriceRange.Max = max
					}
				}
			}
		case "bedrooms":
			s.Bedrooms, _ = parseStringArray(value)
		case "amenities":
			s.Amenities, _ = parseStringArray(value)
		case "furnishing":
			s.Furnishing, _ = parseStringArray(value)
		case "verifiedOnly":
			s.VerifiedOnly, _ = parseBool(value)
		case "location":
			if v, ok := asString(value); ok {
				s.Location = v
			}
		case "availableFrom":
			if v, ok := asString(value); ok {
				s.AvailableFrom = v
			}
		case "searchQuery":
			if v, ok := asString(value); ok {
				s.SearchQuery = v
			}
		case "sortBy":
			if v, ok := asString(value); ok {
				s.SortBy = v
			}
		case "viewMode":
			if v, ok := asString(value); ok {
				s.ViewMode = v
			}
		case "scrollPosition":
			if n, err := parseInt(value); err == nil {
				s.ScrollPosition = n
			}
		}
	}
}

// Equal reports whether two states are equivalent after normalization.
// Array-valued fields compare as sets; everything else by value.
func Equal(a, b FilterState) bool {
	na := Normalize(a)
	nb := Normalize(b)

	return na.PropertyType == nb.PropertyType &&
		na.PriceRange == nb.PriceRange &&
		sameSet(na.Bedrooms, nb.Bedrooms) &&
		sameSet(na.Amenities, nb.Amenities) &&
		sameSet(na.Furnishing, nb.Furnishing) &&
		na.VerifiedOnly == nb.VerifiedOnly &&
		na.Location == nb.Location &&
		na.AvailableFrom == nb.AvailableFrom &&
		na.SearchQuery == nb.SearchQuery &&
		na.SortBy == nb.SortBy &&
		na.ViewMode == nb.ViewMode &&
		na.ScrollPosition == nb.ScrollPosition
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}
