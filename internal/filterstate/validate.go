package filterstate

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ayupanchal18/Renters-sub007/internal/propertytype"
)

// ValidationResult reports per-field problems without blocking callers:
// whether to reject an action or silently fall back to Normalized is the
// caller's decision.
type ValidationResult struct {
	IsValid    bool              `json:"isValid"`
	Errors     map[string]string `json:"errors"`
	Warnings   []string          `json:"warnings,omitempty"`
	Normalized FilterState       `json:"normalized"`
}

// Validate checks each field independently — one entry per offending field,
// no short-circuiting — and always includes the normalized state.
func Validate(s FilterState) ValidationResult {
	errs := map[string]string{}
	warnings := []string{}

	if _, ok := propertytype.Normalize(s.PropertyType, propertytype.SourceFilter); !ok {
		errs[FieldPropertyType.String()] = fmt.Sprintf("unknown property type %q", s.PropertyType)
	}

	if s.PriceRange.Min < DefaultMinPrice {
		errs[FieldPriceRange.String()] = fmt.Sprintf("min price %d is below %d", s.PriceRange.Min, DefaultMinPrice)
	} else if s.PriceRange.Max > DefaultMaxPrice {
		errs[FieldPriceRange.String()] = fmt.Sprintf("max price %d exceeds %d", s.PriceRange.Max, DefaultMaxPrice)
	} else if s.PriceRange.Max > 0 && s.PriceRange.Min > s.PriceRange.Max {
		errs[FieldPriceRange.String()] = fmt.Sprintf("min price %d exceeds max price %d", s.PriceRange.Min, s.PriceRange.Max)
	}

	if bad := outsideAllowed(s.Bedrooms, BedroomOptions); len(bad) > 0 {
		errs[FieldBedrooms.String()] = fmt.Sprintf("invalid bedroom values: %s", strings.Join(bad, ", "))
	}

	if len(s.Amenities) > MaxAmenities {
		errs[FieldAmenities.String()] = fmt.Sprintf("at most %d amenities allowed, got %d", MaxAmenities, len(s.Amenities))
	}

	if bad := outsideAllowed(s.Furnishing, FurnishingOptions); len(bad) > 0 {
		errs[FieldFurnishing.String()] = fmt.Sprintf("invalid furnishing values: %s", strings.Join(bad, ", "))
	}

	if len([]rune(s.Location)) > MaxLocationLen {
		errs[FieldLocation.String()] = fmt.Sprintf("location exceeds %d characters", MaxLocationLen)
	} else if ContainsInjection(s.Location) {
		errs[FieldLocation.String()] = "location contains disallowed markup"
	}

	if s.AvailableFrom != "" {
		if _, err := time.Parse("2006-01-02", s.AvailableFrom); err != nil {
			if _, err := time.Parse(time.RFC3339, s.AvailableFrom); err != nil {
				errs[FieldAvailableFrom.String()] = fmt.Sprintf("%q is not an ISO date", s.AvailableFrom)
			}
		}
	}

	if len([]rune(s.SearchQuery)) > MaxSearchQueryLen {
		errs[FieldSearchQuery.String()] = fmt.Sprintf("search query exceeds %d characters", MaxSearchQueryLen)
	} else if ContainsInjection(s.SearchQuery) {
		errs[FieldSearchQuery.String()] = "search query contains disallowed markup"
	}

	sortToken := strings.ToLower(strings.TrimSpace(s.SortBy))
	if _, aliased := sortAliases[sortToken]; aliased {
		warnings = append(warnings, fmt.Sprintf("sort value %q is a legacy alias for %q", s.SortBy, sortAliases[sortToken]))
	} else if s.SortBy != "" && !sortOptions[sortToken] {
		errs["sortBy"] = fmt.Sprintf("unknown sort order %q", s.SortBy)
	}

	if s.ViewMode != "" && !viewOptions[s.ViewMode] {
		errs["viewMode"] = fmt.Sprintf("unknown view mode %q", s.ViewMode)
	}

	if s.ScrollPosition < 0 {
		warnings = append(warnings, "negative scroll position reset to 0")
	}

	return ValidationResult{
		IsValid:    len(errs) == 0,
		Errors:     errs,
		Warnings:   warnings,
		Normalized: Normalize(s),
	}
}

// outsideAllowed returns the members of values absent from allowed,
// compared case-insensitively after trimming.
func outsideAllowed(values, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}

	bad := []string{}
	for _, v := range values {
		if !allowedSet[strings.ToLower(strings.TrimSpace(v))] {
			bad = append(bad, v)
		}
	}
	return bad
}
