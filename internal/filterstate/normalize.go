package filterstate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Ayupanchal18/Renters-sub007/internal/propertytype"
)

// injectionPattern is the denylist applied to free-text fields: script tags,
// javascript: URLs, and inline event-handler attributes.
var injectionPattern = regexp.MustCompile(`(?i)(<\s*script|javascript\s*:|\bon\w+\s*=)`)

// ContainsInjection reports whether s matches the script-injection denylist.
func ContainsInjection(s string) bool {
	return injectionPattern.MatchString(s)
}

// Normalize maps an arbitrary FilterState into a valid, default-filled one.
//
// It is total and idempotent: it never fails, and Normalize(Normalize(x))
// equals Normalize(x). Out-of-range numbers are clamped, array fields are
// filtered to allowed members, strings are trimmed and length-capped, and
// free text matching the injection denylist degrades to empty.
func Normalize(s FilterState) FilterState {
	out := Default()

	if c, ok := propertytype.Normalize(s.PropertyType, propertytype.SourceFilter); ok {
		out.PropertyType = c
	}

	min := s.PriceRange.Min
	max := s.PriceRange.Max
	if max <= 0 {
		// Zero or negative max carries no information; fall back to the
		// no-filter ceiling so the zero value of PriceRange means "unset".
		max = DefaultMaxPrice
	}
	min = clampInt(min, DefaultMinPrice, DefaultMaxPrice)
	max = clampInt(max, DefaultMinPrice, DefaultMaxPrice)
	if min > max {
		min, max = max, min
	}
	out.PriceRange = PriceRange{Min: min, Max: max}

	out.Bedrooms = normalizeAllowed(s.Bedrooms, BedroomOptions)
	out.Amenities = normalizeAmenities(s.Amenities)
	out.Furnishing = normalizeAllowed(s.Furnishing, FurnishingOptions)
	out.VerifiedOnly = s.VerifiedOnly
	out.Location = sanitizeText(s.Location, MaxLocationLen)
	out.AvailableFrom = normalizeDate(s.AvailableFrom)
	out.SearchQuery = sanitizeText(s.SearchQuery, MaxSearchQueryLen)

	out.SortBy = NormalizeSort(s.SortBy)
	if viewOptions[s.ViewMode] {
		out.ViewMode = s.ViewMode
	}
	if s.ScrollPosition > 0 {
		out.ScrollPosition = s.ScrollPosition
	}

	return out
}

// NormalizeSort maps a raw sort token (including legacy aliases) to a valid
// sort order, defaulting to relevance.
func NormalizeSort(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := sortAliases[token]; ok {
		return alias
	}
	if sortOptions[token] {
		return token
	}
	return SortRelevance
}

// Parse is the "parse, don't validate" boundary for untyped input (decoded
// JSON, store action payloads). It never fails: unknown shapes degrade to
// the default state merged with whatever recognizable fields exist.
//
// The second return reports recovery: true means the input was nil, carried
// a dangerous key, or held values that had to be dropped during coercion.
func Parse(raw map[string]interface{}) (FilterState, bool) {
	if raw == nil {
		return Default(), true
	}

	out := Default()
	recovered := false

	for key, value := range raw {
		switch key {
		case "__proto__", "constructor", "prototype":
			// Prototype-pollution style keys are discarded outright.
			recovered = true
			continue
		case "propertyType":
			s, ok := asString(value)
			if !ok {
				recovered = true
				continue
			}
			out.PropertyType = s
		case "priceRange":
			pr, ok := parsePriceRange(value)
			if !ok {
				recovered = true
				continue
			}
			out.PriceRange = pr
		case "bedrooms":
			arr, clean := parseStringArray(value)
			if !clean {
				recovered = true
			}
			out.Bedrooms = arr
		case "amenities":
			arr, clean := parseStringArray(value)
			if !clean {
				recovered = true
			}
			out.Amenities = arr
		case "furnishing":
			arr, clean := parseStringArray(value)
			if !clean {
				recovered = true
			}
			out.Furnishing = arr
		case "verifiedOnly":
			b, clean := parseBool(value)
			if !clean {
				recovered = true
			}
			out.VerifiedOnly = b
		case "location":
			s, ok := asString(value)
			if !ok {
				recovered = true
				continue
			}
			out.Location = s
		case "availableFrom":
			s, ok := asString(value)
			if !ok {
				recovered = true
				continue
			}
			out.AvailableFrom = s
		case "searchQuery":
			s, ok := asString(value)
			if !ok {
				recovered = true
				continue
			}
			out.SearchQuery = s
		case "sortBy":
			s, ok := asString(value)
			if !ok {
				recovered = true
				continue
			}
			out.SortBy = s
		case "viewMode":
			s, ok := asString(value)
			if !ok {
				recovered = true
				continue
			}
			out.ViewMode = s
		case "scrollPosition":
			n, err := parseInt(value)
			if err != nil {
				recovered = true
				continue
			}
			out.ScrollPosition = n
		}
	}

	return Normalize(out), recovered
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitizeText trims, caps to max runes, and empties out anything matching
// the injection denylist.
func sanitizeText(s string, max int) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > max {
		s = strings.TrimSpace(string(runes[:max]))
	}
	if injectionPattern.MatchString(s) {
		return ""
	}
	return s
}

// normalizeAllowed keeps only allowed members, deduplicated, in the allowed
// set's own order so normalized states compare deterministically.
func normalizeAllowed(values, allowed []string) []string {
	present := make(map[string]bool, len(values))
	for _, v := range values {
		present[strings.ToLower(strings.TrimSpace(v))] = true
	}

	out := []string{}
	for _, a := range allowed {
		if present[a] {
			out = append(out, a)
		}
	}
	return out
}

// normalizeAmenities trims, lowercases, deduplicates, and caps the free-form
// amenity list.
func normalizeAmenities(values []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		a := strings.ToLower(strings.TrimSpace(v))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
		if len(out) == MaxAmenities {
			break
		}
	}
	return out
}

// normalizeDate accepts ISO dates or RFC3339 timestamps and canonicalizes to
// YYYY-MM-DD; anything else degrades to empty (unset).
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	return ""
}

// ==========================
// Tolerant coercion helpers
// ==========================

func asString(raw interface{}) (string, bool) {
	s, ok := raw.(string)
	return s, ok
}

func parsePriceRange(raw interface{}) (PriceRange, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return PriceRange{}, false
	}

	pr := PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
	if minRaw, exists := m["min"]; exists {
		if min, err := parseInt(minRaw); err == nil {
			pr.Min = min
		}
	}
	if maxRaw, exists := m["max"]; exists {
		if max, err := parseInt(maxRaw); err == nil {
			pr.Max = max
		}
	}
	return pr, true
}

// parseStringArray accepts a comma-joined string, []interface{}, or
// []string, always returning a non-nil deduplicated slice. The second
// return is false when values had to be dropped: an unusable top-level
// type, or non-string elements inside a mixed array. Explicit null counts
// as an empty list, not a drop.
func parseStringArray(raw interface{}) ([]string, bool) {
	result := []string{}

	if raw == nil {
		return result, true
	}

	seen := make(map[string]bool)

	appendToken := func(s string) {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" && !seen[trimmed] {
			result = append(result, trimmed)
			seen[trimmed] = true
		}
	}

	clean := true
	switch v := raw.(type) {
	case string:
		if v != "" {
			for _, s := range strings.Split(v, ",") {
				appendToken(s)
			}
		}
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				clean = false
				continue
			}
			appendToken(s)
		}
	case []string:
		for _, s := range v {
			appendToken(s)
		}
	default:
		clean = false
	}

	return result, clean
}

var nonDigit = regexp.MustCompile(`[^\d]+`)

func parseInt(raw interface{}) (int, error) {
	if raw == nil {
		return 0, strconv.ErrSyntax
	}

	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, strconv.ErrSyntax
		}
		return int(v), nil

	case int:
		return v, nil

	case int64:
		return int(v), nil

	case string:
		// Strip currency noise: "₹ 50,000.00" should become 50000.
		cleaned := strings.ReplaceAll(v, " ", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if i := strings.Index(cleaned, "."); i >= 0 {
			cleaned = cleaned[:i]
		}
		neg := strings.HasPrefix(cleaned, "-")
		cleaned = nonDigit.ReplaceAllString(cleaned, "")
		if cleaned == "" {
			return 0, strconv.ErrSyntax
		}
		num, err := strconv.Atoi(cleaned)
		if err != nil {
			return 0, err
		}
		if neg {
			num = -num
		}
		return num, nil

	default:
		return 0, strconv.ErrSyntax
	}
}

// parseBool applies truthiness coercion for boolean filter fields. The
// second return is false when the value's type carries no truthiness at
// all (arrays, objects); explicit null coerces to a clean false.
func parseBool(raw interface{}) (bool, bool) {
	switch v := raw.(type) {
	case nil:
		return false, true
	case bool:
		return v, true
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1" || s == "yes", true
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	default:
		return false, false
	}
}
