package propertytype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		source     Source
		expected   string
		expectedOK bool
	}{
		// Homepage chips carry display labels, often plural.
		{name: "homepage apartments", raw: "Apartments", source: SourceHomepage, expected: Apartment, expectedOK: true},
		{name: "homepage flats", raw: "Flats", source: SourceHomepage, expected: Apartment, expectedOK: true},
		{name: "homepage pg and hostels", raw: "PG & Hostels", source: SourceHomepage, expected: PayingGuest, expectedOK: true},
		{name: "homepage already canonical", raw: "villa", source: SourceHomepage, expected: Villa, expectedOK: true},

		// Filter panel tokens.
		{name: "filter apartment", raw: "apartment", source: SourceFilter, expected: Apartment, expectedOK: true},
		{name: "filter flat alias", raw: "flat", source: SourceFilter, expected: Apartment, expectedOK: true},
		{name: "filter legacy paying-guest", raw: "paying-guest", source: SourceFilter, expected: PayingGuest, expectedOK: true},
		{name: "filter studio-apartment", raw: "Studio-Apartment", source: SourceFilter, expected: Studio, expectedOK: true},

		// Backend accepts canonical only.
		{name: "backend canonical", raw: "pg", source: SourceBackend, expected: PayingGuest, expectedOK: true},
		{name: "backend rejects display label", raw: "Apartments", source: SourceBackend, expected: "", expectedOK: false},

		// Whitespace and case are irrelevant everywhere.
		{name: "trims and lowercases", raw: "  HOUSE  ", source: SourceFilter, expected: House, expectedOK: true},

		// Empty means no constraint.
		{name: "empty is ok", raw: "", source: SourceFilter, expected: "", expectedOK: true},
		{name: "whitespace only is ok", raw: "   ", source: SourceHomepage, expected: "", expectedOK: true},

		// Unknown tokens are invalid, not errors.
		{name: "unknown token", raw: "castle", source: SourceFilter, expected: "", expectedOK: false},
		{name: "homepage unknown", raw: "mansion", source: SourceHomepage, expected: "", expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, tt.source)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// Canonical output fed back through the backend source is a fixed point.
	for _, token := range Canonical() {
		got, ok := Normalize(token, SourceBackend)
		assert.True(t, ok)
		assert.Equal(t, token, got)
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical(Apartment))
	assert.True(t, IsCanonical(PayingGuest))
	assert.False(t, IsCanonical("Apartments"))
	assert.False(t, IsCanonical(""))
}
