package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/errors"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
)

// listingSchema guards the document-ingest boundary: documents loaded from a
// file or seeded at startup must at least look like listings before the
// pipeline runs over them. Fields stay permissive; only shapes are enforced.
const listingSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title"],
		"properties": {
			"id":            {"type": "string", "minLength": 1},
			"title":         {"type": "string"},
			"category":      {"type": "string"},
			"propertyType":  {"type": "string"},
			"description":   {"type": "string"},
			"city":          {"type": "string"},
			"address":       {"type": "string"},
			"location":      {"type": "string"},
			"monthlyRent":   {"type": "integer", "minimum": 0},
			"price":         {"type": "integer", "minimum": 0},
			"bedrooms":      {"type": "integer", "minimum": 0},
			"amenities":     {"type": "array", "items": {"type": "string"}},
			"furnishing":    {"type": "string"},
			"verified":      {"type": "boolean"},
			"isVerified":    {"type": "boolean"},
			"availableFrom": {"type": "string"},
			"featured":      {"type": "boolean"}
		}
	}
}`

var compiledListingSchema = gojsonschema.NewStringLoader(listingSchema)

// ParseListings validates raw JSON against the listing schema and decodes it.
func ParseListings(raw []byte) ([]Listing, error) {
	result, err := gojsonschema.Validate(compiledListingSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.NewListingSchemaInvalidError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.NewListingSchemaInvalidError(strings.Join(msgs, "; "))
	}

	var out []Listing
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.NewListingSchemaInvalidError(err.Error())
	}
	return out, nil
}

// MemorySource serves a fixed candidate set, either seeded directly or loaded
// from a JSON file at startup. It is the default source for local development
// and tests.
type MemorySource struct {
	items  []Listing
	logger logger.Logger
}

func NewMemorySource(items []Listing, log logger.Logger) *MemorySource {
	return &MemorySource{items: items, logger: log}
}

// NewMemorySourceFromFile loads and schema-validates a listings JSON file.
func NewMemorySourceFromFile(path string, log logger.Logger) (*MemorySource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}
	items, err := ParseListings(raw)
	if err != nil {
		return nil, err
	}
	log.Info("listings loaded from file", map[string]interface{}{
		"path":  path,
		"count": len(items),
	})
	return &MemorySource{items: items, logger: log}, nil
}

func (s *MemorySource) Fetch(ctx context.Context) ([]Listing, error) {
	out := make([]Listing, len(s.items))
	copy(out, s.items)
	return out, nil
}
