package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/errors"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/filterstate"
)

// ElasticSource reads candidates from an Elasticsearch index. Search pushes
// the cheap predicates (terms, ranges) into the index as a pre-filter; the
// engine still re-applies the full pipeline over whatever comes back, so the
// index query only ever narrows, never decides.
type ElasticSource struct {
	client *elasticsearch.Client
	index  string
	limit  int
	logger logger.Logger
}

func NewElasticSource(client *elasticsearch.Client, index string, candidateLimit int, log logger.Logger) *ElasticSource {
	if candidateLimit <= 0 {
		candidateLimit = 1000
	}
	return &ElasticSource{client: client, index: index, limit: candidateLimit, logger: log}
}

func (s *ElasticSource) Fetch(ctx context.Context) ([]Listing, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	}
	return s.execute(ctx, body)
}

func (s *ElasticSource) Search(ctx context.Context, filters filterstate.FilterState, query string) ([]Listing, error) {
	return s.execute(ctx, BuildQuery(filters, query))
}

// BuildQuery translates filter state into an Elasticsearch bool query.
// Free-text search goes into must as a multi_match; structured filters go
// into the filter context so they don't affect scoring.
//
// Only predicates with exact index semantics (terms, ranges) are pushed
// down. Substring-class predicates (location, amenities, furnishing) stay
// engine-only: analyzed-token matching would pre-exclude listings the
// pipeline's case-insensitive substring matching keeps.
func BuildQuery(filters filterstate.FilterState, query string) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q := strings.TrimSpace(query); q != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q,
				"fields": []string{"title^3", "description^2", "category", "propertyType"},
				"type":   "best_fields",
			},
		})
	}

	if filters.PropertyType != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"propertyType": filters.PropertyType},
		})
	}

	if !filters.PriceRange.IsDefault() {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"monthlyRent": map[string]interface{}{
					"gte": filters.PriceRange.Min,
					"lte": filters.PriceRange.Max,
				},
			},
		})
	}

	if len(filters.Bedrooms) > 0 {
		filterClauses = append(filterClauses, bedroomsClause(filters.Bedrooms))
	}

	if filters.VerifiedOnly {
		// Verification lives under two field names; either one counts.
		filterClauses = append(filterClauses, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"verified": true}},
					map[string]interface{}{"term": map[string]interface{}{"isVerified": true}},
				},
				"minimum_should_match": 1,
			},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

// bedroomsClause ORs the selected bedroom buckets; "5+" is an open range.
func bedroomsClause(buckets []string) map[string]interface{} {
	should := []interface{}{}
	for _, b := range buckets {
		if b == "5+" {
			should = append(should, map[string]interface{}{
				"range": map[string]interface{}{"bedrooms": map[string]interface{}{"gte": 5}},
			})
			continue
		}
		if n, err := strconv.Atoi(b); err == nil {
			should = append(should, map[string]interface{}{
				"term": map[string]interface{}{"bedrooms": n},
			})
		}
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"should":               should,
			"minimum_should_match": 1,
		},
	}
}

func (s *ElasticSource) execute(ctx context.Context, body map[string]interface{}) ([]Listing, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError("elasticsearch", err)
	}

	size := s.limit
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(raw)),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError("elasticsearch", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError("elasticsearch", fmt.Errorf("%s", res.String()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Listing `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError("elasticsearch", err)
	}

	out := make([]Listing, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}
