package listings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
)

const candidatesCacheKey = "listings:candidates"

// CachedSource wraps another source with a short-lived Redis cache of the
// full candidate set. Cache failures fall through to the wrapped source so a
// Redis outage never takes search down.
type CachedSource struct {
	inner  Source
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(inner Source, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "listings-cache"}),
	}
}

func (s *CachedSource) Fetch(ctx context.Context) ([]Listing, error) {
	raw, err := s.client.Get(ctx, candidatesCacheKey).Result()
	if err == nil {
		var items []Listing
		if jsonErr := json.Unmarshal([]byte(raw), &items); jsonErr == nil {
			return items, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("candidate cache read failed", map[string]interface{}{"error": err.Error()})
	}

	items, err := s.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(items); jsonErr == nil {
		if setErr := s.client.Set(ctx, candidatesCacheKey, encoded, s.ttl).Err(); setErr != nil {
			s.logger.Warn("candidate cache write failed", map[string]interface{}{"error": setErr.Error()})
		}
	}

	return items, nil
}

// Invalidate drops the cached candidate set.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, candidatesCacheKey).Err()
}
