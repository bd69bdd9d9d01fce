package location

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
)

const geocodeCachePrefix = "geocode:"

// Cache stores resolved locations in Redis keyed by rounded coordinates, so
// nearby lookups within ~100m reuse the same entry. All methods degrade to
// cache misses on Redis errors.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "geocode-cache"}),
	}
}

func cacheKey(coords Coordinates) string {
	return fmt.Sprintf("%s%.3f:%.3f", geocodeCachePrefix, coords.Lat, coords.Lng)
}

func (c *Cache) Get(ctx context.Context, coords Coordinates) (Location, bool) {
	raw, err := c.client.Get(ctx, cacheKey(coords)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("geocode cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return Location{}, false
	}

	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return Location{}, false
	}
	return loc, true
}

func (c *Cache) Put(ctx context.Context, coords Coordinates, loc Location) {
	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(coords), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("geocode cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// Reset removes all cached geocode entries.
func (c *Cache) Reset(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, geocodeCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
