package location

import (
	"context"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/errors"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/metrics"
)

// Provider is one reverse-geocoding service. Each implementation owns the
// mapping from its provider-specific response shape into Location.
type Provider interface {
	Name() string
	// ReverseGeocode returns the standardized location for a point, or an
	// error when the service failed or returned no usable city.
	ReverseGeocode(ctx context.Context, coords Coordinates) (*Location, error)
}

// Resolver runs the reverse-geocoding fallback chain: providers are tried in
// order, each failure is individually non-fatal, and only when every
// provider has failed does the resolver reject — with a message telling the
// user to enter their location manually. Raw coordinates are never returned
// as a location.
type Resolver struct {
	providers []Provider
	cache     *Cache // nil disables caching
	logger    logger.Logger
}

func NewResolver(providers []Provider, cache *Cache, log logger.Logger) *Resolver {
	return &Resolver{
		providers: providers,
		cache:     cache,
		logger:    log.WithFields(map[string]interface{}{"component": "geocode-resolver"}),
	}
}

func (r *Resolver) Resolve(ctx context.Context, coords Coordinates) (Location, error) {
	if r.cache != nil {
		if loc, ok := r.cache.Get(ctx, coords); ok {
			return loc, nil
		}
	}

	tried := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		tried = append(tried, p.Name())

		loc, err := p.ReverseGeocode(ctx, coords)
		if err != nil {
			metrics.GeocodeRequests.WithLabelValues(p.Name(), "error").Inc()
			r.logger.Warn("reverse geocode failed, trying next provider", map[string]interface{}{
				"provider": p.Name(),
				"error":    err.Error(),
			})
			continue
		}

		metrics.GeocodeRequests.WithLabelValues(p.Name(), "ok").Inc()
		if r.cache != nil {
			r.cache.Put(ctx, coords, *loc)
		}
		return *loc, nil
	}

	return Location{}, errors.NewGeocodeFailedError(tried)
}
