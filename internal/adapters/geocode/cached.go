package geocode

import (
	"context"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"map-routing-service/internal/ports"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocoding_cache_hits",
		Help: "Number of place names resolved through the cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocoding_cache_misses",
		Help: "Number of place names not found in the cache",
	})
)

// Cached wraps a Geocoder with a persistent cache. Only successful lookups
// are stored; misses always reach the delegate.
type Cached struct {
	delegate ports.Geocoder
	cache    ports.GeocodeCache
}

func NewCached(delegate ports.Geocoder, cache ports.GeocodeCache) *Cached {
	return &Cached{delegate: delegate, cache: cache}
}

func (c *Cached) Geocode(ctx context.Context, name string) (domain.Coordinates, bool, error) {
	key := CacheKey(name)
	logger := obs.Logger(ctx)

	if key != "" {
		coords, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("geocode cache read failed", zap.String("name", key), zap.Error(err))
		} else if ok {
			cacheHits.Inc()
			return coords, true, nil
		}
	}
	cacheMisses.Inc()

	coords, found, err := c.delegate.Geocode(ctx, name)
	if err != nil || !found {
		return coords, found, err
	}

	if key != "" {
		if err := c.cache.Put(ctx, key, coords); err != nil {
			logger.Warn("geocode cache write failed", zap.String("name", key), zap.Error(err))
		}
	}

	return coords, true, nil
}

// CacheKey is the normalized form place names are cached under.
func CacheKey(name string) string {
	return strings.ToLower(normalize(name))
}
