package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

type cachedRoute struct {
	DistanceKm      float64      `json:"distance_km"`
	DurationMinutes float64      `json:"duration_minutes"`
	Path            [][2]float64 `json:"path"`
}

// RedisRouteCache stores routes as JSON under a key derived from the
// coordinate pair, expiring after TTL.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl, Prefix: "route:"}
}

// Coordinates are keyed at 6 decimals (~0.1 m), well below geocoder precision.
func (r *RedisRouteCache) key(start, end domain.Coordinates) string {
	return fmt.Sprintf("%s%.6f,%.6f;%.6f,%.6f", r.Prefix, start.Lon, start.Lat, end.Lon, end.Lat)
}

func (r *RedisRouteCache) Get(ctx context.Context, start, end domain.Coordinates) (_ *domain.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}

	raw, err := r.Client.Get(ctx, r.key(start, end)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode: %w", err)
	}

	path := make([]domain.Coordinates, 0, len(cr.Path))
	for _, p := range cr.Path {
		path = append(path, domain.Coordinates{Lat: p[0], Lon: p[1]})
	}

	return &domain.RouteResult{
		DistanceKm:      cr.DistanceKm,
		DurationMinutes: cr.DurationMinutes,
		Path:            path,
	}, true, nil
}

func (r *RedisRouteCache) Put(ctx context.Context, start, end domain.Coordinates, route *domain.RouteResult) error {
	if r.Client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if route == nil {
		return errors.New("insert route cache: route is nil")
	}

	cr := cachedRoute{
		DistanceKm:      route.DistanceKm,
		DurationMinutes: route.DurationMinutes,
		Path:            make([][2]float64, 0, len(route.Path)),
	}
	for _, c := range route.Path {
		cr.Path = append(cr.Path, [2]float64{c.Lat, c.Lon})
	}

	payload, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("insert route cache: encode: %w", err)
	}

	if err := r.Client.Set(ctx, r.key(start, end), payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}
	return nil
}
