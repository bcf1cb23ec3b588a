// Package app builds the concrete adapters shared by the binaries.
package app

import (
	"database/sql"
	"fmt"
	"map-routing-service/internal/adapters/cache"
	"map-routing-service/internal/adapters/geocode"
	"map-routing-service/internal/adapters/ors"
	"map-routing-service/internal/adapters/repositories"
	"map-routing-service/internal/adapters/routing"
	"map-routing-service/internal/adapters/upstream"
	"map-routing-service/internal/config"
	"map-routing-service/internal/platform/db"
	"map-routing-service/internal/ports"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Closer releases resources opened while wiring.
type Closer func()

func newORS(cfg *config.Config) (*ors.Provider, error) {
	return ors.NewProvider(ors.Options{
		APIKey:      cfg.ORSAPIKey,
		BaseURL:     cfg.ORSURL,
		Profile:     cfg.ORSProfile,
		Country:     cfg.ORSCountry,
		Timeout:     cfg.HTTPTimeout,
		MaxAttempts: cfg.HTTPMaxAttempts,
	})
}

func baseGeocoder(cfg *config.Config) (ports.Geocoder, error) {
	if cfg.Geocoder == "ors" {
		return newORS(cfg)
	}
	client := upstream.NewClient("nominatim", cfg.HTTPTimeout,
		upstream.WithUserAgent(cfg.NominatimUserAgent),
		upstream.WithMaxAttempts(cfg.HTTPMaxAttempts),
	)
	return geocode.NewNominatimGeocoder(cfg.NominatimURL, client)
}

func baseRouteProvider(cfg *config.Config) (ports.RouteProvider, error) {
	if cfg.Router == "ors" {
		return newORS(cfg)
	}
	client := upstream.NewClient("osrm", cfg.HTTPTimeout, upstream.WithMaxAttempts(cfg.HTTPMaxAttempts))
	return routing.NewOSRMRouteProvider(cfg.OSRMURL, cfg.OSRMProfile, client)
}

// NewGeocoder returns the configured geocoder (Nominatim or ORS), wrapped in
// the configured persistent cache.
func NewGeocoder(cfg *config.Config, logger *zap.Logger) (ports.Geocoder, Closer, error) {
	g, err := baseGeocoder(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("wire geocoder: %w", err)
	}
	logger.Info("geocoder ready", zap.String("backend", cfg.Geocoder))

	var (
		conn    *sql.DB
		gcCache ports.GeocodeCache
	)
	switch cfg.GeocodeCache {
	case "sqlite":
		if dir := filepath.Dir(cfg.DBPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("wire geocoder: create %q: %w", dir, err)
			}
		}
		if conn, err = db.OpenSQLite(cfg.DBPath); err != nil {
			return nil, nil, fmt.Errorf("wire geocoder: %w", err)
		}
		if err := repositories.InitSchema(conn, db.DialectSQLite); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("wire geocoder: %w", err)
		}
		gcCache = cache.NewSqliteGeocodeCache(conn)
	case "postgres":
		if conn, err = db.Open(cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("wire geocoder: %w", err)
		}
		if err := repositories.InitSchema(conn, db.DialectPostgres); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("wire geocoder: %w", err)
		}
		gcCache = cache.NewSQLGeocodeCache(conn)
	default:
		logger.Info("geocode cache disabled")
		return g, func() {}, nil
	}

	logger.Info("geocode cache enabled", zap.String("backend", cfg.GeocodeCache))
	return geocode.NewCached(g, gcCache), func() { conn.Close() }, nil
}

// NewRouteProvider returns the configured route provider (OSRM or ORS),
// fronted by Redis when REDIS_URL is set.
func NewRouteProvider(cfg *config.Config, logger *zap.Logger) (ports.RouteProvider, Closer, error) {
	p, err := baseRouteProvider(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("wire route provider: %w", err)
	}
	logger.Info("route provider ready", zap.String("backend", cfg.Router))

	if cfg.RedisURL == "" {
		logger.Info("route cache disabled")
		return p, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("wire route provider: parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	logger.Info("route cache enabled", zap.String("addr", opts.Addr), zap.Duration("ttl", cfg.RouteCacheTTL))

	return routing.NewCached(p, cache.NewRedisRouteCache(rdb, cfg.RouteCacheTTL)), func() { rdb.Close() }, nil
}
