package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"strings"
)

// SQLite backed cache mapping place names to geographic coordinates.
// Names are expected to be normalized by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for name.
func (s *SqliteGeocodeCache) Get(ctx context.Context, name string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT
        lat,
        lon
    FROM geocode_cache
    WHERE name = ?;
	`

	var c domain.Coordinates
	err = s.DB.QueryRowContext(ctx, q, name).Scan(&c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Store a name -> coordinate mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, name string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("insert geocode cache: empty name key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO geocode_cache (
        name,
        lat,
        lon
    )
    VALUES (?, ?, ?);
	`, name, c.Lat, c.Lon)
	if err != nil {
		return fmt.Errorf("insert geocode cache name=%q: %w", name, err)
	}

	return nil
}
