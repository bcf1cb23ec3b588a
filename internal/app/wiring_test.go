package app

import (
	"context"
	"fmt"
	"map-routing-service/internal/adapters/geocode"
	"map-routing-service/internal/adapters/ors"
	"map-routing-service/internal/adapters/routing"
	"map-routing-service/internal/config"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func baseConfig(url string) *config.Config {
	return &config.Config{
		NominatimURL:       url,
		NominatimUserAgent: "test",
		OSRMURL:            url,
		OSRMProfile:        "driving",
		HTTPTimeout:        time.Second,
		HTTPMaxAttempts:    1,
		GeocodeCache:       "none",
		RouteCacheTTL:      time.Minute,
	}
}

func TestNewGeocoderWithSqliteCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `[{"lat":"52.52","lon":"13.405"}]`)
	}))
	defer srv.Close()

	cfg := baseConfig(srv.URL)
	cfg.GeocodeCache = "sqlite"
	cfg.DBPath = filepath.Join(t.TempDir(), "nested", "cache.db")

	g, closeFn, err := NewGeocoder(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &geocode.Cached{}, g)

	for i := 0; i < 2; i++ {
		c, found, err := g.Geocode(context.Background(), "Berlin")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 52.52, c.Lat)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewGeocoderWithoutCache(t *testing.T) {
	g, closeFn, err := NewGeocoder(baseConfig("http://localhost"), zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &geocode.NominatimGeocoder{}, g)
}

func TestNewRouteProviderWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig("http://localhost")
	cfg.RedisURL = "redis://" + mr.Addr()

	p, closeFn, err := NewRouteProvider(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &routing.Cached{}, p)

	cfg.RedisURL = ""
	p, closeFn2, err := NewRouteProvider(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn2()
	assert.IsType(t, &routing.OSRMRouteProvider{}, p)
}

func TestORSBackends(t *testing.T) {
	cfg := baseConfig("http://localhost")
	cfg.Geocoder = "ors"
	cfg.Router = "ors"
	cfg.ORSAPIKey = "key"
	cfg.ORSURL = "http://localhost"

	g, closeG, err := NewGeocoder(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeG()
	assert.IsType(t, &ors.Provider{}, g)

	p, closeP, err := NewRouteProvider(cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeP()
	assert.IsType(t, &ors.Provider{}, p)

	cfg.ORSAPIKey = ""
	_, _, err = NewRouteProvider(cfg, zap.NewNop())
	assert.Error(t, err)
}
