package routing

import (
	"context"
	"map-routing-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls int
	route *domain.RouteResult
	err   error
}

func (s *stubProvider) Route(ctx context.Context, start, end domain.Coordinates) (*domain.RouteResult, error) {
	s.calls++
	return s.route, s.err
}

type memRouteCache map[[4]float64]*domain.RouteResult

func key(a, b domain.Coordinates) [4]float64 { return [4]float64{a.Lat, a.Lon, b.Lat, b.Lon} }

func (m memRouteCache) Get(ctx context.Context, a, b domain.Coordinates) (*domain.RouteResult, bool, error) {
	r, ok := m[key(a, b)]
	return r, ok, nil
}

func (m memRouteCache) Put(ctx context.Context, a, b domain.Coordinates, r *domain.RouteResult) error {
	m[key(a, b)] = r
	return nil
}

func TestCachedRouteReusesResult(t *testing.T) {
	delegate := &stubProvider{route: &domain.RouteResult{DistanceKm: 5, DurationMinutes: 10}}
	p := NewCached(delegate, memRouteCache{})

	for i := 0; i < 3; i++ {
		r, err := p.Route(context.Background(), start, end)
		require.NoError(t, err)
		assert.Equal(t, 5.0, r.DistanceKm)
	}
	assert.Equal(t, 1, delegate.calls)
}

func TestCachedRouteDoesNotCacheFailures(t *testing.T) {
	delegate := &stubProvider{err: domain.ErrNoRoute}
	cache := memRouteCache{}
	p := NewCached(delegate, cache)

	for i := 0; i < 2; i++ {
		_, err := p.Route(context.Background(), start, end)
		assert.ErrorIs(t, err, domain.ErrNoRoute)
	}
	assert.Equal(t, 2, delegate.calls)
	assert.Empty(t, cache)
}
