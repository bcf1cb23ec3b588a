package routing

import (
	"context"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"map-routing-service/internal/ports"

	"go.uber.org/zap"
)

// Cached wraps a RouteProvider with a RouteCache keyed by the coordinate pair.
// Failures are never cached.
type Cached struct {
	delegate ports.RouteProvider
	cache    ports.RouteCache
}

func NewCached(delegate ports.RouteProvider, cache ports.RouteCache) *Cached {
	return &Cached{delegate: delegate, cache: cache}
}

func (c *Cached) Route(ctx context.Context, start, end domain.Coordinates) (*domain.RouteResult, error) {
	logger := obs.Logger(ctx)

	route, ok, err := c.cache.Get(ctx, start, end)
	if err != nil {
		logger.Warn("route cache read failed", zap.Error(err))
	} else if ok {
		return route, nil
	}

	route, err = c.delegate.Route(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, start, end, route); err != nil {
		logger.Warn("route cache write failed", zap.Error(err))
	}
	return route, nil
}
