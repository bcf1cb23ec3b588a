package ports

import (
	"context"
	"map-routing-service/internal/domain"
)

// Port: persistent place name -> coordinates cache.
type GeocodeCache interface {
	Get(ctx context.Context, name string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, name string, coords domain.Coordinates) error
}

// Port: coordinate pair -> route cache.
type RouteCache interface {
	Get(ctx context.Context, start, end domain.Coordinates) (*domain.RouteResult, bool, error)
	Put(ctx context.Context, start, end domain.Coordinates, route *domain.RouteResult) error
}
