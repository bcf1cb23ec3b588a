package ports

import (
	"context"
	"map-routing-service/internal/domain"
)

// Contract for fetching a driving route between two coordinates.
//
// Implementations return domain.ErrNoRoute when the service found no route
// and a *domain.UpstreamError for transport or payload failures.
type RouteProvider interface {
	Route(ctx context.Context, start, end domain.Coordinates) (*domain.RouteResult, error)
}
