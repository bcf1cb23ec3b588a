package services

import (
	"context"
	"errors"
	"fmt"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"map-routing-service/internal/ports"
	"map-routing-service/internal/render"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidAddresses means at least one place name did not resolve.
	ErrInvalidAddresses = errors.New("invalid addresses")
	// ErrRouteUnavailable means no route could be obtained for resolved endpoints.
	ErrRouteUnavailable = errors.New("route unavailable")
)

// RoutePlan is the outcome of a successful request. ID names the stored map.
type RoutePlan struct {
	ID    string
	Start domain.Coordinates
	End   domain.Coordinates
	Route *domain.RouteResult
	Car   domain.TravelEstimate
	Bike  domain.TravelEstimate
}

// RoutePlanner resolves two place names into a rendered, stored route map.
// Its dependencies are stateless handles built once at startup.
type RoutePlanner struct {
	Geocoder  ports.Geocoder
	Router    ports.RouteProvider
	Artifacts ports.ArtifactStore
	Zoom      int

	// newID is replaced in tests.
	newID func() string
}

func NewRoutePlanner(g ports.Geocoder, r ports.RouteProvider, a ports.ArtifactStore, zoom int) *RoutePlanner {
	return &RoutePlanner{
		Geocoder:  g,
		Router:    r,
		Artifacts: a,
		Zoom:      zoom,
		newID:     uuid.NewString,
	}
}

// PlanRoute geocodes both names concurrently, fetches the route, computes
// car and bike estimates and stores the rendered map.
//
// Failures map to ErrInvalidAddresses or ErrRouteUnavailable with the cause
// wrapped for logging. No artifact is written on any failure path.
func (p *RoutePlanner) PlanRoute(ctx context.Context, startName, endName string) (*RoutePlan, error) {
	logger := obs.Logger(ctx)

	start, end, err := p.resolvePair(ctx, startName, endName)
	if err != nil {
		logger.Info("address resolution failed",
			zap.String("start", startName), zap.String("end", endName), zap.Error(err))
		return nil, err
	}

	route, err := p.Router.Route(ctx, start, end)
	if err != nil {
		logger.Info("route fetch failed",
			zap.Stringer("start", start), zap.Stringer("end", end),
			zap.Bool("no_route", errors.Is(err, domain.ErrNoRoute)), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRouteUnavailable, err)
	}
	if len(route.Path) == 0 {
		return nil, fmt.Errorf("%w: route has empty geometry", ErrRouteUnavailable)
	}

	car, bike := domain.Estimates(route.DistanceKm)

	html, err := render.Render(render.MapView{
		Start:      start,
		End:        end,
		Path:       route.Path,
		DistanceKm: route.DistanceKm,
		Car:        car,
		Bike:       bike,
		Zoom:       p.Zoom,
	})
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	id := p.newID()
	if err := p.Artifacts.Save(ctx, id, html); err != nil {
		return nil, fmt.Errorf("plan route: save map %s: %w", id, err)
	}

	logger.Info("route planned",
		zap.String("map_id", id),
		zap.Float64("distance_km", route.DistanceKm),
		zap.Float64("duration_minutes", route.DurationMinutes))

	return &RoutePlan{
		ID:    id,
		Start: start,
		End:   end,
		Route: route,
		Car:   car,
		Bike:  bike,
	}, nil
}

// resolvePair geocodes both names in parallel and joins the results.
func (p *RoutePlanner) resolvePair(ctx context.Context, startName, endName string) (start, end domain.Coordinates, err error) {
	var startFound, endFound bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		start, startFound, err = p.Geocoder.Geocode(gctx, startName)
		if err != nil {
			return fmt.Errorf("geocode start %q: %w", startName, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		end, endFound, err = p.Geocoder.Geocode(gctx, endName)
		if err != nil {
			return fmt.Errorf("geocode end %q: %w", endName, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return start, end, fmt.Errorf("%w: %w", ErrInvalidAddresses, err)
	}
	if !startFound || !endFound {
		return start, end, fmt.Errorf("%w: start_found=%t end_found=%t", ErrInvalidAddresses, startFound, endFound)
	}
	return start, end, nil
}
