package services

import (
	"context"
	"errors"
	"map-routing-service/internal/adapters/mock"
	"map-routing-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	placeA = domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
	placeB = domain.Coordinates{Lat: 48.8049, Lon: 2.1204}
)

func newPlanner(route *mock.RouteProvider) (*RoutePlanner, *mock.Geocoder, *mock.ArtifactStore) {
	geo := mock.NewGeocoder(map[string]domain.Coordinates{"A": placeA, "B": placeB})
	store := mock.NewArtifactStore()
	p := NewRoutePlanner(geo, route, store, 0)
	p.newID = func() string { return "map-1" }
	return p, geo, store
}

func TestRoutePlannerPlanRoute(t *testing.T) {
	route := &mock.RouteProvider{Result: &domain.RouteResult{
		DistanceKm:      5,
		DurationMinutes: 10,
		Path:            []domain.Coordinates{placeA, placeB},
	}}
	p, geo, store := newPlanner(route)

	plan, err := p.PlanRoute(context.Background(), "A", "B")
	require.NoError(t, err)

	assert.Equal(t, "map-1", plan.ID)
	assert.Equal(t, placeA, plan.Start)
	assert.Equal(t, placeB, plan.End)
	assert.Equal(t, "0h:5m", plan.Car.Formatted)
	assert.Equal(t, "0h:10m", plan.Bike.Formatted)
	assert.LessOrEqual(t, plan.Car.Minutes, plan.Bike.Minutes)
	assert.ElementsMatch(t, []string{"a", "b"}, geo.Calls())
	assert.Equal(t, 1, store.Len())

	html, err := store.Open(context.Background(), "map-1")
	require.NoError(t, err)
	assert.Contains(t, string(html), "5.00 km")
}

func TestRoutePlannerUnresolvedAddress(t *testing.T) {
	route := &mock.RouteProvider{}
	p, _, store := newPlanner(route)

	for _, names := range [][2]string{{"Atlantis", "B"}, {"A", "Atlantis"}, {"", ""}} {
		_, err := p.PlanRoute(context.Background(), names[0], names[1])
		assert.ErrorIs(t, err, ErrInvalidAddresses)
	}

	assert.Equal(t, 0, route.Calls, "router must not be called without both endpoints")
	assert.Equal(t, 0, store.Len())
}

func TestRoutePlannerGeocoderErrorIsInvalidAddress(t *testing.T) {
	p, geo, store := newPlanner(&mock.RouteProvider{})
	upstreamErr := &domain.UpstreamError{Op: "nominatim search", Err: errors.New("503")}
	geo.FailWith("B", upstreamErr)

	_, err := p.PlanRoute(context.Background(), "A", "B")
	assert.ErrorIs(t, err, ErrInvalidAddresses)

	var ue *domain.UpstreamError
	assert.True(t, errors.As(err, &ue), "cause must stay inspectable")
	assert.Equal(t, 0, store.Len())
}

func TestRoutePlannerRouteFailures(t *testing.T) {
	for name, cause := range map[string]error{
		"no route": domain.ErrNoRoute,
		"upstream": &domain.UpstreamError{Op: "osrm route", Err: errors.New("bad gateway")},
	} {
		t.Run(name, func(t *testing.T) {
			p, _, store := newPlanner(&mock.RouteProvider{Err: cause})

			_, err := p.PlanRoute(context.Background(), "A", "B")
			assert.ErrorIs(t, err, ErrRouteUnavailable)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestRoutePlannerEmptyGeometry(t *testing.T) {
	p, _, store := newPlanner(&mock.RouteProvider{Result: &domain.RouteResult{DistanceKm: 1}})

	_, err := p.PlanRoute(context.Background(), "A", "B")
	assert.ErrorIs(t, err, ErrRouteUnavailable)
	assert.Equal(t, 0, store.Len())
}
