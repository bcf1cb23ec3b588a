package routing

import (
	"context"
	"errors"
	"fmt"
	"map-routing-service/internal/adapters/upstream"
	"map-routing-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference polyline from the encoding format documentation:
// (38.5, -120.2), (40.7, -120.95), (43.252, -126.453).
const samplePolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var (
	start = domain.Coordinates{Lat: 38.5, Lon: -120.2}
	end   = domain.Coordinates{Lat: 43.252, Lon: -126.453}
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OSRMRouteProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOSRMRouteProvider(srv.URL, "", upstream.NewClient("osrm", time.Second))
	require.NoError(t, err)
	return p
}

func TestRouteParsesFirstLeg(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/-120.200000,38.500000;-126.453000,43.252000", r.URL.Path)
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))
		fmt.Fprintf(w, `{"code":"Ok","routes":[{"geometry":%q,"legs":[{"distance":5000,"duration":600}]},{"geometry":"","legs":[{"distance":1,"duration":1}]}]}`, samplePolyline)
	})

	route, err := p.Route(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, 5.0, route.DistanceKm)
	assert.Equal(t, 10.0, route.DurationMinutes)
	require.Len(t, route.Path, 3)
	assert.InDelta(t, 38.5, route.Path[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, route.Path[0].Lon, 1e-9)
	assert.InDelta(t, 40.7, route.Path[1].Lat, 1e-9)
	assert.InDelta(t, -126.453, route.Path[2].Lon, 1e-9)
}

func TestRouteEmptyRoutesIsNoRoute(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"Ok","routes":[]}`)
	})

	_, err := p.Route(context.Background(), start, end)
	assert.ErrorIs(t, err, domain.ErrNoRoute)
}

func TestRouteNoRouteStatusIsNoRoute(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"NoRoute","message":"Impossible route between points"}`)
	})

	_, err := p.Route(context.Background(), start, end)
	assert.ErrorIs(t, err, domain.ErrNoRoute)
}

func TestRouteUpstreamFailuresAreDistinguished(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"invalid query": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"code":"InvalidQuery","message":"Query string malformed"}`)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"routes": [`)
		},
		"missing legs": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"code":"Ok","routes":[{"geometry":%q,"legs":[]}]}`, samplePolyline)
		},
		"bad geometry": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"code":"Ok","routes":[{"geometry":"_p~iF~ps|U_","legs":[{"distance":1,"duration":1}]}]}`)
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			p := newTestProvider(t, h)
			_, err := p.Route(context.Background(), start, end)

			var ue *domain.UpstreamError
			assert.True(t, errors.As(err, &ue), "want UpstreamError, got %v", err)
			assert.False(t, errors.Is(err, domain.ErrNoRoute))
		})
	}
}

func TestDecodePathEmpty(t *testing.T) {
	path, err := DecodePath("")
	require.NoError(t, err)
	assert.Empty(t, path)
}
