package geocode

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

const viennaResponse = `[{"place_id":47300855,"licence":"Data © OpenStreetMap contributors, ODbL 1.0. https://osm.org/copyright","osm_type":"node","lat":"48.2083537","lon":"16.3725042","display_name":"Wien, Österreich"}]`

func newTestGeocoder(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *NominatimGeocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := upstream.NewClient("nominatim", timeout, upstream.WithUserAgent("map-routing-test"))
	g, err := NewNominatimGeocoder(srv.URL+"/", client)
	require.NoError(t, err)
	return g
}

func TestGeocodeReturnsFirstMatch(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Vienna Austria", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "map-routing-test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, viennaResponse)
	}, time.Second)

	coords, found, err := g.Geocode(context.Background(), "  Vienna   Austria ")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Coordinates{Lat: 48.2083537, Lon: 16.3725042}, coords)
}

func TestGeocodeNoMatchIsAbsent(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}, time.Second)

	_, found, err := g.Geocode(context.Background(), "Nowhereville Qwxz")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestGeocodeTimeoutIsAbsent(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, viennaResponse)
	}, 20*time.Millisecond)

	_, found, err := g.Geocode(context.Background(), "Vienna")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestGeocodeEmptyNameIsAbsent(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an empty name")
	}, time.Second)

	_, found, err := g.Geocode(context.Background(), "   ")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestGeocodeUpstreamFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"not":"a list"}`)
		},
		"bad coordinate": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"lat":"north","lon":"16.3"}]`)
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			g := newTestGeocoder(t, h, time.Second)
			_, found, err := g.Geocode(context.Background(), "Vienna")
			assert.False(t, found)

			var ue *domain.UpstreamError
			assert.True(t, errors.As(err, &ue), "want UpstreamError, got %v", err)
		})
	}
}

func TestNewNominatimGeocoderValidates(t *testing.T) {
	_, err := NewNominatimGeocoder("", upstream.NewClient("nominatim", time.Second))
	assert.Error(t, err)

	_, err = NewNominatimGeocoder("http://localhost", nil)
	assert.Error(t, err)
}
