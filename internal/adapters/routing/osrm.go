package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"map-routing-service/internal/adapters/upstream"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"net/http"
	"strings"

	"github.com/twpayne/go-polyline"
)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string `json:"geometry"`
		Legs     []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// OSRMRouteProvider implements ports.RouteProvider using the OSRM HTTP
// route service.
type OSRMRouteProvider struct {
	client  *upstream.Client
	baseURL string
	profile string
}

func NewOSRMRouteProvider(baseURL, profile string, client *upstream.Client) (*OSRMRouteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("osrm base url is empty")
	}
	if client == nil {
		return nil, errors.New("osrm http client is nil")
	}
	if profile == "" {
		profile = "driving"
	}
	return &OSRMRouteProvider{client: client, baseURL: baseURL, profile: profile}, nil
}

// Route fetches the driving route from start to end with full geometry.
// Distance and duration are taken from the first route's first leg.
func (o *OSRMRouteProvider) Route(ctx context.Context, start, end domain.Coordinates) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f",
		o.baseURL, o.profile, start.Lon, start.Lat, end.Lon, end.Lat,
	)

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "polyline")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		// OSRM reports unroutable pairs as a 400 with code "NoRoute".
		var se *upstream.StatusError
		if errors.As(err, &se) && isNoRouteBody(se.Body) {
			return nil, domain.ErrNoRoute
		}
		return nil, &domain.UpstreamError{Op: "osrm route", Err: err}
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &domain.UpstreamError{Op: "osrm route", Err: fmt.Errorf("decode response: %w", err)}
	}

	return parseRoute(decoded)
}

func parseRoute(rr routeResponse) (*domain.RouteResult, error) {
	if len(rr.Routes) == 0 {
		if rr.Code != "" && rr.Code != "Ok" && rr.Code != "NoRoute" {
			return nil, &domain.UpstreamError{
				Op:  "osrm route",
				Err: fmt.Errorf("service returned %s: %s", rr.Code, rr.Message),
			}
		}
		return nil, domain.ErrNoRoute
	}

	first := rr.Routes[0]
	if len(first.Legs) == 0 {
		return nil, &domain.UpstreamError{Op: "osrm route", Err: errors.New("route has no legs")}
	}

	path, err := DecodePath(first.Geometry)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "osrm route", Err: err}
	}

	return &domain.RouteResult{
		DistanceKm:      first.Legs[0].Distance / 1000,
		DurationMinutes: first.Legs[0].Duration / 60,
		Path:            path,
	}, nil
}

// DecodePath decodes a precision-5 encoded polyline into coordinates.
func DecodePath(encoded string) ([]domain.Coordinates, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode geometry: %d trailing bytes", len(rest))
	}

	path := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		path = append(path, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return path, nil
}

func isNoRouteBody(body string) bool {
	var rr routeResponse
	if err := json.Unmarshal([]byte(body), &rr); err != nil {
		return false
	}
	return rr.Code == "NoRoute"
}
