package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"map-routing-service/internal/adapters/upstream"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"net/http"

	"go.uber.org/zap"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves name using OpenRouteService (/geocode/search).
// No match and timeouts report found=false without an error.
func (o *Provider) Geocode(ctx context.Context, name string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(name)
	if norm == "" {
		return domain.Coordinates{}, false, nil
	}

	endpoint := o.baseURL + "/geocode/search"
	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		if o.country != "" {
			q.Set("boundary.country", o.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		if upstream.IsTimeout(err) {
			obs.Logger(ctx).Warn("geocoding service timed out", zap.String("name", norm))
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, &domain.UpstreamError{Op: "ors geocode", Err: err}
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Op:  "ors geocode",
			Err: fmt.Errorf("decode geocode response: %w", err),
		}
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Op:  "ors geocode",
			Err: fmt.Errorf("invalid coordinate format for %q", norm),
		}
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, true, nil
}
