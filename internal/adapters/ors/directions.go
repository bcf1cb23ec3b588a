package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"map-routing-service/internal/adapters/routing"
	"map-routing-service/internal/adapters/upstream"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"net/http"
)

// ORS error codes meaning the points cannot be connected.
const (
	codeRouteNotFound    = 2009
	codePointNotRoutable = 2010
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Geometry string `json:"geometry"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"segments"`
	} `json:"routes"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Route fetches a route from the ORS directions endpoint. The first
// segment of the first route is the single leg between start and end.
func (o *Provider) Route(ctx context.Context, start, end domain.Coordinates) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{start.LonLat(), end.LonLat()},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return o.client.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) && isUnroutable(se.Body) {
			return nil, domain.ErrNoRoute
		}
		return nil, &domain.UpstreamError{Op: "ors directions", Err: err}
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, &domain.UpstreamError{Op: "ors directions", Err: fmt.Errorf("decode directions response: %w", err)}
	}

	if len(dr.Routes) == 0 {
		return nil, domain.ErrNoRoute
	}

	first := dr.Routes[0]
	if len(first.Segments) == 0 {
		return nil, &domain.UpstreamError{Op: "ors directions", Err: errors.New("route has no segments")}
	}

	path, err := routing.DecodePath(first.Geometry)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "ors directions", Err: err}
	}

	return &domain.RouteResult{
		DistanceKm:      first.Segments[0].Distance / 1000,
		DurationMinutes: first.Segments[0].Duration / 60,
		Path:            path,
	}, nil
}

func isUnroutable(body string) bool {
	var er errorResponse
	if err := json.Unmarshal([]byte(body), &er); err != nil {
		return false
	}
	return er.Error.Code == codeRouteNotFound || er.Error.Code == codePointNotRoutable
}
