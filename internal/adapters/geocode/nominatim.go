package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"map-routing-service/internal/adapters/upstream"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/platform/obs"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// latlon decodes Nominatim's string-encoded coordinates.
type latlon float64

func (p *latlon) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*p = latlon(f)
	return nil
}

type place struct {
	Lat         latlon `json:"lat"`
	Lon         latlon `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder implements ports.Geocoder using the OpenStreetMap
// Nominatim search API.
type NominatimGeocoder struct {
	client  *upstream.Client
	baseURL string
}

func NewNominatimGeocoder(baseURL string, client *upstream.Client) (*NominatimGeocoder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("nominatim base url is empty")
	}
	if client == nil {
		return nil, errors.New("nominatim http client is nil")
	}
	return &NominatimGeocoder{client: client, baseURL: baseURL}, nil
}

// Geocode resolves name to the coordinates of the first search match.
// No match and request timeouts both report found=false without an error.
func (n *NominatimGeocoder) Geocode(ctx context.Context, name string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	query := normalize(name)
	if query == "" {
		return domain.Coordinates{}, false, nil
	}

	endpoint := n.baseURL + "/search"
	resp, err := n.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", query)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		if upstream.IsTimeout(err) {
			obs.Logger(ctx).Warn("geocoding service timed out", zap.String("name", query))
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, &domain.UpstreamError{Op: "nominatim search", Err: err}
	}
	defer resp.Body.Close()

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.Coordinates{}, false, &domain.UpstreamError{
			Op:  "nominatim search",
			Err: fmt.Errorf("decode response: %w", err),
		}
	}

	if len(places) == 0 {
		obs.Logger(ctx).Info("location not found", zap.String("name", query))
		return domain.Coordinates{}, false, nil
	}

	return domain.Coordinates{
		Lat: float64(places[0].Lat),
		Lon: float64(places[0].Lon),
	}, true, nil
}

// normalize collapses whitespace so equivalent inputs share cache keys.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
