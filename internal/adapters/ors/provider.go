// Package ors adapts OpenRouteService as an alternative geocoder and route
// provider.
package ors

import (
	"errors"
	"map-routing-service/internal/adapters/upstream"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openrouteservice.org"

// Provider implements ports.Geocoder and ports.RouteProvider using
// OpenRouteService. The provider is safe for concurrent use.
type Provider struct {
	client  *upstream.Client
	baseURL string
	profile string
	country string
}

type Options struct {
	APIKey  string
	BaseURL string
	// Profile is the ORS routing profile, "driving-car" by default.
	Profile string
	// Country optionally restricts geocoding to an ISO country code.
	Country     string
	Timeout     time.Duration
	MaxAttempts int
}

func NewProvider(opts Options) (*Provider, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	profile := opts.Profile
	if profile == "" {
		profile = "driving-car"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := upstream.NewClient("ors", timeout,
		upstream.WithHeader("Authorization", opts.APIKey),
		upstream.WithMaxAttempts(opts.MaxAttempts),
	)

	return &Provider{
		client:  client,
		baseURL: baseURL,
		profile: profile,
		country: opts.Country,
	}, nil
}

// normalize ensures consistent queries by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
