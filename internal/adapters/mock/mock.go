// Package mock provides in-memory port implementations for tests and
// offline runs.
package mock

import (
	"context"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/ports"
	"strings"
	"sync"
)

// Geocoder resolves names from a fixed table. Lookups are case-insensitive.
type Geocoder struct {
	mu     sync.Mutex
	places map[string]domain.Coordinates
	errs   map[string]error
	calls  []string
}

func NewGeocoder(places map[string]domain.Coordinates) *Geocoder {
	g := &Geocoder{
		places: make(map[string]domain.Coordinates, len(places)),
		errs:   map[string]error{},
	}
	for name, c := range places {
		g.places[strings.ToLower(name)] = c
	}
	return g
}

// FailWith makes lookups of name return err.
func (g *Geocoder) FailWith(name string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[strings.ToLower(name)] = err
}

func (g *Geocoder) Geocode(ctx context.Context, name string) (domain.Coordinates, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(name))
	g.calls = append(g.calls, key)
	if err, ok := g.errs[key]; ok {
		return domain.Coordinates{}, false, err
	}
	c, ok := g.places[key]
	return c, ok, nil
}

func (g *Geocoder) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// RouteProvider returns a fixed route, or Err when set.
type RouteProvider struct {
	Result *domain.RouteResult
	Err    error
	Calls  int
}

func (r *RouteProvider) Route(ctx context.Context, start, end domain.Coordinates) (*domain.RouteResult, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Result, nil
}

// ArtifactStore keeps artifacts in memory.
type ArtifactStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{items: map[string][]byte{}}
}

func (s *ArtifactStore) Save(ctx context.Context, id string, html []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = append([]byte(nil), html...)
	return nil
}

func (s *ArtifactStore) Open(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.items[id]
	if !ok {
		return nil, ports.ErrArtifactNotFound
	}
	return b, nil
}

func (s *ArtifactStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
