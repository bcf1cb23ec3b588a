package ports

import (
	"context"
	"map-routing-service/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
type Geocoder interface {
	// Return the first match for name. found is false when nothing matched
	// or the lookup timed out; err is reserved for other upstream failures.
	Geocode(ctx context.Context, name string) (coords domain.Coordinates, found bool, err error)
}
