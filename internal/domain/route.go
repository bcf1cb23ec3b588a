package domain

import (
	"errors"
	"fmt"
)

// Represents a driving route between two resolved coordinates.
// A RouteResult is produced once per request from the first route's first
// leg reported by the routing service. It is immutable request data.
type RouteResult struct {
	DistanceKm      float64
	DurationMinutes float64
	Path            []Coordinates
}

// ErrNoRoute reports that the routing service answered but found no route.
var ErrNoRoute = errors.New("no route found")

// UpstreamError wraps failures talking to an external service: transport
// errors, unexpected status codes and payloads that cannot be decoded.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
