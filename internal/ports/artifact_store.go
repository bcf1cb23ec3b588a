package ports

import (
	"context"
	"errors"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// Port: storage for rendered map documents, keyed by a request-scoped id.
type ArtifactStore interface {
	Save(ctx context.Context, id string, html []byte) error
	// Open returns ErrArtifactNotFound for unknown ids.
	Open(ctx context.Context, id string) ([]byte, error)
}
