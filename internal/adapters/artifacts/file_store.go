package artifacts

import (
	"context"
	"errors"
	"fmt"
	"map-routing-service/internal/ports"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore keeps rendered map documents as <dir>/<id>.html.
// Ids must be UUIDs, so every request writes its own file.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("artifact store: directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact store: create %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("artifact store: invalid id %q: %w", id, err)
	}
	return filepath.Join(s.dir, parsed.String()+".html"), nil
}

// Save writes html atomically through a temp file and rename.
func (s *FileStore) Save(ctx context.Context, id string, html []byte) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".map-*.tmp")
	if err != nil {
		return fmt.Errorf("artifact store: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return fmt.Errorf("artifact store: write %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("artifact store: close %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("artifact store: rename %s: %w", id, err)
	}
	return nil
}

func (s *FileStore) Open(ctx context.Context, id string) ([]byte, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, ports.ErrArtifactNotFound
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ports.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("artifact store: read %s: %w", id, err)
	}
	return b, nil
}
