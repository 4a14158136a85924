package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// FileStore writes each layout to <dir>/<run id>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Name() string { return "file" }

// Store writes e atomically through a temporary file.
func (s *FileStore) Store(_ context.Context, e *scene.Export) error {
	tmp, err := os.CreateTemp(s.dir, ".layout-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := scene.WriteExport(tmp, e); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), s.path(e.RunID))
}

// Load reads a layout back. Ids that are not UUIDs are rejected so they
// can never address files outside the store directory.
func (s *FileStore) Load(_ context.Context, runID string) (*scene.Export, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, notFound(runID)
	}
	f, err := os.Open(s.path(runID))
	if os.IsNotExist(err) {
		return nil, notFound(runID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open layout %s", runID)
	}
	defer f.Close()
	return scene.ReadExport(f)
}

func (s *FileStore) Close(context.Context) error { return nil }

func (s *FileStore) path(runID string) string {
	return filepath.Join(s.dir, runID+".json")
}

var _ Store = (*FileStore)(nil)
