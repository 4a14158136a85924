// Package store persists finished layouts.
//
// A [PositionSink] receives the positions a run produces; a [Store] can also
// load them back by run id. Three implementations are provided:
//   - [FileStore]: one JSON file per run in a directory
//   - [MongoStore]: one document per run in a MongoDB collection
//   - [MemoryStore]: process-local, for the HTTP API without a database
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// PositionSink receives finished layouts.
type PositionSink interface {
	// Name identifies the sink in logs and hooks.
	Name() string
	Store(ctx context.Context, e *scene.Export) error
}

// Store is a sink that can also load layouts back.
type Store interface {
	PositionSink
	// Load returns the layout with the given run id, or a NOT_FOUND error.
	Load(ctx context.Context, runID string) (*scene.Export, error)
	Close(ctx context.Context) error
}

// MemoryStore keeps layouts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*scene.Export
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*scene.Export)}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Store(_ context.Context, e *scene.Export) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[e.RunID] = e
	return nil
}

func (s *MemoryStore) Load(_ context.Context, runID string) (*scene.Export, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.runs[runID]
	if !ok {
		return nil, notFound(runID)
	}
	return e, nil
}

// IDs returns the stored run ids in sorted order.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func notFound(runID string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %q not found", runID)
}

var _ Store = (*MemoryStore)(nil)
