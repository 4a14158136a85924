package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

func sampleExport() *scene.Export {
	return scene.NewExport("test", &sim.Result{
		Positions:  map[string]geom.Point{"a": {X: 1, Y: 2}},
		Iterations: 10,
		Duration:   time.Second,
	})
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	e := sampleExport()

	require.NoError(t, s.Store(ctx, e))
	got, err := s.Load(ctx, e.RunID)
	require.NoError(t, err)
	assert.Equal(t, e.RunID, got.RunID)
	assert.Equal(t, e.Positions, got.Positions)
	assert.Equal(t, 10, got.Iterations)

	_, err = s.Load(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testStore(t, s)
	assert.Len(t, s.IDs(), 1)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, s)

	_, err = s.Load(context.Background(), "../../etc/passwd")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("BOUNDLAYOUT_MONGO_URI")
	if uri == "" {
		t.Skip("BOUNDLAYOUT_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "boundlayout_test", "layouts")
	require.NoError(t, err)
	defer s.Close(ctx)
	testStore(t, s)
}
