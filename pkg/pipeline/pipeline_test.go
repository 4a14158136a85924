package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/scene"
	"github.com/matzehuels/boundlayout/pkg/store"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"dot", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should default to json, got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	bad := Options{Formats: []string{"pdf"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("Unknown format should fail")
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := sim.Options{NumIterations: 100}
	b := sim.Options{NumIterations: 100, AvoidOverlap: sim.Bool(false)}
	if LayoutKeyOpts(a) == LayoutKeyOpts(b) {
		t.Error("AvoidOverlap should change the key options")
	}
	if !LayoutKeyOpts(a).AvoidOverlap {
		t.Error("nil AvoidOverlap should key as true")
	}
}

func testScene() *scene.Scene {
	return &scene.Scene{
		Name:   "test",
		Layout: sim.Options{NumIterations: 60},
		Regions: []region.Spec{
			{ID: "A", X: 0, Y: 0, Width: 100, Height: 100},
			{ID: "B", X: 50, Y: 0, Width: 100, Height: 100},
		},
		Nodes: []sim.ParticleSpec{
			{ID: "a1", Width: 6, Height: 6, Category: "A"},
			{ID: "a2", Width: 6, Height: 6, Category: "A"},
			{ID: "b1", Width: 6, Height: 6, Category: "B"},
		},
		Edges: []sim.Edge{{Source: "a1", Target: "a2"}, {Source: "a2", Target: "b1"}},
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	mem := store.NewMemoryStore()
	r.Sinks = []store.PositionSink{mem}

	ctx := context.Background()
	res, err := r.Execute(ctx, testScene(), Options{Formats: []string{"json", "dot"}})
	require.NoError(t, err)

	assert.False(t, res.CacheInfo.LayoutHit)
	assert.Len(t, res.Layout.Positions, 3)
	assert.Equal(t, 3, res.Stats.Particles)
	assert.NotEmpty(t, res.SceneHash)
	assert.Contains(t, string(res.Artifacts["dot"]), "graph Layout")

	var exported scene.Export
	require.NoError(t, json.Unmarshal(res.Artifacts["json"], &exported))
	assert.Equal(t, res.Export.RunID, exported.RunID)

	stored, err := mem.Load(ctx, res.Export.RunID)
	require.NoError(t, err)
	assert.Equal(t, res.Layout.Positions, stored.Positions)

	// Second run serves the layout and the DOT artifact from cache.
	again, err := r.Execute(ctx, testScene(), Options{Formats: []string{"dot"}, NoStore: true})
	require.NoError(t, err)
	assert.True(t, again.CacheInfo.LayoutHit)
	assert.True(t, again.CacheInfo.RenderHit)
	assert.Equal(t, res.Layout.Positions, again.Layout.Positions)
	assert.Len(t, mem.IDs(), 1)

	// Refresh recomputes.
	fresh, err := r.Execute(ctx, testScene(), Options{Refresh: true, NoStore: true})
	require.NoError(t, err)
	assert.False(t, fresh.CacheInfo.LayoutHit)
}

func TestExecute_CancelledIsNotCachedOrStored(t *testing.T) {
	r := newTestRunner(t)
	mem := store.NewMemoryStore()
	r.Sinks = []store.PositionSink{mem}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := r.Execute(ctx, testScene(), Options{})
	require.NoError(t, err)
	assert.True(t, res.Layout.Cancelled)
	assert.Empty(t, mem.IDs())

	again, err := r.Layout(context.Background(), testScene(), Options{})
	require.NoError(t, err)
	assert.False(t, again.Cancelled)
}

func TestExecute_InvalidScene(t *testing.T) {
	r := newTestRunner(t)
	s := testScene()
	s.Regions[0].Shape = "Hexagon"

	_, err := r.Execute(context.Background(), s, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedShape), "got %v", err)
}

type failingSink struct{ calls int }

func (f *failingSink) Name() string { return "failing" }

func (f *failingSink) Store(context.Context, *scene.Export) error {
	f.calls++
	return cache.Retryable(cache.ErrUnavailable)
}

func TestStore_RetriesTransientFailures(t *testing.T) {
	defer func(d time.Duration) { cache.RetryBaseDelay = d }(cache.RetryBaseDelay)
	cache.RetryBaseDelay = time.Millisecond

	r := newTestRunner(t)
	sink := &failingSink{}
	r.Sinks = []store.PositionSink{sink}

	_, err := r.Execute(context.Background(), testScene(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
	assert.Equal(t, 3, sink.calls)
}

func TestPartition(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	res, hit, err := r.Partition(ctx, testScene(), "A")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{"B"}, res.Intersecting)
	assert.InDelta(t, 5000.0, res.FreeArea, 1e-9)
	assert.NotEmpty(t, res.InitPoints)
	assert.True(t, strings.HasPrefix(res.DOT, "digraph"))

	cached, hit, err := r.Partition(ctx, testScene(), "A")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, res.Leaves, cached.Leaves)

	_, _, err = r.Partition(ctx, testScene(), "nope")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, scene.Write(f, testScene(), scene.FormatJSON))
	require.NoError(t, f.Close())

	s, err := LoadScene(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, s.Regions, 2)
	assert.Equal(t, SceneHash(testScene()), SceneHash(s))

	_, err = LoadScene(context.Background(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
