package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/errors"
)

func TestBuild_Duplicate(t *testing.T) {
	_, err := Build([]Spec{
		{ID: "A", Width: 10, Height: 10},
		{ID: "A", Width: 20, Height: 20},
	})
	if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("Build() error = %v, want %v", err, errors.ErrCodeInvalidGeometry)
	}
}

func TestAdd_ReservedKey(t *testing.T) {
	s := NewSet()
	err := s.Add(&Region{ID: OuterKey})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestAddOuter(t *testing.T) {
	s, err := Build([]Spec{
		{ID: "A", X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "B", X: 200, Y: 0, Width: 100, Height: 100},
	})
	require.NoError(t, err)

	outer := s.AddOuter(1.5)
	require.NotNil(t, outer)
	assert.Equal(t, geom.Point{X: 150, Y: 50}, outer.Center())
	assert.InDelta(t, 450, outer.Box.W, 1e-9)
	assert.InDelta(t, 150, outer.Box.H, 1e-9)
	assert.Same(t, outer, s.AddOuter(3))

	owner, ok := s.Owner("unknown")
	require.True(t, ok)
	assert.True(t, owner.IsOuter())

	assert.Nil(t, NewSet().AddOuter(1.5))
}

func TestSetup_Intersections(t *testing.T) {
	s, err := Build([]Spec{
		{ID: "big", X: 0, Y: 0, Width: 200, Height: 200},
		{ID: "inner", X: 20, Y: 20, Width: 40, Height: 40},
		{ID: "side", X: 150, Y: 50, Width: 100, Height: 50},
		{ID: "tie", X: 180, Y: 120, Width: 50, Height: 100},
		{ID: "far", X: 1000, Y: 1000, Width: 10, Height: 10},
	})
	require.NoError(t, err)
	s.AddOuter(1.5)
	s.Setup()

	big, _ := s.Get("big")
	assert.Equal(t, []string{"inner", "side", "tie"}, big.Intersecting)

	inner, _ := s.Get("inner")
	assert.Empty(t, inner.Intersecting, "containing regions are not intersections")

	far, _ := s.Get("far")
	assert.Empty(t, far.Intersecting)
	assert.Equal(t, []geom.Point{{X: 1005, Y: 1005}}, far.InitPoints)

	outer, _ := s.Outer()
	assert.Len(t, outer.Intersecting, 5)
}

func TestSetup_InitPointsAvoidOverlaps(t *testing.T) {
	s, err := Build([]Spec{
		{ID: "A", X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "B", X: 50, Y: 0, Width: 100, Height: 100},
	})
	require.NoError(t, err)
	s.Setup()

	a, _ := s.Get("A")
	assert.Equal(t, []geom.Point{{X: 25, Y: 50}}, a.InitPoints)

	b, _ := s.Get("B")
	assert.Equal(t, []geom.Point{{X: 125, Y: 50}}, b.InitPoints)
}

func TestSetup_EllipseFiltersCorners(t *testing.T) {
	s, err := Build([]Spec{
		{ID: "E", Shape: "Ellipse", X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "core", X: 30, Y: 30, Width: 40, Height: 40},
	})
	require.NoError(t, err)
	s.Setup()

	e, _ := s.Get("E")
	require.NotEmpty(t, e.InitPoints)
	for _, p := range e.InitPoints {
		if geom.EllipseValue(e.Box, p) >= 1 {
			t.Errorf("init point %v outside ellipse", p)
		}
	}
}

func TestSetup_FallbackToCenter(t *testing.T) {
	s, err := Build([]Spec{
		{ID: "small", X: 10, Y: 10, Width: 10, Height: 10},
		{ID: "cover", X: 0, Y: 0, Width: 15, Height: 100},
		{ID: "cover2", X: 14, Y: 0, Width: 100, Height: 100},
	})
	require.NoError(t, err)
	s.Setup()

	small, _ := s.Get("small")
	assert.Equal(t, []geom.Point{small.Center()}, small.InitPoints)
}
