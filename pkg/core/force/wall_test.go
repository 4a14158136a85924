package force

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
)

func rectWall() *WallForce {
	return NewWallForce("A", geom.Rectangle, geom.Box{X: 0, Y: 0, W: 100, H: 100}, 10, true, 4)
}

func wallForceOn(w *WallForce, it *Item) geom.Point {
	it.Force = geom.Point{}
	w.Apply([]*Item{it})
	return it.Force
}

func TestSetScaleFactor(t *testing.T) {
	tests := []struct {
		x    float64
		want bool
	}{
		{0.05, false},
		{-0.05, false},
		{10.5, false},
		{-11, false},
		{0.1, true},
		{10, true},
		{-2, true},
		{5, true},
	}
	for _, tt := range tests {
		w := rectWall()
		got := w.SetScaleFactor(tt.x)
		if got != tt.want {
			t.Errorf("SetScaleFactor(%v) = %v, want %v", tt.x, got, tt.want)
		}
		want := 4.0
		if tt.want {
			want = tt.x
		}
		if w.ScaleFactor() != want {
			t.Errorf("after SetScaleFactor(%v) ScaleFactor() = %v, want %v", tt.x, w.ScaleFactor(), want)
		}
	}
}

func TestNewWallForce_ClampsScaleFactor(t *testing.T) {
	box := geom.Box{W: 10, H: 10}
	assert.Equal(t, MaxScaleFactor, NewWallForce("A", geom.Rectangle, box, 1, true, 50).ScaleFactor())
	assert.Equal(t, MinScaleFactor, NewWallForce("A", geom.Rectangle, box, 1, true, 0.001).ScaleFactor())
	assert.Equal(t, -MaxScaleFactor, NewWallForce("A", geom.Rectangle, box, 1, true, -50).ScaleFactor())
	assert.Equal(t, DefaultScaleFactor, NewWallForce("A", geom.Rectangle, box, 1, true, 0).ScaleFactor())
}

func TestScaleStrength(t *testing.T) {
	w := rectWall()
	assert.True(t, w.ScaleStrength(geom.In))
	assert.Equal(t, 40.0, w.In)
	assert.Equal(t, 10.0, w.Out)

	assert.True(t, w.ScaleStrength(geom.Out))
	assert.Equal(t, 40.0, w.Out)

	fixed := NewWallForce("A", geom.Rectangle, geom.Box{W: 10, H: 10}, 10, false, 4)
	assert.False(t, fixed.ScaleStrength(geom.In))
	assert.Equal(t, 10.0, fixed.In)
}

func TestRectangularWall_Member(t *testing.T) {
	w := rectWall()
	tests := []struct {
		name  string
		pos   geom.Point
		check func(f geom.Point) bool
	}{
		{"center balanced", geom.Point{X: 50, Y: 50}, func(f geom.Point) bool { return f.Norm() < 1e-9 }},
		{"near left pushed right", geom.Point{X: 2, Y: 50}, func(f geom.Point) bool { return f.X > 0 }},
		{"near bottom pushed up", geom.Point{X: 50, Y: 99}, func(f geom.Point) bool { return f.Y < 0 }},
		{"outside right pulled back", geom.Point{X: 120, Y: 50}, func(f geom.Point) bool { return f.X < 0 && f.Y == 0 }},
		{"outside top pulled back", geom.Point{X: 50, Y: -20}, func(f geom.Point) bool { return f.Y > 0 && f.X == 0 }},
		{"outside corner pulled back", geom.Point{X: 110, Y: 110}, func(f geom.Point) bool { return f.X < 0 && f.Y < 0 }},
		{"on the edge stays finite", geom.Point{X: 0, Y: 50}, func(f geom.Point) bool { return f.IsFinite() && f.X > 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := wallForceOn(w, &Item{Category: "A", Pos: tt.pos, Mass: 3})
			if !tt.check(f) {
				t.Errorf("force at %v = %v", tt.pos, f)
			}
		})
	}
}

func TestRectangularWall_NonMember(t *testing.T) {
	w := rectWall()

	inside := wallForceOn(w, &Item{Category: "B", Pos: geom.Point{X: 10, Y: 50}, Mass: 3})
	assert.Equal(t, geom.Point{}, inside)

	outside := wallForceOn(w, &Item{Category: "B", Pos: geom.Point{X: 101, Y: 50}, Mass: 3})
	assert.InDelta(t, 10*3/1.0, outside.X, 1e-9)
	assert.Zero(t, outside.Y)

	w.ContainAll = true
	pulled := wallForceOn(w, &Item{Category: "B", Pos: geom.Point{X: 101, Y: 50}, Mass: 3})
	assert.Less(t, pulled.X, 0.0)
}

func TestEllipticalWall(t *testing.T) {
	w := NewWallForce("E", geom.Ellipse, geom.Box{X: -10, Y: -5, W: 20, H: 10}, 1, false, 4)
	assert.Equal(t, Elliptical, w.Kind)

	center := wallForceOn(w, &Item{Category: "E", Mass: 1})
	assert.Equal(t, geom.Point{}, center)

	near := wallForceOn(w, &Item{Category: "E", Pos: geom.Point{X: 9}, Mass: 1})
	assert.Less(t, near.X, 0.0, "member near the boundary is pushed inward")

	out := wallForceOn(w, &Item{Category: "E", Pos: geom.Point{X: 12}, Mass: 1})
	assert.Less(t, out.X, 0.0, "member outside is pulled back")

	other := wallForceOn(w, &Item{Category: "X", Pos: geom.Point{X: 12}, Mass: 1})
	assert.InDelta(t, 1/(2.0*2.0), other.X, 1e-9)

	edge := wallForceOn(w, &Item{Category: "E", Pos: geom.Point{X: 10}, Mass: 1})
	assert.True(t, edge.IsFinite())
}
