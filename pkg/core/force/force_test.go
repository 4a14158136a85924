package force

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/barneshut"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
)

func TestSprings_PullsStretched(t *testing.T) {
	a := &Item{ID: "a", Pos: geom.Point{X: 0}, Mass: 1}
	b := &Item{ID: "b", Pos: geom.Point{X: 100}, Mass: 1}
	s := &Springs{}
	s.Add(a, b, 1e-4, 50)
	s.Apply(nil)

	assert.InDelta(t, 1e-4*50, a.Force.X, 1e-12)
	assert.InDelta(t, -1e-4*50, b.Force.X, 1e-12)
	assert.Zero(t, a.Force.Y)
}

func TestSprings_PushesCompressed(t *testing.T) {
	a := &Item{ID: "a", Pos: geom.Point{Y: 0}, Mass: 1}
	b := &Item{ID: "b", Pos: geom.Point{Y: 10}, Mass: 1}
	s := &Springs{}
	s.Add(a, b, 1, 50)
	s.Apply(nil)

	if a.Force.Y >= 0 || b.Force.Y <= 0 {
		t.Errorf("compressed spring forces = %v, %v, want a pushed up and b down", a.Force, b.Force)
	}
}

func TestSprings_CoincidentJitter(t *testing.T) {
	a := &Item{ID: "a", Mass: 1}
	b := &Item{ID: "b", Mass: 1}
	s := &Springs{Rand: rand.New(rand.NewPCG(3, 4))}
	s.Add(a, b, 1, 50)
	s.Apply(nil)

	assert.True(t, a.Force.IsFinite())
	assert.True(t, b.Force.IsFinite())
	assert.InDelta(t, 0, a.Force.X+b.Force.X, 1e-12)
}

func TestDrag(t *testing.T) {
	it := &Item{Velocity: geom.Point{X: 2, Y: -4}, Mass: 1}
	(&Drag{Coefficient: 0.5}).Apply([]*Item{it})
	assert.Equal(t, geom.Point{X: -1, Y: 2}, it.Force)
}

func TestRepulsion_PushesApart(t *testing.T) {
	items := []*Item{
		{ID: "a", Pos: geom.Point{X: -5}, Mass: 1},
		{ID: "b", Pos: geom.Point{X: 5}, Mass: 1},
		{ID: "c", Pos: geom.Point{Y: 50}, Mass: 1},
	}
	(&Repulsion{Constant: 1, Theta: DefaultTheta}).Apply(items)

	assert.Less(t, items[0].Force.X, 0.0)
	assert.Greater(t, items[1].Force.X, 0.0)
	assert.Greater(t, items[2].Force.Y, 0.0)
	for _, it := range items {
		assert.True(t, it.Force.IsFinite())
	}
}

func TestRepulsion_AvoidOverlapStronger(t *testing.T) {
	mk := func() []*Item {
		return []*Item{
			{ID: "a", Pos: geom.Point{X: 0}, Mass: 1, Width: 8, Height: 8},
			{ID: "b", Pos: geom.Point{X: 10}, Mass: 1, Width: 8, Height: 8},
		}
	}
	plain, overlap := mk(), mk()
	(&Repulsion{Constant: 1, Theta: DefaultTheta}).Apply(plain)
	(&Repulsion{Constant: 1, Theta: DefaultTheta, AvoidOverlap: true}).Apply(overlap)

	assert.Greater(t, math.Abs(overlap[0].Force.X), math.Abs(plain[0].Force.X))
}

func TestRepulsion_Coincident(t *testing.T) {
	items := []*Item{
		{ID: "a", Pos: geom.Point{X: 3, Y: 3}, Mass: 1},
		{ID: "b", Pos: geom.Point{X: 3, Y: 3}, Mass: 1},
	}
	(&Repulsion{Constant: 1, Theta: DefaultTheta}).applyDirect([]barneshut.Particle2{body{items[0]}, body{items[1]}})

	assert.True(t, items[0].Force.IsFinite())
	assert.Less(t, items[0].Force.X, 0.0)
	assert.Greater(t, items[1].Force.X, 0.0)
}

func TestRepulsion_SkipsNonFinite(t *testing.T) {
	items := []*Item{
		{ID: "a", Pos: geom.Point{X: math.NaN()}, Mass: 1},
		{ID: "b", Pos: geom.Point{X: 5}, Mass: 1},
		{ID: "c", Pos: geom.Point{X: 15}, Mass: 1},
	}
	(&Repulsion{Constant: 1, Theta: DefaultTheta}).Apply(items)

	assert.Equal(t, geom.Point{}, items[0].Force)
	assert.True(t, items[1].Force.IsFinite())
}

func TestClampDistance(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, MinDistance},
		{0.001, MinDistance},
		{-0.001, -MinDistance},
		{5, 5},
		{-5, -5},
	}
	for _, tt := range tests {
		if got := clampDistance(tt.in); got != tt.want {
			t.Errorf("clampDistance(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
