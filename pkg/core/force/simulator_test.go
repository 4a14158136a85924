package force

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
)

type constantForce struct{ f geom.Point }

func (c constantForce) Name() string { return "constant" }
func (c constantForce) Apply(items []*Item) {
	for _, it := range items {
		it.Force = it.Force.Add(c.f)
	}
}

func TestParseIntegrator(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", IntegratorEuler, false},
		{"Euler", IntegratorEuler, false},
		{"rk4", IntegratorRK4, false},
		{"runge-kutta", IntegratorRK4, false},
		{"verlet", "", true},
	}
	for _, tt := range tests {
		got, err := ParseIntegrator(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseIntegrator(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got.Name() != tt.want {
			t.Errorf("ParseIntegrator(%q) = %v, want %v", tt.in, got.Name(), tt.want)
		}
	}
}

func TestEuler_Step(t *testing.T) {
	it := &Item{Pos: geom.Point{X: 1}, Velocity: geom.Point{X: 0.5}, Mass: 2}
	s := NewSimulator(nil, 10)
	s.AddItem(it)
	s.AddForce(constantForce{geom.Point{Y: 4}})
	s.Step(2)

	assert.Equal(t, geom.Point{X: 1}, it.Prev)
	assert.Equal(t, geom.Point{X: 2}, it.Pos)
	assert.Equal(t, geom.Point{X: 0.5, Y: 4}, it.Velocity)
}

func TestEuler_SpeedLimit(t *testing.T) {
	it := &Item{Mass: 1}
	s := NewSimulator(Euler{}, 2)
	s.AddItem(it)
	s.AddForce(constantForce{geom.Point{X: 1000, Y: 1000}})
	s.Step(50)

	assert.InDelta(t, 2, it.Velocity.Norm(), 1e-9)
}

func TestRK4_ConstantForce(t *testing.T) {
	it := &Item{Mass: 1}
	s := NewSimulator(&RK4{}, 0)
	s.AddItem(it)
	s.AddForce(constantForce{geom.Point{X: 2}})
	s.Step(1)

	// x = a·t²/2 and v = a·t under constant acceleration.
	assert.InDelta(t, 1, it.Pos.X, 1e-9)
	assert.InDelta(t, 2, it.Velocity.X, 1e-9)
	assert.Equal(t, geom.Point{}, it.Prev)
}

func TestAccumulate_ResetsForces(t *testing.T) {
	it := &Item{Mass: 1, Force: geom.Point{X: 99}}
	s := NewSimulator(nil, 1)
	s.AddItem(it)
	s.Accumulate()
	assert.Equal(t, geom.Point{}, it.Force)
}

func TestTeleport(t *testing.T) {
	it := &Item{Pos: geom.Point{X: 5}, Prev: geom.Point{X: 4}, Velocity: geom.Point{X: 1}}
	it.Teleport(geom.Point{X: 20, Y: 3})

	require.Equal(t, geom.Point{X: 20, Y: 3}, it.Pos)
	assert.Equal(t, it.Pos, it.Prev)
	assert.Equal(t, geom.Point{}, it.Velocity)
}
