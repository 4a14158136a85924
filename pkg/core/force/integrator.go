package force

import (
	"strings"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/errors"
)

// Integrator advances item positions by one timestep using the forces the
// simulator has accumulated.
type Integrator interface {
	Name() string
	Integrate(s *Simulator, dt float64)
}

// Integrator names accepted by ParseIntegrator.
const (
	IntegratorEuler = "euler"
	IntegratorRK4   = "rk4"
)

// ParseIntegrator returns the integrator with the given name. An empty
// name selects Euler.
func ParseIntegrator(name string) (Integrator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", IntegratorEuler:
		return Euler{}, nil
	case IntegratorRK4, "runge-kutta", "rungekutta":
		return &RK4{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown integrator %q (want %s or %s)", name, IntegratorEuler, IntegratorRK4)
}

// Euler is the semi-implicit Euler integrator: positions move with the
// current velocity, then velocity absorbs the accumulated force.
type Euler struct{}

// Name implements Integrator.
func (Euler) Name() string { return IntegratorEuler }

// Integrate implements Integrator.
func (Euler) Integrate(s *Simulator, dt float64) {
	for _, it := range s.Items {
		it.Prev = it.Pos
		it.Pos = it.Pos.Add(it.Velocity.Scale(dt))
		it.Velocity = it.Velocity.Add(it.Force.Scale(dt / it.Mass))
		it.Velocity = limit(it.Velocity, s.SpeedLimit)
	}
}

// RK4 is the classic fourth-order Runge-Kutta integrator. It re-accumulates
// forces at three intermediate positions per step.
type RK4 struct {
	k, l [4][]geom.Point
}

// Name implements Integrator.
func (*RK4) Name() string { return IntegratorRK4 }

// Integrate implements Integrator.
func (r *RK4) Integrate(s *Simulator, dt float64) {
	n := len(s.Items)
	for i := range r.k {
		r.k[i] = resize(r.k[i], n)
		r.l[i] = resize(r.l[i], n)
	}

	// Stage 1 uses the forces already accumulated by the simulator.
	for i, it := range s.Items {
		it.Prev = it.Pos
		r.k[0][i] = limit(it.Velocity, s.SpeedLimit).Scale(dt)
		r.l[0][i] = it.Force.Scale(dt / it.Mass)
		it.Pos = it.Prev.Add(r.k[0][i].Scale(0.5))
	}

	stages := []struct {
		half   float64 // fraction of the previous stage's velocity delta
		posMul float64 // fraction of this stage's displacement for the next stage
	}{
		{0.5, 0.5},
		{0.5, 1},
		{1, 0},
	}
	for st, cfg := range stages {
		s.Accumulate()
		j := st + 1
		for i, it := range s.Items {
			v := it.Velocity.Add(r.l[j-1][i].Scale(cfg.half))
			r.k[j][i] = limit(v, s.SpeedLimit).Scale(dt)
			r.l[j][i] = it.Force.Scale(dt / it.Mass)
			if cfg.posMul > 0 {
				it.Pos = it.Prev.Add(r.k[j][i].Scale(cfg.posMul))
			}
		}
	}

	for i, it := range s.Items {
		dp := r.k[0][i].Add(r.k[1][i].Scale(2)).Add(r.k[2][i].Scale(2)).Add(r.k[3][i])
		dv := r.l[0][i].Add(r.l[1][i].Scale(2)).Add(r.l[2][i].Scale(2)).Add(r.l[3][i])
		it.Pos = it.Prev.Add(dp.Scale(1.0 / 6))
		it.Velocity = limit(it.Velocity.Add(dv.Scale(1.0/6)), s.SpeedLimit)
	}
}

func resize(s []geom.Point, n int) []geom.Point {
	if cap(s) < n {
		return make([]geom.Point, n)
	}
	return s[:n]
}

// limit caps the length of v at speedLimit. A non-positive limit disables
// the cap.
func limit(v geom.Point, speedLimit float64) geom.Point {
	if speedLimit <= 0 {
		return v
	}
	n := v.Norm()
	if n > speedLimit {
		return v.Scale(speedLimit / n)
	}
	return v
}
