package force

import (
	"math"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"
)

// Defaults for Repulsion.
const (
	DefaultRepulsionConstant = 1.0
	DefaultTheta             = 0.9
)

// Repulsion pushes every pair of items apart with magnitude
// Constant·m1·m2/d². Far-away groups are approximated with a Barnes-Hut
// quadtree controlled by Theta. With AvoidOverlap the distance is measured
// between item extents rather than centers.
type Repulsion struct {
	Constant     float64
	Theta        float64
	AvoidOverlap bool
}

// Name implements Force.
func (r *Repulsion) Name() string { return "repulsion" }

// Apply implements Force. Items with non-finite positions neither feel nor
// exert repulsion.
func (r *Repulsion) Apply(items []*Item) {
	bodies := make([]barneshut.Particle2, 0, len(items))
	for _, it := range items {
		if it.Pos.IsFinite() {
			bodies = append(bodies, body{it})
		}
	}
	if len(bodies) < 2 {
		return
	}

	plane, err := barneshut.NewPlane(bodies)
	if err != nil {
		r.applyDirect(bodies)
		return
	}
	for _, p := range bodies {
		f := plane.ForceOn(p, r.Theta, r.pair)
		it := p.(body).it
		it.Force.X += f.X
		it.Force.Y += f.Y
	}
}

// applyDirect is the quadratic fallback used when the quadtree cannot be
// built.
func (r *Repulsion) applyDirect(bodies []barneshut.Particle2) {
	for _, p := range bodies {
		var f r2.Vec
		for _, q := range bodies {
			if p == q {
				continue
			}
			v := r2.Sub(q.Coord2(), p.Coord2())
			f = r2.Add(f, r.pair(p, q, p.Mass(), q.Mass(), v))
		}
		it := p.(body).it
		it.Force.X += f.X
		it.Force.Y += f.Y
	}
}

// pair is a barneshut.Force2. v points from p1 to p2; p2 is nil when it
// stands for an aggregated quadtree cell.
func (r *Repulsion) pair(p1, p2 barneshut.Particle2, m1, m2 float64, v r2.Vec) r2.Vec {
	d := math.Hypot(v.X, v.Y)
	if d == 0 {
		if p2 == nil {
			return r2.Vec{}
		}
		// Coincident items separate along x, ordered by id.
		v = r2.Vec{X: 1}
		if p1.(body).it.ID > p2.(body).it.ID {
			v.X = -1
		}
		d = 1
	}

	gap := d
	if r.AvoidOverlap && p2 != nil {
		gap -= p1.(body).it.radius() + p2.(body).it.radius()
	}
	gap = math.Max(gap, MinDistance)

	mag := r.Constant * m1 * m2 / (gap * gap)
	return r2.Scale(-mag/d, v)
}
