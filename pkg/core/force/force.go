package force

import (
	"math"
	"math/rand/v2"
)

// MinDistance is the floor applied to distances in inverse-square laws.
const MinDistance = 0.01

// Force contributes to the force accumulators of items.
type Force interface {
	// Name identifies the force in logs.
	Name() string
	// Apply adds this force's contribution to every affected item.
	Apply(items []*Item)
}

// =============================================================================
// Springs
// =============================================================================

// Spring connects two items.
type Spring struct {
	A, B        *Item
	Coefficient float64
	Length      float64
}

// Springs applies Hooke's law along every spring. Coincident endpoints are
// separated by a small random jitter drawn from Rand (or the global source
// when nil).
type Springs struct {
	Springs []Spring
	Rand    *rand.Rand
}

// Add appends a spring between a and b.
func (s *Springs) Add(a, b *Item, coefficient, length float64) {
	s.Springs = append(s.Springs, Spring{A: a, B: b, Coefficient: coefficient, Length: length})
}

// Name implements Force.
func (s *Springs) Name() string { return "spring" }

// Apply implements Force. The items argument is unused; springs carry
// their own endpoints.
func (s *Springs) Apply(_ []*Item) {
	for _, sp := range s.Springs {
		dx := sp.B.Pos.X - sp.A.Pos.X
		dy := sp.B.Pos.Y - sp.A.Pos.Y
		r := math.Hypot(dx, dy)
		if r == 0 {
			dx, dy = s.jitter(), s.jitter()
			r = math.Hypot(dx, dy)
		}
		coeff := sp.Coefficient * (r - sp.Length) / r
		sp.A.Force.X += coeff * dx
		sp.A.Force.Y += coeff * dy
		sp.B.Force.X -= coeff * dx
		sp.B.Force.Y -= coeff * dy
	}
}

func (s *Springs) jitter() float64 {
	var f float64
	if s.Rand != nil {
		f = s.Rand.Float64()
	} else {
		f = rand.Float64()
	}
	return (f - 0.5) / 50
}

// =============================================================================
// Drag
// =============================================================================

// DefaultDragCoefficient matches the damping of classic layout engines.
const DefaultDragCoefficient = 0.01

// Drag damps motion proportionally to velocity.
type Drag struct {
	Coefficient float64
}

// Name implements Force.
func (d *Drag) Name() string { return "drag" }

// Apply implements Force.
func (d *Drag) Apply(items []*Item) {
	for _, it := range items {
		it.Force = it.Force.Sub(it.Velocity.Scale(d.Coefficient))
	}
}

// clampDistance keeps |d| at or above MinDistance, preserving its sign.
// Zero maps to +MinDistance.
func clampDistance(d float64) float64 {
	switch {
	case d >= 0 && d < MinDistance:
		return MinDistance
	case d < 0 && d > -MinDistance:
		return -MinDistance
	}
	return d
}
