package region

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/errors"
)

// OuterKey is the id of the synthetic region bounding all others.
const OuterKey = "__outer__"

// DefaultScaleMod is the projection interval at which walls are rescaled.
const DefaultScaleMod = 10

// Region is the state of one boundary during a layout run.
type Region struct {
	ID    string
	Shape geom.Shape
	Box   geom.Box

	// Intersecting lists the ids of regions whose boxes overlap this one
	// without containing it, smallest area first.
	Intersecting []string

	// InitPoints are seed locations in this region's free space. Never
	// empty after Set.Setup.
	InitPoints []geom.Point

	InCount  int
	OutCount int
	ScaleMod int
}

// New validates a spec and builds its region.
func New(s Spec) (*Region, error) {
	if err := errors.ValidateID("region", s.ID); err != nil {
		return nil, err
	}
	s, err := s.resolve()
	if err != nil {
		return nil, err
	}
	shape, err := geom.ParseShape(s.Shape)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedShape, err, "region %q", s.ID)
	}
	if err := errors.ValidateDimensions(s.ID, s.Width, s.Height); err != nil {
		return nil, err
	}
	if !finite(s.X) || !finite(s.Y) {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "region %q has non-finite position", s.ID)
	}
	return &Region{
		ID:       s.ID,
		Shape:    shape,
		Box:      geom.Box{X: s.X, Y: s.Y, W: s.Width, H: s.Height},
		ScaleMod: DefaultScaleMod,
	}, nil
}

// IsOuter reports whether r is the synthetic outer region.
func (r *Region) IsOuter() bool { return r.ID == OuterKey }

// Center returns the center of the region's box.
func (r *Region) Center() geom.Point { return r.Box.Center() }

// Contains tests a particle box against this region.
func (r *Region) Contains(item geom.Box, dir geom.Direction) bool {
	return geom.Contains(r.Shape, r.Box, item, dir)
}

// NearestPoint projects a particle box just inside or just outside this
// region and returns its new center.
func (r *Region) NearestPoint(item geom.Box, dir geom.Direction) geom.Point {
	return geom.NearestPoint(r.Shape, r.Box, item, dir)
}

// Record counts one projection in the given direction and reports whether
// the matching wall constant should be rescaled now.
func (r *Region) Record(dir geom.Direction) bool {
	if dir == geom.In {
		r.InCount++
		return ShouldRescale(r.InCount, r.ScaleMod)
	}
	r.OutCount++
	return ShouldRescale(r.OutCount, r.ScaleMod)
}

// ShouldRescale reports whether the count-th projection triggers a rescale.
// A scaleMod below 1 is treated as 1.
func ShouldRescale(count, scaleMod int) bool {
	if count <= 0 {
		return false
	}
	if scaleMod < 1 {
		scaleMod = 1
	}
	return count%scaleMod == 0
}

// RandomInit returns one of the region's init points chosen uniformly. A
// region without init points yields its center. A nil rng uses the global
// source.
func (r *Region) RandomInit(rng *rand.Rand) geom.Point {
	switch len(r.InitPoints) {
	case 0:
		return r.Center()
	case 1:
		return r.InitPoints[0]
	}
	if rng == nil {
		return r.InitPoints[rand.IntN(len(r.InitPoints))]
	}
	return r.InitPoints[rng.IntN(len(r.InitPoints))]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
