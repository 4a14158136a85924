package force

import (
	"math"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
)

// Wall scale factor limits and default.
const (
	MinScaleFactor     = 0.1
	MaxScaleFactor     = 10.0
	DefaultScaleFactor = 4.0
)

// WallKind selects the wall geometry.
type WallKind int

const (
	Rectangular WallKind = iota
	Elliptical
)

func (k WallKind) String() string {
	if k == Elliptical {
		return "elliptical"
	}
	return "rectangular"
}

// WallForce is the inverse-square boundary of one region.
//
// Member items (Category == RegionID, or every item when ContainAll is set)
// are kept inside: inside the boundary they are pushed away from the walls
// with strength In, outside they are pulled back with strength Out. Other
// items that are outside the boundary are pushed away from it with
// strength Out; the periodic containment correction handles the ones that
// already made it in.
type WallForce struct {
	RegionID   string
	Kind       WallKind
	Center     geom.Point
	Half       geom.Point // half extents, or semi-axes for ellipses
	In, Out    float64
	Variable   bool
	ContainAll bool

	scaleFactor float64
}

// NewWallForce builds the wall of a region. Both constants start at
// strength; the scale factor is clamped into [MinScaleFactor,
// MaxScaleFactor] by magnitude.
func NewWallForce(regionID string, shape geom.Shape, box geom.Box, strength float64, variable bool, scaleFactor float64) *WallForce {
	kind := Rectangular
	if shape.IsElliptical() {
		kind = Elliptical
	}
	w := &WallForce{
		RegionID: regionID,
		Kind:     kind,
		Center:   box.Center(),
		Half:     box.Half(),
		In:       strength,
		Out:      strength,
		Variable: variable,
	}
	w.scaleFactor = clampScale(scaleFactor)
	return w
}

func clampScale(x float64) float64 {
	if math.IsNaN(x) || x == 0 {
		return DefaultScaleFactor
	}
	sign := 1.0
	if x < 0 {
		sign = -1
	}
	return sign * math.Min(math.Max(math.Abs(x), MinScaleFactor), MaxScaleFactor)
}

// Name implements Force.
func (w *WallForce) Name() string { return w.Kind.String() + " wall " + w.RegionID }

// ScaleFactor returns the factor applied by ScaleStrength.
func (w *WallForce) ScaleFactor() float64 { return w.scaleFactor }

// SetScaleFactor updates the scale factor. Values whose magnitude lies
// outside [MinScaleFactor, MaxScaleFactor] are rejected and leave the wall
// unchanged.
func (w *WallForce) SetScaleFactor(x float64) bool {
	a := math.Abs(x)
	if a < MinScaleFactor || a > MaxScaleFactor {
		return false
	}
	w.scaleFactor = x
	return true
}

// ScaleStrength multiplies the constant for dir by the scale factor when
// variable strength is enabled. It reports whether the wall changed.
func (w *WallForce) ScaleStrength(dir geom.Direction) bool {
	if !w.Variable {
		return false
	}
	if dir == geom.In {
		w.In *= w.scaleFactor
	} else {
		w.Out *= w.scaleFactor
	}
	return true
}

// Apply implements Force.
func (w *WallForce) Apply(items []*Item) {
	for _, it := range items {
		if !it.Pos.IsFinite() {
			continue
		}
		member := w.ContainAll || it.Category == w.RegionID
		var f geom.Point
		switch w.Kind {
		case Elliptical:
			f = w.elliptical(it, member)
		default:
			f = w.rectangular(it, member)
		}
		it.Force = it.Force.Add(f)
	}
}

func (w *WallForce) rectangular(it *Item, member bool) geom.Point {
	dx := it.Pos.X - w.Center.X
	dy := it.Pos.Y - w.Center.Y
	hw, hh := w.Half.X, w.Half.Y
	outX := math.Abs(dx) > hw
	outY := math.Abs(dy) > hh
	m := it.Mass

	if !outX && !outY {
		if !member {
			return geom.Point{}
		}
		dLeft := clampDistance(hw + dx)
		dRight := clampDistance(hw - dx)
		dTop := clampDistance(hh + dy)
		dBottom := clampDistance(hh - dy)
		return geom.Point{
			X: w.In*m/(dLeft*dLeft) - w.In*m/(dRight*dRight),
			Y: w.In*m/(dTop*dTop) - w.In*m/(dBottom*dBottom),
		}
	}

	// Outside: a unit vector pointing away from the region and the distance
	// to the nearest edge or corner.
	var dir geom.Point
	var d float64
	switch {
	case outX && outY:
		cx := w.Center.X + math.Copysign(hw, dx)
		cy := w.Center.Y + math.Copysign(hh, dy)
		v := it.Pos.Sub(geom.Point{X: cx, Y: cy})
		d = v.Norm()
		dir = v.Scale(1 / d)
	case outX:
		d = math.Abs(dx) - hw
		dir = geom.Point{X: math.Copysign(1, dx)}
	default:
		d = math.Abs(dy) - hh
		dir = geom.Point{Y: math.Copysign(1, dy)}
	}
	d = clampDistance(d)
	mag := w.Out * m / (d * d)
	if member {
		mag = -mag
	}
	return dir.Scale(mag)
}

func (w *WallForce) elliptical(it *Item, member bool) geom.Point {
	dx := it.Pos.X - w.Center.X
	dy := it.Pos.Y - w.Center.Y
	r := math.Hypot(dx, dy)
	if r == 0 {
		return geom.Point{}
	}
	e := (dx*dx)/(w.Half.X*w.Half.X) + (dy*dy)/(w.Half.Y*w.Half.Y)
	rb := r / math.Sqrt(e) // distance from center to the boundary along this ray
	radial := geom.Point{X: dx / r, Y: dy / r}
	m := it.Mass

	if e < 1 {
		if !member {
			return geom.Point{}
		}
		near := clampDistance(rb - r)
		far := clampDistance(rb + r)
		mag := w.In * m * (1/(near*near) - 1/(far*far))
		return radial.Scale(-mag)
	}

	d := clampDistance(r - rb)
	mag := w.Out * m / (d * d)
	if member {
		mag = -mag
	}
	return radial.Scale(mag)
}
