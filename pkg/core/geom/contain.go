package geom

import "math"

// Direction selects which side of a region boundary a test or projection
// targets.
type Direction int

const (
	// In keeps a particle box entirely inside its own region.
	In Direction = 1
	// Out pushes a particle box entirely outside an intersecting region.
	Out Direction = -1
)

func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}

const (
	// inNudge and outNudge keep projected particles 1.5% away from the
	// boundary they were projected onto.
	inNudge  = 0.985
	outNudge = 1.015

	bisectSteps = 40
)

// Contains tests a particle box against a region.
//
// With In it reports whether the whole box lies inside the region; with Out
// it reports whether any part of the box has entered the region. Boxes with
// non-finite coordinates are never contained.
func Contains(shape Shape, region, item Box, dir Direction) bool {
	c := item.Center()
	if !c.IsFinite() {
		return false
	}
	rc := region.Center()
	half := item.Half()
	dx := math.Abs(c.X-rc.X) + half.X*float64(dir)
	dy := math.Abs(c.Y-rc.Y) + half.Y*float64(dir)

	switch shape {
	case Ellipse:
		if dir == Out {
			dx, dy = math.Max(dx, 0), math.Max(dy, 0)
		}
		return ellipseTerm(dx, region.W/2)+ellipseTerm(dy, region.H/2) < 1
	case Rectangle, RoundedRectangle:
		return dx <= region.W/2 && dy <= region.H/2
	}
	return false
}

// EllipseValue evaluates (dx/a)² + (dy/b)² for p against the ellipse
// inscribed in region. Values below 1 are inside, above 1 outside.
func EllipseValue(region Box, p Point) float64 {
	rc := region.Center()
	return ellipseTerm(p.X-rc.X, region.W/2) + ellipseTerm(p.Y-rc.Y, region.H/2)
}

func ellipseTerm(d, semi float64) float64 {
	return (d * d) / (semi * semi)
}

// NearestPoint returns the new center for item so that it sits just inside
// (In) or just outside (Out) region, moving along the ray from the region
// center through the item.
//
// For In projections the result is guaranteed to satisfy Contains whenever
// the item fits inside the region at all; otherwise the region center is
// returned.
func NearestPoint(shape Shape, region, item Box, dir Direction) Point {
	p := project(shape, region, item, dir)
	if dir == Out {
		return p
	}
	if Contains(shape, region, CenteredBox(p, item.W, item.H), In) {
		return p
	}
	return bisectInside(shape, region, item, p)
}

func project(shape Shape, region, item Box, dir Direction) Point {
	rc := region.Center()
	half := item.Half()

	d := item.Center().Sub(rc)
	if d.X == 0 && d.Y == 0 {
		d = Point{X: 1}
	}
	sx, sy := signOf(d.X), signOf(d.Y)

	// corner is the particle corner that must cross the boundary: the far
	// corner for In, the near corner for Out.
	var corner Point
	if dir == In {
		corner = Point{d.X + half.X*sx, d.Y + half.Y*sy}
	} else {
		corner = Point{
			sx * math.Max(math.Abs(d.X)-half.X, 0),
			sy * math.Max(math.Abs(d.Y)-half.Y, 0),
		}
		if corner.X == 0 && corner.Y == 0 {
			if math.Abs(d.Y) > math.Abs(d.X) {
				corner = Point{Y: sy}
			} else {
				corner = Point{X: sx}
			}
		}
	}

	var scale float64
	switch shape {
	case Ellipse:
		scale = ellipseScale(region, corner)
	case Rectangle, RoundedRectangle:
		scale = rectangleScale(region, corner)
	}
	if dir == In {
		scale *= inNudge
	} else {
		scale *= outNudge
	}
	corner = corner.Scale(scale)

	if dir == In {
		return Point{rc.X + corner.X - half.X*sx, rc.Y + corner.Y - half.Y*sy}
	}
	out := rc.Add(d)
	if corner.X != 0 {
		out.X = rc.X + corner.X + half.X*sx
	}
	if corner.Y != 0 {
		out.Y = rc.Y + corner.Y + half.Y*sy
	}
	return out
}

// rectangleScale scales v onto the rectangle boundary, choosing the edge
// pair the ray hits first.
func rectangleScale(region Box, v Point) float64 {
	if v.X == 0 || region.H/region.W <= math.Abs(v.Y/v.X) {
		return (region.H / 2) / math.Abs(v.Y)
	}
	return (region.W / 2) / math.Abs(v.X)
}

func ellipseScale(region Box, v Point) float64 {
	return 1 / math.Sqrt(ellipseTerm(v.X, region.W/2)+ellipseTerm(v.Y, region.H/2))
}

// bisectInside finds the contained center closest to target on the segment
// from the region center.
func bisectInside(shape Shape, region, item Box, target Point) Point {
	rc := region.Center()
	if !Contains(shape, region, CenteredBox(rc, item.W, item.H), In) {
		return rc
	}
	if !target.IsFinite() {
		return rc
	}
	lo, hi := 0.0, 1.0
	for range bisectSteps {
		mid := (lo + hi) / 2
		p := rc.Add(target.Sub(rc).Scale(mid))
		if Contains(shape, region, CenteredBox(p, item.W, item.H), In) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return rc.Add(target.Sub(rc).Scale(lo))
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
