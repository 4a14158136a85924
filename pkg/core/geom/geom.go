package geom

import (
	"fmt"
	"math"
)

// Point is a 2D location in layout space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool { return isFinite(p.X) && isFinite(p.Y) }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	X float64 `json:"x"` // top-left corner
	Y float64 `json:"y"`
	W float64 `json:"w"` // extents, positive for any valid region
	H float64 `json:"h"`
}

// CenteredBox returns the box of size w×h centered on c.
func CenteredBox(c Point, w, h float64) Box {
	return Box{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// MinX returns the left edge.
func (b Box) MinX() float64 { return b.X }

// MaxX returns the right edge.
func (b Box) MaxX() float64 { return b.X + b.W }

// MinY returns the top edge.
func (b Box) MinY() float64 { return b.Y }

// MaxY returns the bottom edge.
func (b Box) MaxY() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b Box) Center() Point { return Point{b.X + b.W/2, b.Y + b.H/2} }

// Half returns the half extents of the box.
func (b Box) Half() Point { return Point{b.W / 2, b.H / 2} }

// Area returns W×H, or zero for empty boxes.
func (b Box) Area() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.W * b.H
}

// IsEmpty reports whether the box has no interior.
func (b Box) IsEmpty() bool { return b.W <= 0 || b.H <= 0 }

// Intersects reports whether the interiors of b and o overlap.
// Boxes that merely share an edge do not intersect.
func (b Box) Intersects(o Box) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.X < b.MaxX() && o.MaxX() > b.X && o.Y < b.MaxY() && o.MaxY() > b.Y
}

// Contains reports whether o lies entirely within b (edges inclusive).
func (b Box) Contains(o Box) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.X >= b.X && o.Y >= b.Y && o.MaxX() <= b.MaxX() && o.MaxY() <= b.MaxY()
}

// ContainsPoint reports whether p lies within b (edges inclusive).
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.X && p.X <= b.MaxX() && p.Y >= b.Y && p.Y <= b.MaxY()
}

// Intersect returns the overlap of b and o. The result is empty when the
// boxes do not intersect.
func (b Box) Intersect(o Box) Box {
	x0 := math.Max(b.X, o.X)
	y0 := math.Max(b.Y, o.Y)
	x1 := math.Min(b.MaxX(), o.MaxX())
	y1 := math.Min(b.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Box{X: x0, Y: y0}
	}
	return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	x0 := math.Min(b.X, o.X)
	y0 := math.Min(b.Y, o.Y)
	x1 := math.Max(b.MaxX(), o.MaxX())
	y1 := math.Max(b.MaxY(), o.MaxY())
	return Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ScaleAboutCenter returns b grown (f > 1) or shrunk (f < 1) around its center.
func (b Box) ScaleAboutCenter(f float64) Box {
	return CenteredBox(b.Center(), b.W*f, b.H*f)
}

func (b Box) String() string {
	return fmt.Sprintf("(%g, %g, %g×%g)", b.X, b.Y, b.W, b.H)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
