package force

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
)

// Item is one simulated particle.
type Item struct {
	ID       string
	Category string // owning region id

	Pos      geom.Point
	Prev     geom.Point // position before the last integration or teleport
	Velocity geom.Point
	Force    geom.Point // accumulator, cleared every step

	Mass          float64
	Width, Height float64
}

// Box returns the item's bounding box centered on its position.
func (it *Item) Box() geom.Box {
	return geom.CenteredBox(it.Pos, it.Width, it.Height)
}

// Teleport moves the item without injecting kinetic energy.
func (it *Item) Teleport(p geom.Point) {
	it.Pos = p
	it.Prev = p
	it.Velocity = geom.Point{}
}

// radius approximates the item's extent for overlap avoidance.
func (it *Item) radius() float64 {
	return 0.5 * max(it.Width, it.Height)
}

// body adapts an item to barneshut.Particle2.
type body struct{ it *Item }

func (b body) Coord2() r2.Vec { return r2.Vec{X: b.it.Pos.X, Y: b.it.Pos.Y} }
func (b body) Mass() float64  { return b.it.Mass }
