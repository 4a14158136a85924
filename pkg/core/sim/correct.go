package sim

import (
	"context"
	"math/rand/v2"

	"github.com/matzehuels/boundlayout/pkg/core/force"
	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/observability"
)

// correct runs one containment correction pass and returns the number of
// particles it moved. It is a no-op without regions.
func (e *Engine) correct(ctx context.Context, iteration int) int {
	if e.regions.Len() == 0 {
		return 0
	}
	moved := 0
	for _, it := range e.items {
		if e.correctItem(ctx, it) {
			moved++
		}
	}
	e.checkpoints++
	observability.Layout().OnCheckpoint(ctx, iteration, moved)
	if moved > 0 {
		e.logger.Debug("checkpoint", "iteration", iteration, "moved", moved)
	}
	return moved
}

// correctItem enforces containment for one particle:
//
//  1. inside its owning region, projecting inward when it escaped
//  2. outside every region intersecting the owner, projecting outward,
//     smallest region first, repeated until no intersecting region holds
//     it or the owner is lost
//  3. back at a seed point of the owner if it is still not settled
func (e *Engine) correctItem(ctx context.Context, it *force.Item) bool {
	owner, ok := e.regions.Owner(it.Category)
	if !ok {
		return false
	}
	if !it.Pos.IsFinite() {
		e.reseed(it, owner)
		return true
	}

	moved := false
	if !owner.Contains(it.Box(), geom.In) {
		e.record(ctx, owner, geom.In)
		it.Teleport(owner.NearestPoint(it.Box(), geom.In))
		moved = true
	}

	// A push out of one region can land inside another one, so sweep
	// until a pass changes nothing. Each pass settles at least one region.
	for pass := 0; pass <= len(owner.Intersecting); pass++ {
		pushed := false
		for _, id := range owner.Intersecting {
			other, ok := e.regions.Get(id)
			if !ok || !other.Contains(it.Box(), geom.Out) {
				continue
			}
			it.Teleport(other.NearestPoint(it.Box(), geom.Out))
			e.record(ctx, other, geom.Out)
			moved, pushed = true, true
			if !owner.Contains(it.Box(), geom.In) {
				break
			}
		}
		if !pushed || !owner.Contains(it.Box(), geom.In) {
			break
		}
	}

	if moved && !e.settled(it.Box(), owner) {
		e.reseed(it, owner)
	}
	return moved
}

// settled reports whether box lies inside r and outside every region that
// intersects r.
func (e *Engine) settled(box geom.Box, r *region.Region) bool {
	if !r.Contains(box, geom.In) {
		return false
	}
	for _, id := range r.Intersecting {
		if other, ok := e.regions.Get(id); ok && other.Contains(box, geom.Out) {
			return false
		}
	}
	return true
}

// reseed moves it to an init point of r where it settles, starting the
// search at a random point. Init points come from free-space leaves that
// may be thinner than the particle; when none fits, a random one is used
// and projected inward as a last resort.
func (e *Engine) reseed(it *force.Item, r *region.Region) {
	n := len(r.InitPoints)
	if n > 0 {
		start := e.intn(n)
		for k := range n {
			p := r.InitPoints[(start+k)%n]
			if e.settled(geom.CenteredBox(p, it.Width, it.Height), r) {
				it.Teleport(p)
				return
			}
		}
	}
	it.Teleport(r.RandomInit(e.opts.Rand))
	if !r.Contains(it.Box(), geom.In) {
		it.Teleport(r.NearestPoint(it.Box(), geom.In))
	}
}

// intn returns a uniform int in [0, n) from the configured source.
func (e *Engine) intn(n int) int {
	if e.opts.Rand != nil {
		return e.opts.Rand.IntN(n)
	}
	return rand.IntN(n)
}

// record counts a projection on r and stiffens its wall when the count
// reaches a multiple of the region's scale interval. Before walls are
// active only the counter moves.
func (e *Engine) record(ctx context.Context, r *region.Region, dir geom.Direction) {
	if !r.Record(dir) {
		return
	}
	w, ok := e.walls[r.ID]
	if !ok || !w.ScaleStrength(dir) {
		return
	}
	constant := w.In
	if dir == geom.Out {
		constant = w.Out
	}
	observability.Layout().OnRescale(ctx, r.ID, dir.String(), constant)
	e.logger.Debug("wall rescaled",
		"region", r.ID,
		"direction", dir,
		"in", w.In,
		"out", w.Out,
		"projections_in", r.InCount,
		"projections_out", r.OutCount)
}
