// Package region holds the per-region state of a layout run.
//
// A [Region] is one user-drawn boundary: its shape, its box, the regions
// that cut into it, the candidate seed points for its particles and the
// projection counters that drive adaptive wall stiffening.
//
// Regions are collected in a [Set], which is owned by the layout engine for
// the duration of one run. [Set.AddOuter] synthesizes the outer region that
// bounds every other region; particles without a matching category belong
// to it. [Set.Setup] computes intersections and seed points once, before
// the simulation starts.
//
// # Adaptive Scaling
//
// Every inward or outward projection is recorded with [Region.Record]. The
// decision whether to stiffen the wall is the pure function
// [ShouldRescale]; applying it is left to the caller, which owns the wall
// forces.
package region
