// Package sim runs boundary-constrained force-directed layouts.
//
// # Overview
//
// An [Engine] takes regions, particles and edges ([Input]) and returns final
// particle positions ([Result]). Particles are simulated as point masses
// connected by springs; every region contributes a wall force, and a
// periodic containment correction teleports particles that escaped their
// own region or entered an intersecting one.
//
// # Schedule
//
// A run of n iterations is split into three phases:
//
//  1. [0, n/3): springs and drag only, speed limit 2
//  2. [n/3, 2n/3): wall forces for every region, configured speed limit
//  3. [2n/3, n): all-pairs repulsion
//
// The correction runs every n/CheckpointDivisor+1 iterations, at each phase
// transition and once after the last step. Cancellation through the context
// stops the run early and returns the current positions with
// [Result.Cancelled] set; it is not an error.
//
// # Regions
//
// When at least one region exists the engine synthesizes an outer region
// covering all of them (see region.OuterKey). Particles whose category
// matches no region belong to it. Without regions the engine runs a plain
// force-directed layout with no correction.
//
// # Usage
//
//	eng, err := sim.NewEngine(sim.Options{NumIterations: 300})
//	if err != nil {
//	    return err
//	}
//	res, err := eng.Run(ctx, input)
//	if err != nil {
//	    return err
//	}
//	for id, p := range res.Positions {
//	    fmt.Println(id, p)
//	}
package sim
