// Package force implements the particle simulation behind the layout.
//
// # Model
//
// Every graph node is an [Item]: a point mass with a bounding box, a
// velocity and a force accumulator. A [Simulator] owns the items and an
// ordered list of [Force] contributors. Each step clears the accumulators,
// lets every force add its contribution and then advances positions with
// the configured [Integrator].
//
// # Forces
//
//   - [Springs]: Hooke springs along graph edges
//   - [Drag]: velocity-proportional damping
//   - [Repulsion]: inverse-square repulsion between all items, approximated
//     with a Barnes-Hut quadtree (gonum spatial/barneshut)
//   - [WallForce]: inverse-square walls that keep member items inside a
//     rectangular or elliptical region and push other items away from it
//
// All distances entering an inverse-square law are clamped to
// [MinDistance] so forces stay finite at the boundary.
//
// # Units
//
// Timesteps follow the millisecond-style units of classic force-directed
// layout engines: a step of 50 moves an item by up to 50 times the speed
// limit. Velocity is capped at the simulator's speed limit after every
// integration.
package force
