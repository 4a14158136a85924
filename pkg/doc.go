// Package pkg provides the libraries behind boundlayout, a force-directed
// layout engine that keeps every node inside the region it belongs to.
//
// # Overview
//
// A layout run takes boundary regions (rectangles or ellipses), particles
// tagged with the id of their owning region, and springs between particles.
// It returns particle positions such that each particle sits inside its own
// region and outside every other region that overlaps it. The pkg directory
// is organized into three areas:
//
//  1. [core] - The engine (geometry, free-space partition, regions, forces, simulation)
//  2. [scene] - Host file formats, result export and Graphviz rendering
//  3. [pipeline] - Orchestration (load → layout → render → store) with caching
//
// # Architecture
//
// The data flow of one run:
//
//	scene.toml / scene.json
//	         ↓
//	    [scene] package (regions, nodes, edges, [layout] options)
//	         ↓
//	    [core/sim] package (three-phase schedule + containment correction)
//	         ↓
//	    [scene] export (positions, per-region stats)
//	         ↓
//	    JSON / DOT / SVG output, [store] sinks
//
// # Quick Start
//
//	s, _ := scene.ReadFile("office.toml")
//	eng, _ := sim.NewEngine(s.Layout)
//	res, _ := eng.Run(context.Background(), s.Input())
//	for _, id := range res.IDs() {
//	    fmt.Println(id, res.Positions[id])
//	}
//
// # Main Packages
//
// [core/geom] - Boxes, points, shapes and the nearest-point projections used
// to push a particle back into or out of a region.
//
// [core/partition] - Decomposes a region's box around the regions it
// intersects; the free leaves seed new particles.
//
// [core/region] - Region state, the region set with its synthesized outer
// region, and the adaptive wall-strength counters.
//
// [core/force] - Springs, drag, Barnes-Hut repulsion, rectangular and
// elliptical walls, and the Euler and RK4 integrators.
//
// [core/sim] - The engine: options, the phase schedule, checkpoints and
// results.
//
// [cache] - File, Redis and null caches with content-addressed keys.
//
// [store] - Position sinks: memory, JSON files and MongoDB.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hooks for metrics and tracing; no-ops by default.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/core
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/core/geom
// [core/partition]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/core/partition
// [core/region]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/core/region
// [core/force]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/core/force
// [core/sim]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/core/sim
// [scene]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/boundlayout/pkg/observability
package pkg
