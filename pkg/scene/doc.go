// Package scene reads and writes the files the boundlayout host works with.
//
// A scene bundles everything one layout run consumes: engine options, the
// boundary regions, the nodes (particles) and the edges (springs). Scenes
// are stored as TOML or JSON with the same shape:
//
//	name = "two-teams"
//
//	[layout]
//	num_iterations = 300
//	variable_wall_strength = true
//
//	[[region]]
//	id = "backend"
//	shape = "Rectangle"
//	x = 0
//	y = 0
//	width = 400
//	height = 300
//
//	[[node]]
//	id = "api"
//	width = 40
//	height = 20
//	category = "backend"
//
//	[[edge]]
//	source = "api"
//	target = "db"
//
// A finished run is exported with [NewExport] and written with
// [WriteExport]; [RenderSVG] draws the regions and pinned node positions
// through Graphviz.
package scene
