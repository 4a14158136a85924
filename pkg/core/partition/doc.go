// Package partition decomposes a region's box into free-space rectangles.
//
// # Overview
//
// When regions overlap, particles belonging to one region should not start
// inside another. [Decompose] carves every overlapping box out of a region's
// box and returns a [Tree] whose uncovered leaves are disjoint rectangles
// covering the remaining free space. The layout engine seeds particles at
// the centers of those leaves.
//
// # Algorithm
//
// The tree is stored as an arena of [Node] values addressed by integer id.
// Starting at the root, the first overlap box that meets the node's interior
// is intersected with the node's box (call it I) and the node is split into
// up to four strips:
//
//	+------+-----+-------+
//	|      | TOP |       |
//	|      +-----+       |
//	| LEFT |  I  | RIGHT |
//	|      +-----+       |
//	|      | BOT |       |
//	+------+-----+-------+
//
// LEFT and RIGHT span the full height of the parent; TOP and BOTTOM span
// only I's width. Strips with zero area are omitted. Each child is split
// again by the remaining overlaps. A node entirely inside an overlap is
// marked [Node.Covered] and never yields a leaf.
//
// Leaves, I and the covered nodes tile the root box exactly, so the leaf
// areas plus the overlap area always sum to the root area.
//
// # Debugging
//
// [Tree.ToDOT] and [Tree.RenderSVG] draw the split hierarchy with Graphviz.
package partition
