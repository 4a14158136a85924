// Package geom provides the geometry primitives shared by the layout engine.
//
// # Coordinates
//
// All values are in layout-space units with y growing downward, matching the
// host visualization. A [Box] is anchored at its top-left corner; particles
// are represented by boxes centered on their position (see [CenteredBox]).
//
// # Shapes
//
// Regions come in a closed set of [Shape] kinds: [Rectangle],
// [RoundedRectangle] and [Ellipse]. Rounded rectangles use rectangular
// semantics everywhere. Every geometry operation switches exhaustively over
// the shape kind; there is no open-ended polymorphism.
//
// # Containment and Projection
//
// [Contains] answers two questions depending on the [Direction]:
//
//   - [In]: does the particle box lie entirely inside the region?
//   - [Out]: has the particle box entered the region at all?
//
// [NearestPoint] moves a particle box to just inside (In) or just outside
// (Out) a region boundary along the ray from the region center, nudged by
// 1.5% so the same correction does not trigger again on the next check.
package geom
