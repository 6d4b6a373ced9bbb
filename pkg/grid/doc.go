// Package grid models subplot arrangements and derives the geometry facts the
// layout solver needs.
//
// # Arrangements
//
// An [Array] is a 2D grid of integers. Zero marks an empty cell; a positive
// value is a subplot identifier. An identifier repeated over a rectangular
// block of cells spans that block:
//
//	[[1, 1, 2, 2],
//	 [0, 3, 3, 0]]
//
// Here subplots 1 and 2 share the top row and subplot 3 sits between them in
// the bottom row, flanked by empty cells.
//
// # Classification
//
// [IsOrthogonal] reports whether an arrangement is a plain gridspec partition.
// Orthogonal arrangements are positioned by direct arithmetic; the others go
// through the constraint solver so that subplots next to empty cells can be
// centered on their neighbours.
//
// # Geometry
//
// [Analyze] validates an arrangement (non-empty, every identifier rectangular)
// and returns a [Geometry] holding spans, per-side exposure, free reach into
// empty cells, adjacency pairs and centering neighbours. It is a pure
// derivation: the same array always yields the same geometry.
package grid
