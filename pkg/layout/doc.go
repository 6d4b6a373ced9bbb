// Package layout computes figure-fraction rectangles for subplots arranged on
// a grid.
//
// # Overview
//
// An arrangement ([grid.Array]) assigns subplot ids to grid cells. Layouts
// that form a plain grid are positioned by direct arithmetic. Layouts where
// one subplot straddles the boundaries of others, such as
//
//	1 1 2 2
//	0 3 3 0
//
// are translated into a linear constraint system and solved, so that subplot
// 3 can center itself below 1 and 2 instead of being pinned to the columns it
// happens to span.
//
// # Usage
//
//	p := layout.DefaultParams()
//	p.WRatios = []float64{1, 2, 2, 1}
//	pos, err := layout.Compute(arr, p)
//
// For repeated use, configure an [Engine] once:
//
//	e := layout.NewEngine(
//	    layout.WithCache(cache.NewMemoryCache(0)),
//	    layout.WithLogger(logger),
//	)
//	pos, err := e.Compute(arr, p)
//
// # Constraint Model
//
// [Builder] creates variables in inches for every column, row and subplot
// edge and adds constraints in tiers of decreasing strength:
//
//   - Required: margins, minimum sizes, width and height ratios, spacing,
//     and edges that must sit on grid lines
//   - Strong: a floating subplot keeps the size of the tracks it spans
//   - Medium: a floating subplot centers on the subplots next to it
//   - Weak: equal slack on both sides, or staying on the grid lines
//
// # Fallback
//
// The facade never reports solver trouble to the caller. An infeasible,
// degenerate or unavailable solve is logged as a warning and answered by
// [Fallback], which always succeeds for valid input. Only configuration
// errors ([errors.ErrCodeInvalidConfig]) are returned.
//
// # Units
//
// [Params] is in inches. [Positions] and [Lines] are in figure fraction with
// the origin at the bottom-left corner. Insets ([SolveInset]) are in
// fractions of the host axes.
package layout
