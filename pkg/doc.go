// Package pkg provides the libraries behind gridsolve, a layout solver for
// subplot arrangements that do not form a plain grid.
//
// # Overview
//
// A figure is described by an arrangement array, where each cell holds the
// id of the subplot covering it (0 for empty), and by physical parameters
// in inches. The output is one rectangle per subplot in figure fraction.
//
//	1 1 2 2
//	0 3 3 0
//
// Here subplot 3 straddles the boundary between 1 and 2. Instead of being
// pinned to the columns it spans, it is centered below its neighbours.
//
// # Architecture
//
//	arrangement + params
//	         ↓
//	    [grid] package (validate, classify, derive geometry)
//	         ↓
//	    [layout] package (build constraints or use grid arithmetic)
//	         ↓
//	    [constraint] package (solve required equalities, relax soft ones)
//	         ↓
//	    positions → [io] (JSON) or [render/preview] (SVG/PDF/PNG)
//
// # Quick Start
//
//	a, _ := grid.New([][]int{{1, 1, 2, 2}, {0, 3, 3, 0}})
//	pos, err := layout.Compute(a, layout.DefaultParams())
//	if err != nil {
//	    return err // only configuration errors are returned
//	}
//	fmt.Println(pos[3])
//
// # Main Packages
//
//   - [grid]: arrangement arrays, orthogonality check, spans and adjacency
//   - [constraint]: linear expressions, strength tiers and the simplex solver
//   - [layout]: parameters, constraint builder, fallback positioner, engine
//     and inset placement
//   - [cache]: in-memory memoization of computed layouts
//   - [errors]: coded errors shared by every package
//   - [observability]: hooks for classification, solve and cache events
//   - [io]: TOML and JSON request files, JSON export
//   - [render/preview]: SVG drawing of computed rectangles
//   - [render/adjacency]: Graphviz drawing of subplot adjacency
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/grid
// [constraint]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/constraint
// [layout]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/layout
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/observability
// [io]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/io
// [render/preview]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/render/preview
// [render/adjacency]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/render/adjacency
package pkg
