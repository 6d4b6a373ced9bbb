// Package render provides visual output for computed layouts.
//
// # Overview
//
// Layouts are numbers; these packages turn them into pictures for debugging:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Rectangle previews of solved positions (in [preview] subpackage)
//   - Subplot adjacency graphs (in [adjacency] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := preview.RenderSVG(pos, preview.WithFigure(10, 8))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Adjacency Graphs
//
// The [adjacency] subpackage draws which subplots touch which, and which
// subplots a floating subplot centers on, using Graphviz.
//
//	dot := adjacency.ToDOT(geo, adjacency.Options{Centering: true})
//	svg, err := adjacency.RenderSVG(dot)
//
// [preview]: github.com/matzehuels/gridsolve/pkg/render/preview
// [adjacency]: github.com/matzehuels/gridsolve/pkg/render/adjacency
package render
