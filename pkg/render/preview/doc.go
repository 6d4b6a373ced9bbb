// Package preview draws computed subplot rectangles as SVG.
//
// The output shows the figure boundary, one labelled rectangle per subplot
// and, optionally, the dashed grid lines the layout was built on. It is meant
// for checking a layout by eye, not for publication.
//
//	svg := preview.RenderSVG(pos,
//	    preview.WithFigure(p.FigWidth, p.FigHeight),
//	    preview.WithLines(lines),
//	)
package preview
