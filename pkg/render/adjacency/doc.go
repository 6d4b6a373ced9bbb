// Package adjacency renders the subplot adjacency graph of an arrangement.
//
// # Overview
//
// Each subplot becomes a node. Subplots that touch across a grid line are
// joined by an edge: solid when they share their full edge, dashed when they
// only overlap in part. With [Options.Centering], dotted arrows lead from a
// floating subplot to the neighbours it centers on.
//
// # Usage
//
//	geo, err := grid.Analyze(arr)
//	dot := adjacency.ToDOT(geo, adjacency.Options{Centering: true})
//	svg, err := adjacency.RenderSVG(dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package adjacency
