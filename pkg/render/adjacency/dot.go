package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridsolve/pkg/grid"
)

// Options configures adjacency graph rendering.
type Options struct {
	// Detailed adds each subplot's span and side exposure to its label.
	Detailed bool
	// Centering adds arrows from floating subplots to their centering
	// neighbours.
	Centering bool
}

// ToDOT converts an analyzed arrangement to Graphviz DOT format. Vertical
// adjacency drives the ranks, so stacked subplots are drawn top to bottom.
func ToDOT(geo *grid.Geometry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range geo.IDs {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", id, fmtLabel(geo, id, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, adj := range geo.Adjacent {
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", adj.A, adj.B, strings.Join(fmtAttrs(adj), ", "))
	}

	if opts.Centering {
		buf.WriteString("\n")
		for _, id := range geo.IDs {
			for _, nb := range centeringTargets(geo, id) {
				fmt.Fprintf(&buf, "  %d -> %d [style=dotted, color=grey40, constraint=false];\n", id, nb)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(geo *grid.Geometry, id int, detailed bool) string {
	if !detailed {
		return strconv.Itoa(id)
	}
	s := geo.Spans[id]
	parts := []string{
		fmt.Sprintf("rows: %d-%d", s.Rows.Start, s.Rows.End),
		fmt.Sprintf("cols: %d-%d", s.Cols.Start, s.Cols.End),
	}
	for _, side := range grid.Sides {
		if exp := geo.Exposure[id][side]; exp == grid.Empty {
			parts = append(parts, fmt.Sprintf("%s: empty x%d", side, geo.Reach[id][side]))
		}
	}
	return strconv.Itoa(id) + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(adj grid.Adjacency) []string {
	attrs := []string{"dir=none"}
	if adj.Axis == grid.X {
		attrs = append(attrs, "constraint=false", "color=steelblue")
	}
	if !adj.Full {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// centeringTargets returns the neighbours a subplot floating along X centers
// on, taken from whichever perpendicular side has at least two of them.
func centeringTargets(geo *grid.Geometry, id int) []int {
	var out []int
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		if !geo.IsFloating(id, ax) {
			continue
		}
		before, after := grid.SidesOf(ax.Other())
		for _, side := range []grid.Side{before, after} {
			if geo.Exposure[id][side] != grid.Occupied {
				continue
			}
			if nbs := geo.Neighbors(id, side); len(nbs) >= 2 {
				out = append(out, nbs...)
			}
		}
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
