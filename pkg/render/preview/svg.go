package preview

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/gridsolve/pkg/layout"
)

// DPI converts figure inches to SVG user units.
const DPI = 72.0

var palette = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948", "#b07aa1", "#ff9da7"}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64 // inches
	lines         *layout.Lines
	labels        bool
}

func WithFigure(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}
func WithLines(l layout.Lines) SVGOption { return func(r *svgRenderer) { r.lines = &l } }
func WithoutLabels() SVGOption           { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws pos on a figure of the configured size, 10x8 inches unless
// set with WithFigure.
func RenderSVG(pos layout.Positions, opts ...SVGOption) []byte {
	r := svgRenderer{width: layout.DefaultFigWidth, height: layout.DefaultFigHeight, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	w, h := r.width*DPI, r.height*DPI

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="white" stroke="black" stroke-width="1"/>`+"\n", w, h)

	if r.lines != nil {
		renderLines(&buf, *r.lines, w, h)
	}
	for i, id := range pos.IDs() {
		renderSubplot(&buf, id, pos[id], palette[i%len(palette)], w, h, r.labels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderSubplot flips the bottom-up figure fraction into top-down SVG space.
func renderSubplot(buf *bytes.Buffer, id int, rect layout.Rect, color string, w, h float64, label bool) {
	x, y := rect.Left*w, (1-rect.Top())*h
	rw, rh := rect.Width*w, rect.Height*h
	fmt.Fprintf(buf, `  <rect id="subplot-%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="1.5"/>`+"\n",
		id, x, y, rw, rh, color, color)
	if label {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%d</text>`+"\n",
			x+rw/2, y+rh/2, min(rw, rh)/3, id)
	}
}

func renderLines(buf *bytes.Buffer, l layout.Lines, w, h float64) {
	const style = `stroke="#999999" stroke-width="0.75" stroke-dasharray="4 3"`
	for _, xs := range [][]float64{l.Lefts, l.Rights} {
		for _, x := range xs {
			fmt.Fprintf(buf, `  <line x1="%.2f" y1="0" x2="%.2f" y2="%.2f" %s/>`+"\n", x*w, x*w, h, style)
		}
	}
	for _, ys := range [][]float64{l.Tops, l.Bottoms} {
		for _, y := range ys {
			fmt.Fprintf(buf, `  <line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`+"\n", (1-y)*h, w, (1-y)*h, style)
		}
	}
}
