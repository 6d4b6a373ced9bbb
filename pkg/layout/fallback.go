package layout

import (
	"math"

	"github.com/matzehuels/gridsolve/pkg/grid"
)

// tracks holds solved track boundaries along one axis, in inches from the
// axis start edge.
type tracks struct {
	starts []float64
	ends   []float64
	panels []bool
}

// arithmeticTracks places tracks by cumulative sums: panel tracks take their
// ratio in inches, the remaining space is split among ratio tracks.
func arithmeticTracks(ap axisParams) tracks {
	n := len(ap.ratios)
	t := tracks{starts: make([]float64, n), ends: make([]float64, n), panels: ap.panels}

	panelSize, _ := ap.fixed()
	remaining := max(ap.available()-panelSize, 0)
	var ratioSum float64
	for i, r := range ap.ratios {
		if !ap.panels[i] {
			ratioSum += r
		}
	}

	pos := ap.startMargin
	for i, r := range ap.ratios {
		size := r
		if !ap.panels[i] {
			size = 0
			if ratioSum > 0 {
				size = remaining * r / ratioSum
			}
		}
		t.starts[i] = pos
		t.ends[i] = pos + size
		if i < n-1 {
			pos = t.ends[i] + ap.gaps[i]
		}
	}
	return t
}

// baseGap is the smallest gap between two consecutive ratio tracks, or zero
// when no such pair exists.
func (t tracks) baseGap() float64 {
	gap := math.Inf(1)
	for i := 0; i+1 < len(t.starts); i++ {
		if !t.panels[i] && !t.panels[i+1] {
			gap = min(gap, t.starts[i+1]-t.ends[i])
		}
	}
	if math.IsInf(gap, 1) {
		return 0
	}
	return gap
}

// span returns the extent of rg. A span that crosses panel tracks but also
// holds two or more ratio tracks is compacted: it keeps the size of its ratio
// tracks plus one base gap between each, centered within the full span.
func (t tracks) span(rg grid.Range) (start, end float64) {
	start, end = t.starts[rg.Start], t.ends[rg.End]

	var size float64
	effective := 0
	for i := rg.Start; i <= rg.End; i++ {
		if !t.panels[i] {
			size += t.ends[i] - t.starts[i]
			effective++
		}
	}
	if effective <= 1 || effective == rg.Len() {
		return start, end
	}

	desired := size + float64(effective-1)*t.baseGap()
	if full := end - start; desired < full {
		start += (full - desired) / 2
		end = start + desired
	}
	return start, end
}

// Lines holds the per-track boundaries of a layout in figure fraction.
// Columns run left to right and rows top to bottom.
type Lines struct {
	Lefts   []float64 `json:"lefts"`
	Rights  []float64 `json:"rights"`
	Tops    []float64 `json:"tops"`
	Bottoms []float64 `json:"bottoms"`
}

// GridLines returns the column and row boundaries of a in figure fraction.
func GridLines(a grid.Array, p Params) (Lines, error) {
	if err := p.Validate(a); err != nil {
		return Lines{}, err
	}
	cols := arithmeticTracks(p.axis(grid.X, a.Cols()))
	rows := arithmeticTracks(p.axis(grid.Y, a.Rows()))

	var l Lines
	for i := range cols.starts {
		l.Lefts = append(l.Lefts, cols.starts[i]/p.FigWidth)
		l.Rights = append(l.Rights, cols.ends[i]/p.FigWidth)
	}
	for i := range rows.starts {
		l.Tops = append(l.Tops, (p.FigHeight-rows.starts[i])/p.FigHeight)
		l.Bottoms = append(l.Bottoms, (p.FigHeight-rows.ends[i])/p.FigHeight)
	}
	return l, nil
}

// Fallback positions every subplot of a on the plain grid. It succeeds for
// any input that passes validation and needs no solver.
func Fallback(a grid.Array, p Params) (Positions, error) {
	if err := p.Validate(a); err != nil {
		return nil, err
	}
	geo, err := grid.Analyze(a)
	if err != nil {
		return nil, err
	}
	return fallback(geo, p), nil
}

func fallback(geo *grid.Geometry, p Params) Positions {
	cols := arithmeticTracks(p.axis(grid.X, geo.Cols))
	rows := arithmeticTracks(p.axis(grid.Y, geo.Rows))

	pos := make(Positions, len(geo.IDs))
	for _, id := range geo.IDs {
		s := geo.Spans[id]
		x0, x1 := cols.span(s.Cols)
		y0, y1 := rows.span(s.Rows)
		pos[id] = toFraction(x0, x1, y0, y1, p)
	}
	return pos
}

// toFraction converts inch extents measured from the top-left corner into a
// bottom-up figure fraction rectangle.
func toFraction(x0, x1, y0, y1 float64, p Params) Rect {
	return Rect{
		Left:   x0 / p.FigWidth,
		Bottom: (p.FigHeight - y1) / p.FigHeight,
		Width:  (x1 - x0) / p.FigWidth,
		Height: (y1 - y0) / p.FigHeight,
	}
}
