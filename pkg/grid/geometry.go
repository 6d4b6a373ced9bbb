package grid

import (
	"cmp"
	"slices"

	"github.com/matzehuels/gridsolve/pkg/errors"
)

// Exposure classifies what lies beyond one side of a subplot.
type Exposure int

const (
	// Occupied means at least one neighbouring cell belongs to another subplot.
	Occupied Exposure = iota
	// Empty means every neighbouring cell is empty.
	Empty
	// Border means the side lies on the outer edge of the grid.
	Border
)

func (e Exposure) String() string {
	return [...]string{"occupied", "empty", "border"}[e]
}

// Adjacency records two subplots whose spans touch across a grid line.
type Adjacency struct {
	A, B int  // A precedes B along Axis (A is left of or above B)
	Axis Axis // X: side by side across a column line; Y: stacked across a row line
	Gap  int  // index of the gap between track Gap and Gap+1
	Full bool // perpendicular ranges are identical
}

// Geometry holds the facts derived from an arrangement. It is read-only once
// returned by [Analyze].
type Geometry struct {
	Array Array
	Rows  int
	Cols  int
	IDs   []int
	Spans map[int]Span

	// Exposure and Reach are indexed by id, then by Side.
	Exposure map[int][4]Exposure
	Reach    map[int][4]int

	Adjacent []Adjacency
}

// Analyze validates the arrangement and derives its geometry.
// It fails with a configuration error for an empty array or for an identifier
// whose cells do not fill its bounding box.
func Analyze(a Array) (*Geometry, error) {
	if a.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "arrangement array is empty")
	}
	spans := a.Bounds()
	if err := validateRectangular(a, spans); err != nil {
		return nil, err
	}

	g := &Geometry{
		Array:    a,
		Rows:     a.Rows(),
		Cols:     a.Cols(),
		IDs:      a.IDs(),
		Spans:    spans,
		Exposure: make(map[int][4]Exposure, len(spans)),
		Reach:    make(map[int][4]int, len(spans)),
	}
	for _, id := range g.IDs {
		var exp [4]Exposure
		var reach [4]int
		for _, side := range Sides {
			exp[side], reach[side] = g.probe(spans[id], side)
		}
		g.Exposure[id] = exp
		g.Reach[id] = reach
	}
	g.Adjacent = g.adjacency()
	return g, nil
}

func validateRectangular(a Array, spans map[int]Span) error {
	for id, s := range spans {
		for r := s.Rows.Start; r <= s.Rows.End; r++ {
			for c := s.Cols.Start; c <= s.Cols.End; c++ {
				if a[r][c] != id {
					return errors.New(errors.ErrCodeInvalidConfig,
						"subplot %d does not occupy a rectangle: cell (%d, %d) holds %d", id, r, c, a[r][c])
				}
			}
		}
	}
	return nil
}

// Tracks returns the number of tracks along ax.
func (g *Geometry) Tracks(ax Axis) int {
	if ax == X {
		return g.Cols
	}
	return g.Rows
}

// IsFloating reports whether both sides of id along ax border empty cells.
// Such a subplot is not pinned to the grid along ax.
func (g *Geometry) IsFloating(id int, ax Axis) bool {
	start, end := SidesOf(ax)
	exp := g.Exposure[id]
	return exp[start] == Empty && exp[end] == Empty
}

// FreeRange returns the tracks along ax that id may occupy when floating:
// its own span extended by its reach on both sides.
func (g *Geometry) FreeRange(id int, ax Axis) Range {
	start, end := SidesOf(ax)
	rg := g.Spans[id].Along(ax)
	reach := g.Reach[id]
	return Range{rg.Start - reach[start], rg.End + reach[end]}
}

// Neighbors returns the subplots found in the nearest occupied line of cells
// beyond side, restricted to id's perpendicular range. These are the subplots
// a floating subplot is centered on.
func (g *Geometry) Neighbors(id int, side Side) []int {
	s := g.Spans[id]
	ax := side.Axis()
	across := s.Along(ax.Other())
	step, from := 1, s.Along(ax).End+1
	if side.IsStart() {
		step, from = -1, s.Along(ax).Start-1
	}
	for line := from; line >= 0 && line < g.Tracks(ax); line += step {
		var ids []int
		for i := across.Start; i <= across.End; i++ {
			if v := g.cell(ax, line, i); v != 0 && !slices.Contains(ids, v) {
				ids = append(ids, v)
			}
		}
		if len(ids) > 0 {
			slices.Sort(ids)
			return ids
		}
	}
	return nil
}

// cell returns the value at track index line along ax and index i across it.
func (g *Geometry) cell(ax Axis, line, i int) int {
	if ax == X {
		return g.Array[i][line]
	}
	return g.Array[line][i]
}

// probe classifies one side of a span and counts how many consecutive empty
// lines of cells lie beyond it.
func (g *Geometry) probe(s Span, side Side) (Exposure, int) {
	ax := side.Axis()
	across := s.Along(ax.Other())
	step, line := 1, s.Along(ax).End+1
	if side.IsStart() {
		step, line = -1, s.Along(ax).Start-1
	}
	if line < 0 || line >= g.Tracks(ax) {
		return Border, 0
	}

	reach := 0
	for ; line >= 0 && line < g.Tracks(ax); line += step {
		if !g.lineEmpty(ax, line, across) {
			break
		}
		reach++
	}
	if reach == 0 {
		return Occupied, 0
	}
	return Empty, reach
}

func (g *Geometry) lineEmpty(ax Axis, line int, across Range) bool {
	for i := across.Start; i <= across.End; i++ {
		if g.cell(ax, line, i) != 0 {
			return false
		}
	}
	return true
}

// adjacency finds every pair of subplots whose spans touch across a grid line.
func (g *Geometry) adjacency() []Adjacency {
	var out []Adjacency
	for i, a := range g.IDs {
		for _, b := range g.IDs[i+1:] {
			for _, ax := range []Axis{X, Y} {
				if adj, ok := touching(a, g.Spans[a], b, g.Spans[b], ax); ok {
					out = append(out, adj)
				}
			}
		}
	}
	slices.SortFunc(out, func(x, y Adjacency) int {
		return cmp.Or(cmp.Compare(x.Axis, y.Axis), cmp.Compare(x.Gap, y.Gap),
			cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})
	return out
}

func touching(a int, sa Span, b int, sb Span, ax Axis) (Adjacency, bool) {
	pa, pb := sa.Along(ax.Other()), sb.Along(ax.Other())
	if !pa.Overlaps(pb) {
		return Adjacency{}, false
	}
	ra, rb := sa.Along(ax), sb.Along(ax)
	switch {
	case ra.End+1 == rb.Start:
		return Adjacency{A: a, B: b, Axis: ax, Gap: ra.End, Full: pa == pb}, true
	case rb.End+1 == ra.Start:
		return Adjacency{A: b, B: a, Axis: ax, Gap: rb.End, Full: pa == pb}, true
	}
	return Adjacency{}, false
}
