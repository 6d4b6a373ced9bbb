package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/gridsolve/pkg/constraint"
	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
)

// DefaultMinExtent is the smallest size, in inches, a track or subplot may
// be solved to.
const DefaultMinExtent = 1e-4

// edge is the pair of variables bounding a track or subplot along one axis.
type edge struct {
	start, end *constraint.Variable
}

func (e edge) extent() constraint.Expression { return e.end.Expr().Minus(e.start.Expr()) }

func (e edge) center() constraint.Expression { return e.start.Expr().Plus(e.end.Expr()).Scale(0.5) }

// Model is a constraint system together with the variables the builder
// created for it.
type Model struct {
	*constraint.System

	Geometry *grid.Geometry
	Params   Params

	axes     [2]axisParams
	tracks   [2][]edge
	subplots map[int][2]edge
	floating map[int][2]bool
}

// Builder translates an analyzed arrangement into a constraint system.
type Builder struct {
	// MinExtent overrides DefaultMinExtent when positive.
	MinExtent float64
}

func (b Builder) minExtent() float64 {
	if b.MinExtent > 0 {
		return b.MinExtent
	}
	return DefaultMinExtent
}

// Build creates the variables and constraints for geo under p. Coordinates
// are inches from the left edge along X and from the top edge along Y.
//
// It fails with LAYOUT_INFEASIBLE when the fixed parts of p leave no room for
// the ratio tracks.
func (b Builder) Build(geo *grid.Geometry, p Params) (*Model, error) {
	m := &Model{
		System:   constraint.NewSystem(),
		Geometry: geo,
		Params:   p,
		subplots: make(map[int][2]edge, len(geo.IDs)),
		floating: make(map[int][2]bool, len(geo.IDs)),
	}
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		m.axes[ax] = p.axis(ax, geo.Tracks(ax))
		if err := b.feasible(ax, m.axes[ax]); err != nil {
			return nil, err
		}
	}

	m.variables()
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		b.boundary(m, ax)
	}
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		b.ordering(m, ax)
	}
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		b.ratios(m, ax)
	}
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		b.spacing(m, ax)
	}
	b.continuity(m)
	b.aesthetics(m)
	return m, nil
}

// feasible rejects axes whose margins, gaps and panels cannot be met before
// any solving happens.
func (b Builder) feasible(ax grid.Axis, ap axisParams) error {
	available := ap.available()
	panelSize, ratioTracks := ap.fixed()
	for i, panel := range ap.panels {
		if panel && ap.ratios[i] < b.minExtent() {
			return errors.New(errors.ErrCodeInfeasible, "panel track %d along %s is smaller than %g in", i, ax, b.minExtent())
		}
	}
	if ratioTracks == 0 {
		if math.Abs(panelSize-available) > constraint.DefaultFeasibleTolerance*(1+available) {
			return errors.New(errors.ErrCodeInfeasible,
				"panel tracks along %s take %g in but %g in are available", ax, panelSize, available)
		}
		return nil
	}
	if left := available - panelSize; left < b.minExtent()*float64(ratioTracks) {
		return errors.New(errors.ErrCodeInfeasible,
			"%g in left for %d ratio tracks along %s", left, ratioTracks, ax)
	}
	return nil
}

func (m *Model) variables() {
	names := [2]string{"col", "row"}
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		for i := range m.axes[ax].ratios {
			m.tracks[ax] = append(m.tracks[ax], edge{
				start: m.NewVariable(fmt.Sprintf("%s[%d].start", names[ax], i)),
				end:   m.NewVariable(fmt.Sprintf("%s[%d].end", names[ax], i)),
			})
		}
	}
	for _, id := range m.Geometry.IDs {
		var e [2]edge
		for _, ax := range []grid.Axis{grid.X, grid.Y} {
			e[ax] = edge{
				start: m.NewVariable(fmt.Sprintf("sub[%d].%s.start", id, ax)),
				end:   m.NewVariable(fmt.Sprintf("sub[%d].%s.end", id, ax)),
			}
		}
		m.subplots[id] = e
	}
}

func (b Builder) boundary(m *Model, ax grid.Axis) {
	ap, t := m.axes[ax], m.tracks[ax]
	m.Add(
		constraint.Eq(t[0].start.Expr(), constraint.Const(ap.startMargin), constraint.Required).
			Labeled(fmt.Sprintf("boundary %s start", ax)),
		constraint.Eq(t[len(t)-1].end.Expr(), constraint.Const(ap.extent-ap.endMargin), constraint.Required).
			Labeled(fmt.Sprintf("boundary %s end", ax)),
	)
}

func (b Builder) ordering(m *Model, ax grid.Axis) {
	minExtent := constraint.Const(b.minExtent())
	for i, t := range m.tracks[ax] {
		m.Add(constraint.Ge(t.extent(), minExtent, constraint.Required).
			Labeled(fmt.Sprintf("%s track %d extent", ax, i)))
	}
	for _, id := range m.Geometry.IDs {
		m.Add(constraint.Ge(m.subplots[id][ax].extent(), minExtent, constraint.Required).
			Labeled(fmt.Sprintf("subplot %d %s extent", id, ax)))
	}
}

// ratios ties every ratio track to the previous one by w_i*r_j = w_j*r_i and
// pins panel tracks to their size in inches.
func (b Builder) ratios(m *Model, ax grid.Axis) {
	ap, t := m.axes[ax], m.tracks[ax]
	prev := -1
	for i := range t {
		if ap.panels[i] {
			m.Add(constraint.Eq(t[i].extent(), constraint.Const(ap.ratios[i]), constraint.Required).
				Labeled(fmt.Sprintf("%s panel %d size", ax, i)))
			continue
		}
		if prev >= 0 {
			m.Add(constraint.Eq(
				t[prev].extent().Scale(ap.ratios[i]),
				t[i].extent().Scale(ap.ratios[prev]),
				constraint.Required,
			).Labeled(fmt.Sprintf("%s ratio %d:%d", ax, prev, i)))
		}
		prev = i
	}
}

func (b Builder) spacing(m *Model, ax grid.Axis) {
	ap, t := m.axes[ax], m.tracks[ax]
	for i, gap := range ap.gaps {
		m.Add(constraint.Eq(t[i].end.Expr().Add(gap), t[i+1].start.Expr(), constraint.Required).
			Labeled(fmt.Sprintf("%s gap %d", ax, i)))
	}
}

// continuity pins every edge that is not free to float onto its grid line and
// keeps fully adjacent subplots exactly one gap apart.
func (b Builder) continuity(m *Model) {
	geo := m.Geometry
	for _, id := range geo.IDs {
		var fl [2]bool
		for _, ax := range []grid.Axis{grid.X, grid.Y} {
			fl[ax] = m.floats(id, ax)
			if fl[ax] {
				continue
			}
			rg, e, t := geo.Spans[id].Along(ax), m.subplots[id][ax], m.tracks[ax]
			m.Add(
				constraint.Eq(e.start.Expr(), t[rg.Start].start.Expr(), constraint.Required).
					Labeled(fmt.Sprintf("subplot %d %s start on grid", id, ax)),
				constraint.Eq(e.end.Expr(), t[rg.End].end.Expr(), constraint.Required).
					Labeled(fmt.Sprintf("subplot %d %s end on grid", id, ax)),
			)
		}
		m.floating[id] = fl
	}

	for _, adj := range geo.Adjacent {
		if !adj.Full {
			continue
		}
		gap := m.axes[adj.Axis].gaps[adj.Gap]
		a, c := m.subplots[adj.A][adj.Axis], m.subplots[adj.B][adj.Axis]
		m.Add(constraint.Eq(a.end.Expr().Add(gap), c.start.Expr(), constraint.Required).
			Labeled(fmt.Sprintf("subplots %d|%d adjacent along %s", adj.A, adj.B, adj.Axis)))
	}
}

// floats reports whether id may leave its grid lines along ax: both sides
// border empty cells and no panel track lies in its free region or across
// its span.
func (m *Model) floats(id int, ax grid.Axis) bool {
	geo := m.Geometry
	if !geo.IsFloating(id, ax) {
		return false
	}
	free := geo.FreeRange(id, ax)
	for i := free.Start; i <= free.End; i++ {
		if m.axes[ax].panels[i] {
			return false
		}
	}
	across := geo.Spans[id].Along(ax.Other())
	for i := across.Start; i <= across.End; i++ {
		if m.axes[ax.Other()].panels[i] {
			return false
		}
	}
	return true
}

// aesthetics adds the soft constraints of floating subplots: containment in
// the free region, span extent, centering on neighbours and balance.
func (b Builder) aesthetics(m *Model) {
	geo := m.Geometry
	for _, id := range geo.IDs {
		for _, ax := range []grid.Axis{grid.X, grid.Y} {
			if !m.floating[id][ax] {
				continue
			}
			e, t := m.subplots[id][ax], m.tracks[ax]
			rg, free := geo.Spans[id].Along(ax), geo.FreeRange(id, ax)
			lo, hi := t[free.Start].start, t[free.End].end

			m.Add(
				constraint.Ge(e.start.Expr(), lo.Expr(), constraint.Required).
					Labeled(fmt.Sprintf("subplot %d %s start in free region", id, ax)),
				constraint.Le(e.end.Expr(), hi.Expr(), constraint.Required).
					Labeled(fmt.Sprintf("subplot %d %s end in free region", id, ax)),
				constraint.Eq(e.extent(), t[rg.End].end.Expr().Minus(t[rg.Start].start.Expr()), constraint.Strong).
					Labeled(fmt.Sprintf("subplot %d %s keeps span extent", id, ax)),
			)

			centered := false
			before, after := grid.SidesOf(ax.Other())
			for _, side := range []grid.Side{before, after} {
				if geo.Exposure[id][side] != grid.Occupied {
					continue
				}
				nbs := geo.Neighbors(id, side)
				if len(nbs) < 2 {
					continue
				}
				var centers []constraint.Expression
				for _, nb := range nbs {
					centers = append(centers, m.subplots[nb][ax].center())
				}
				mean := constraint.Sum(centers...).Scale(1 / float64(len(centers)))
				m.Add(constraint.Eq(e.center(), mean, constraint.Medium).
					Labeled(fmt.Sprintf("subplot %d %s centered on %v", id, ax, nbs)))
				centered = true
			}

			start, end := grid.SidesOf(ax)
			reach := geo.Reach[id]
			switch {
			case reach[start] == reach[end]:
				m.Add(constraint.Eq(e.start.Expr().Minus(lo.Expr()), hi.Expr().Minus(e.end.Expr()), constraint.Weak).
					Labeled(fmt.Sprintf("subplot %d %s balanced", id, ax)))
			case !centered:
				m.Add(
					constraint.Eq(e.start.Expr(), t[rg.Start].start.Expr(), constraint.Weak).
						Labeled(fmt.Sprintf("subplot %d %s start stays", id, ax)),
					constraint.Eq(e.end.Expr(), t[rg.End].end.Expr(), constraint.Weak).
						Labeled(fmt.Sprintf("subplot %d %s end stays", id, ax)),
				)
			}
		}
	}
}
