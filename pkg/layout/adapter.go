package layout

import (
	"github.com/matzehuels/gridsolve/pkg/constraint"
	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
)

// Adapter runs a Model through a constraint solver and reads the solution
// back as figure-fraction rectangles.
type Adapter struct {
	Solver constraint.Solver
}

func (ad Adapter) solver() constraint.Solver {
	if ad.Solver == nil {
		return constraint.NewSimplexSolver()
	}
	return ad.Solver
}

// Solve solves m. Errors carry the solver's code: LAYOUT_INFEASIBLE,
// SOLVER_UNAVAILABLE or NUMERICAL_DEGENERACY.
func (ad Adapter) Solve(m *Model) (constraint.Solution, error) {
	s := ad.solver()
	if err := s.Available(); err != nil {
		return constraint.Solution{}, err
	}
	sol, err := s.Solve(m.System)
	if err != nil {
		return constraint.Solution{}, err
	}
	if sol.Len() != len(m.Variables()) {
		return constraint.Solution{}, errors.New(errors.ErrCodeDegenerate,
			"solver returned %d values for %d variables", sol.Len(), len(m.Variables()))
	}
	return sol, nil
}

// Positions converts sol into rectangles. Edges pinned to the grid go through
// the same span compaction as the fallback; floating edges are taken as
// solved. A subplot that solved to a non-positive extent is reported as
// NUMERICAL_DEGENERACY.
func (ad Adapter) Positions(m *Model, sol constraint.Solution) (Positions, error) {
	var solved [2]tracks
	for _, ax := range []grid.Axis{grid.X, grid.Y} {
		t := tracks{panels: m.axes[ax].panels}
		for _, e := range m.tracks[ax] {
			t.starts = append(t.starts, sol.Value(e.start))
			t.ends = append(t.ends, sol.Value(e.end))
		}
		solved[ax] = t
	}

	pos := make(Positions, len(m.Geometry.IDs))
	for _, id := range m.Geometry.IDs {
		var lo, hi [2]float64
		for _, ax := range []grid.Axis{grid.X, grid.Y} {
			if m.floating[id][ax] {
				e := m.subplots[id][ax]
				lo[ax], hi[ax] = sol.Value(e.start), sol.Value(e.end)
			} else {
				lo[ax], hi[ax] = solved[ax].span(m.Geometry.Spans[id].Along(ax))
			}
			if !(hi[ax] > lo[ax]) {
				return nil, errors.New(errors.ErrCodeDegenerate,
					"subplot %d solved to extent %g along %s", id, hi[ax]-lo[ax], ax)
			}
		}
		pos[id] = toFraction(lo[grid.X], hi[grid.X], lo[grid.Y], hi[grid.Y], m.Params)
	}
	return pos, nil
}
