package layout

import (
	"github.com/matzehuels/gridsolve/pkg/grid"
)

// Strategy positions the subplots of an analyzed arrangement.
type Strategy interface {
	Name() string
	Position(geo *grid.Geometry, p Params) (Positions, error)
}

// SolveStrategy builds a constraint model and solves it.
type SolveStrategy struct {
	Builder Builder
	Adapter Adapter
}

func (SolveStrategy) Name() string { return "solve" }

// Position fails with the solver's error code when the model cannot be
// solved; it never returns partial positions.
func (s SolveStrategy) Position(geo *grid.Geometry, p Params) (Positions, error) {
	m, err := s.Builder.Build(geo, p)
	if err != nil {
		return nil, err
	}
	sol, err := s.Adapter.Solve(m)
	if err != nil {
		return nil, err
	}
	return s.Adapter.Positions(m, sol)
}

// FallbackStrategy places subplots by direct grid arithmetic.
type FallbackStrategy struct{}

func (FallbackStrategy) Name() string { return "fallback" }

// Position never fails.
func (FallbackStrategy) Position(geo *grid.Geometry, p Params) (Positions, error) {
	return fallback(geo, p), nil
}
