package constraint

import (
	"math"
	"testing"

	"github.com/matzehuels/gridsolve/pkg/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func TestSolveRequiredEqualities(t *testing.T) {
	sys := NewSystem()
	x, y := sys.NewVariable("x"), sys.NewVariable("y")
	sys.Add(
		Eq(x.Expr().Plus(y.Expr()), Const(10), Required),
		Eq(x.Expr().Minus(y.Expr()), Const(2), Required),
		// redundant copy of the first row
		Eq(x.Expr().Scale(2).Plus(y.Expr().Scale(2)), Const(20), Required),
	)

	sol, err := NewSimplexSolver().Solve(sys)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !approx(sol.Value(x), 6) || !approx(sol.Value(y), 4) {
		t.Errorf("x, y = %v, %v, want 6, 4", sol.Value(x), sol.Value(y))
	}
}

func TestSolveStrengthTiers(t *testing.T) {
	tests := []struct {
		name string
		cons func(x *Variable) []Constraint
		want float64
	}{
		{"strong beats weak", func(x *Variable) []Constraint {
			return []Constraint{Eq(x.Expr(), Const(5), Weak), Eq(x.Expr(), Const(3), Strong)}
		}, 3},
		{"medium beats weak", func(x *Variable) []Constraint {
			return []Constraint{Eq(x.Expr(), Const(2), Medium), Eq(x.Expr(), Const(8), Weak)}
		}, 2},
		{"required bound beats strong", func(x *Variable) []Constraint {
			return []Constraint{Le(x.Expr(), Const(4), Required), Eq(x.Expr(), Const(10), Strong)}
		}, 4},
		{"soft inequality", func(x *Variable) []Constraint {
			return []Constraint{Ge(x.Expr(), Const(7), Medium), Eq(x.Expr(), Const(1), Weak)}
		}, 7},
		{"soft inequality already met", func(x *Variable) []Constraint {
			return []Constraint{Le(x.Expr(), Const(7), Medium), Eq(x.Expr(), Const(1), Weak)}
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewSystem()
			x := sys.NewVariable("x")
			sys.Add(tt.cons(x)...)
			sol, err := NewSimplexSolver().Solve(sys)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if got := sol.Value(x); !approx(got, tt.want) {
				t.Errorf("x = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolveCentersBetweenBounds(t *testing.T) {
	// lo and hi are fixed by equalities; m floats between them
	sys := NewSystem()
	lo, hi, m := sys.NewVariable("lo"), sys.NewVariable("hi"), sys.NewVariable("m")
	sys.Add(
		Eq(lo.Expr(), Const(1), Required),
		Eq(hi.Expr(), Const(9), Required),
		Ge(m.Expr(), lo.Expr(), Required),
		Le(m.Expr(), hi.Expr(), Required),
		Eq(m.Expr().Minus(lo.Expr()), hi.Expr().Minus(m.Expr()), Weak),
	)
	sol, err := NewSimplexSolver().Solve(sys)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := sol.Value(m); !approx(got, 5) {
		t.Errorf("m = %v, want 5", got)
	}
}

func TestSolveUntouchedVariableStaysZero(t *testing.T) {
	sys := NewSystem()
	x := sys.NewVariable("x")
	sys.NewVariable("free")
	sys.Add(Eq(x.Expr(), Const(2), Weak))

	sol, err := NewSimplexSolver().Solve(sys)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sol.Len())
	}
	if !approx(sol.Value(x), 2) || sol.Values()[1] != 0 {
		t.Errorf("solution = %v, want [2 0]", sol.Values())
	}
}

func TestSolveInfeasible(t *testing.T) {
	tests := []struct {
		name string
		cons func(x *Variable) []Constraint
	}{
		{"contradicting equalities", func(x *Variable) []Constraint {
			return []Constraint{Eq(x.Expr(), Const(1), Required), Eq(x.Expr(), Const(2), Required)}
		}},
		{"contradicting inequalities", func(x *Variable) []Constraint {
			return []Constraint{Ge(x.Expr(), Const(5), Required), Le(x.Expr(), Const(3), Required)}
		}},
		{"pinned outside bound", func(x *Variable) []Constraint {
			return []Constraint{Eq(x.Expr(), Const(2), Required), Ge(x.Expr(), Const(3), Required)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewSystem()
			x := sys.NewVariable("x")
			sys.Add(tt.cons(x)...)
			_, err := NewSimplexSolver().Solve(sys)
			if !errors.IsInfeasible(err) {
				t.Errorf("Solve error = %v, want LAYOUT_INFEASIBLE", err)
			}
		})
	}
}

func TestSolveEmptySystem(t *testing.T) {
	sol, err := NewSimplexSolver().Solve(NewSystem())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Len() != 0 {
		t.Errorf("Len() = %d, want 0", sol.Len())
	}
}

func TestUnavailable(t *testing.T) {
	var s Solver = Unavailable{Reason: "disabled for test"}
	if err := s.Available(); !errors.IsUnavailable(err) {
		t.Errorf("Available() = %v, want SOLVER_UNAVAILABLE", err)
	}
	sys := NewSystem()
	sys.NewVariable("x")
	if _, err := s.Solve(sys); !errors.IsUnavailable(err) {
		t.Errorf("Solve() error = %v, want SOLVER_UNAVAILABLE", err)
	}
	if err := NewSimplexSolver().Available(); err != nil {
		t.Errorf("SimplexSolver.Available() = %v, want nil", err)
	}
}
