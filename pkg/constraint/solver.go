package constraint

import (
	stderrors "errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/matzehuels/gridsolve/pkg/errors"
)

// Solver computes values for every variable of a System.
type Solver interface {
	// Available reports whether the solver can run in this process. A non-nil
	// result carries the SOLVER_UNAVAILABLE code.
	Available() error

	// Solve returns a value for every variable or an error; it never returns
	// a partial solution.
	Solve(sys *System) (Solution, error)
}

// Solution holds one value per variable of the solved System.
type Solution struct {
	values []float64
}

// NewSolution wraps values indexed by Variable.Index.
func NewSolution(values []float64) Solution { return Solution{values: values} }

// Value returns the solved value of v.
func (s Solution) Value(v *Variable) float64 { return s.values[v.index] }

// Len returns the number of solved variables.
func (s Solution) Len() int { return len(s.values) }

// Values returns the solved values indexed by Variable.Index.
func (s Solution) Values() []float64 { return s.values }

// Default tolerances of SimplexSolver.
const (
	DefaultRankTolerance     = 1e-10
	DefaultFeasibleTolerance = 1e-9
)

// SimplexSolver is the default Solver. It satisfies Required equalities
// exactly through an SVD and minimizes tier-weighted preference violation
// with a simplex over the remaining freedom.
type SimplexSolver struct {
	// RankTolerance is the relative singular value below which a direction
	// counts as free.
	RankTolerance float64
	// FeasibleTolerance bounds the residual accepted for Required constraints.
	FeasibleTolerance float64
}

// NewSimplexSolver returns a SimplexSolver with default tolerances.
func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{
		RankTolerance:     DefaultRankTolerance,
		FeasibleTolerance: DefaultFeasibleTolerance,
	}
}

// Available always succeeds: the solver is linked into the binary.
func (*SimplexSolver) Available() error { return nil }

// Solve solves sys. Contradicting Required constraints yield a
// LAYOUT_INFEASIBLE error; numerical trouble inside the factorization or the
// simplex yields NUMERICAL_DEGENERACY.
func (s *SimplexSolver) Solve(sys *System) (sol Solution, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeDegenerate, "constraint solve panicked: %v", r)
		}
	}()

	n := len(sys.Variables())
	if n == 0 {
		return Solution{}, nil
	}

	var hardEq, hardIneq, soft []Constraint
	for _, c := range sys.Constraints() {
		switch {
		case c.Strength != Required:
			soft = append(soft, c)
		case c.Op == EQ:
			hardEq = append(hardEq, c)
		default:
			hardIneq = append(hardIneq, c)
		}
	}

	x0, null, err := s.particular(hardEq, n)
	if err != nil {
		return Solution{}, err
	}

	x := x0
	if null != nil {
		if x, err = s.relax(x0, null, hardIneq, soft, n); err != nil {
			return Solution{}, err
		}
	} else {
		for _, c := range hardIneq {
			if v := c.Violation(NewSolution(x)); v > s.FeasibleTolerance*(1+math.Abs(c.Expr.Constant)) {
				return Solution{}, errors.New(errors.ErrCodeInfeasible,
					"required inequality %s cannot be met (short by %.3g)", describe(c), v)
			}
		}
	}

	sol = NewSolution(x)
	if err := s.verify(sol, hardEq, hardIneq); err != nil {
		return Solution{}, err
	}
	return sol, nil
}

// particular solves the Required equalities in the least-squares sense and
// returns a particular solution together with a basis of the null space
// (n x k, nil when k == 0).
func (s *SimplexSolver) particular(eqs []Constraint, n int) ([]float64, *mat.Dense, error) {
	if len(eqs) == 0 {
		null := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			null.Set(i, i, 1)
		}
		return make([]float64, n), null, nil
	}

	m := len(eqs)
	a := mat.NewDense(m, n, nil)
	b := make([]float64, m)
	for i, c := range eqs {
		a.SetRow(i, c.Expr.Coefficients(n))
		b[i] = -c.Expr.Constant
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return nil, nil, errors.New(errors.ErrCodeDegenerate, "SVD of required equalities did not converge")
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	rank := 0
	for _, sv := range values {
		if sv > s.RankTolerance*math.Max(values[0], 1) {
			rank++
		}
	}

	x := make([]float64, n)
	for i := 0; i < rank; i++ {
		var ub float64
		for r := 0; r < m; r++ {
			ub += u.At(r, i) * b[r]
		}
		scale := ub / values[i]
		for j := 0; j < n; j++ {
			x[j] += scale * v.At(j, i)
		}
	}

	for i, c := range eqs {
		if r := math.Abs(evalRow(a.RawRowView(i), x) - b[i]); r > s.FeasibleTolerance*(1+math.Abs(b[i])) {
			return nil, nil, errors.New(errors.ErrCodeInfeasible,
				"required constraints contradict each other (residual %.3g at %s)", r, describe(c))
		}
	}

	k := n - rank
	if k == 0 {
		return x, nil, nil
	}
	null := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		for i := 0; i < n; i++ {
			null.Set(i, j, v.At(i, rank+j))
		}
	}
	return x, null, nil
}

// relax minimizes weighted preference violation over x = x0 + N·z subject to
// the Required inequalities. The LP is in standard form: every row owns a
// slack column, which keeps the constraint matrix at full row rank.
func (s *SimplexSolver) relax(x0 []float64, null *mat.Dense, ineqs, soft []Constraint, n int) ([]float64, error) {
	_, k := null.Dims()

	type row struct {
		coef  []float64 // over the free directions z
		rhs   float64
		slack []float64 // coefficients of this row's own slack columns
		cost  []float64
	}
	project := func(c Constraint) ([]float64, float64) {
		a := c.Expr.Coefficients(n)
		coef := make([]float64, k)
		for j := 0; j < k; j++ {
			for i := 0; i < n; i++ {
				coef[j] += a[i] * null.At(i, j)
			}
		}
		return coef, -(evalRow(a, x0) + c.Expr.Constant)
	}

	var rows []row
	for _, c := range ineqs {
		coef, rhs := project(c)
		sign := 1.0
		if c.Op == LE {
			sign = -1
		}
		// sign·(a·x + c) - surplus = 0
		for j := range coef {
			coef[j] *= sign
		}
		rows = append(rows, row{coef: coef, rhs: rhs * sign, slack: []float64{-1}, cost: []float64{0}})
	}
	for _, c := range soft {
		coef, rhs := project(c)
		w := c.Strength.Weight()
		switch c.Op {
		case EQ:
			// a·x + c - over + under = 0
			rows = append(rows, row{coef: coef, rhs: rhs, slack: []float64{-1, 1}, cost: []float64{w, w}})
		case GE:
			// a·x + c + short - surplus = 0
			rows = append(rows, row{coef: coef, rhs: rhs, slack: []float64{1, -1}, cost: []float64{w, 0}})
		case LE:
			// a·x + c - excess + room = 0
			rows = append(rows, row{coef: coef, rhs: rhs, slack: []float64{-1, 1}, cost: []float64{w, 0}})
		}
	}
	if len(rows) == 0 {
		return x0, nil
	}

	// Free directions that no row touches would be zero columns; they stay at
	// zero, which keeps the minimum-norm particular solution.
	var used []int
	for j := 0; j < k; j++ {
		for _, r := range rows {
			if math.Abs(r.coef[j]) > s.RankTolerance {
				used = append(used, j)
				break
			}
		}
	}

	cols := 2 * len(used)
	for _, r := range rows {
		cols += len(r.slack)
	}
	a := mat.NewDense(len(rows), cols, nil)
	b := make([]float64, len(rows))
	c := make([]float64, cols)
	next := 2 * len(used)
	for i, r := range rows {
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
		}
		for p, j := range used {
			a.Set(i, 2*p, sign*r.coef[j])
			a.Set(i, 2*p+1, -sign*r.coef[j])
		}
		for q, sc := range r.slack {
			a.Set(i, next, sign*sc)
			c[next] = r.cost[q]
			next++
		}
		b[i] = sign * r.rhs
	}

	_, opt, err := lp.Simplex(c, a, b, s.FeasibleTolerance, nil)
	if err != nil {
		if stderrors.Is(err, lp.ErrInfeasible) {
			return nil, errors.Wrap(errors.ErrCodeInfeasible, err, "required inequalities cannot be met")
		}
		return nil, errors.Wrap(errors.ErrCodeDegenerate, err, "simplex failed")
	}

	x := append([]float64(nil), x0...)
	for p, j := range used {
		z := opt[2*p] - opt[2*p+1]
		for i := 0; i < n; i++ {
			x[i] += z * null.At(i, j)
		}
	}
	return x, nil
}

// verify rejects solutions that are not finite or break a Required constraint.
func (s *SimplexSolver) verify(sol Solution, eqs, ineqs []Constraint) error {
	for i, v := range sol.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeDegenerate, "variable %d solved to %v", i, v)
		}
	}
	for _, group := range [][]Constraint{eqs, ineqs} {
		for _, c := range group {
			if v := c.Violation(sol); v > s.FeasibleTolerance*(1+math.Abs(c.Expr.Constant)) {
				return errors.New(errors.ErrCodeDegenerate, "solution violates %s by %.3g", describe(c), v)
			}
		}
	}
	return nil
}

func evalRow(a, x []float64) float64 {
	var v float64
	for i := range a {
		v += a[i] * x[i]
	}
	return v
}

func describe(c Constraint) string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprint(c.Expr)
}

// Unavailable is a Solver that cannot run. It stands in for a solver backend
// that is missing from the build and lets callers exercise fallback paths.
type Unavailable struct {
	Reason string
}

// Available returns a SOLVER_UNAVAILABLE error.
func (u Unavailable) Available() error {
	reason := u.Reason
	if reason == "" {
		reason = "no constraint solver configured"
	}
	return errors.New(errors.ErrCodeSolverUnavailable, "%s", reason)
}

// Solve always fails with the same error as Available.
func (u Unavailable) Solve(*System) (Solution, error) {
	return Solution{}, u.Available()
}
