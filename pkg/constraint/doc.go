// Package constraint provides a small linear constraint model with priority
// tiers and a solver that honours them.
//
// # Model
//
// A [System] owns [Variable]s and [Constraint]s. Every constraint has the form
//
//	expression  (= | <= | >=)  0
//
// and carries a [Strength]. [Required] constraints are hard: a solve fails
// with a LAYOUT_INFEASIBLE error when they contradict each other. [Strong],
// [Medium] and [Weak] constraints are preferences; the solver minimizes their
// violation weighted by tier, so a stronger preference always wins over any
// realistic amount of weaker ones.
//
// Constraints are built from expressions:
//
//	sys := constraint.NewSystem()
//	left, right := sys.NewVariable("left"), sys.NewVariable("right")
//	sys.Add(
//	    constraint.Eq(left.Expr(), constraint.Const(1), constraint.Required),
//	    constraint.Ge(right.Expr(), left.Expr().Add(2), constraint.Required),
//	    constraint.Eq(right.Expr(), constraint.Const(5), constraint.Weak),
//	)
//
// # Solving
//
// [SimplexSolver] solves in two stages. The Required equalities are factorized
// with an SVD (gonum/mat), giving a particular solution and the null space of
// remaining freedom. The preferences and the Required inequalities are then
// solved over that null space as a linear program (gonum's lp.Simplex) that
// minimizes the weighted absolute violation. Results are deterministic: the
// same system always yields bit-identical values.
//
// A [Solver] also reports whether it can run at all via Available. The layout
// package probes this once and switches to its arithmetic fallback when the
// solver is missing.
package constraint
