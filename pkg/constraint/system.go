package constraint

import (
	"cmp"
	"fmt"
	"slices"
)

// Relation is the comparison between a constraint's expression and zero.
type Relation int

const (
	EQ Relation = iota // expression == 0
	LE                 // expression <= 0
	GE                 // expression >= 0
)

func (r Relation) String() string {
	return [...]string{"==", "<=", ">="}[r]
}

// Strength is the priority tier of a constraint.
type Strength int

// Tiers from strongest to weakest.
const (
	Required Strength = iota
	Strong
	Medium
	Weak
)

func (s Strength) String() string {
	return [...]string{"required", "strong", "medium", "weak"}[s]
}

// Weight returns the violation cost per unit for a preference tier. The gap
// between tiers keeps a weaker tier from outvoting a stronger one.
// Required constraints are hard and have no weight.
func (s Strength) Weight() float64 {
	switch s {
	case Strong:
		return 1e6
	case Medium:
		return 1e3
	case Weak:
		return 1
	}
	return 0
}

// Constraint is "Expr Op 0" at a given Strength. Label is free text used in
// diagnostics.
type Constraint struct {
	Expr     Expression
	Op       Relation
	Strength Strength
	Label    string
}

// Eq returns the constraint lhs == rhs.
func Eq(lhs, rhs Expression, s Strength) Constraint {
	return Constraint{Expr: lhs.Minus(rhs), Op: EQ, Strength: s}
}

// Le returns the constraint lhs <= rhs.
func Le(lhs, rhs Expression, s Strength) Constraint {
	return Constraint{Expr: lhs.Minus(rhs), Op: LE, Strength: s}
}

// Ge returns the constraint lhs >= rhs.
func Ge(lhs, rhs Expression, s Strength) Constraint {
	return Constraint{Expr: lhs.Minus(rhs), Op: GE, Strength: s}
}

// Labeled returns a copy of c carrying label.
func (c Constraint) Labeled(label string) Constraint {
	c.Label = label
	return c
}

// Violation returns how far c is from holding under s; zero when satisfied.
func (c Constraint) Violation(s Solution) float64 {
	v := c.Expr.Eval(s)
	switch c.Op {
	case LE:
		return max(v, 0)
	case GE:
		return max(-v, 0)
	}
	if v < 0 {
		return -v
	}
	return v
}

func (c Constraint) String() string {
	s := fmt.Sprintf("%s %s 0 [%s]", c.Expr, c.Op, c.Strength)
	if c.Label != "" {
		s = c.Label + ": " + s
	}
	return s
}

// System owns the variables and constraints of one solve. It is built once,
// solved, and discarded; it is not safe for concurrent mutation.
type System struct {
	vars []*Variable
	cons []Constraint
}

// NewSystem returns an empty system.
func NewSystem() *System { return &System{} }

// NewVariable creates and registers a variable.
func (s *System) NewVariable(name string) *Variable {
	v := &Variable{index: len(s.vars), name: name}
	s.vars = append(s.vars, v)
	return v
}

// Add appends constraints in order.
func (s *System) Add(cs ...Constraint) {
	s.cons = append(s.cons, cs...)
}

// Variables returns the registered variables in creation order.
func (s *System) Variables() []*Variable { return s.vars }

// Constraints returns the constraints ordered by decreasing strength. The
// order in which constraints of the same tier were added is preserved.
func (s *System) Constraints() []Constraint {
	out := slices.Clone(s.cons)
	slices.SortStableFunc(out, func(a, b Constraint) int {
		return cmp.Compare(a.Strength, b.Strength)
	})
	return out
}

// Count returns the number of constraints at strength st.
func (s *System) Count(st Strength) int {
	n := 0
	for _, c := range s.cons {
		if c.Strength == st {
			n++
		}
	}
	return n
}

// Len returns the total number of constraints.
func (s *System) Len() int { return len(s.cons) }
