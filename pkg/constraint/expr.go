package constraint

import (
	"fmt"
	"math"
	"strings"
)

// Variable is an unknown owned by a System. Its identity is its index in the
// owning system.
type Variable struct {
	index int
	name  string
}

// Name returns the label given at creation.
func (v *Variable) Name() string { return v.name }

// Index returns the variable's position in its System.
func (v *Variable) Index() int { return v.index }

// Expr returns the expression 1·v.
func (v *Variable) Expr() Expression {
	return Expression{Terms: []Term{{Var: v, Coef: 1}}}
}

func (v *Variable) String() string { return v.name }

// Term is a coefficient applied to a variable.
type Term struct {
	Var  *Variable
	Coef float64
}

// Expression is a linear combination of variables plus a constant.
// Expressions are values; every method returns a new expression.
type Expression struct {
	Terms    []Term
	Constant float64
}

// Const returns an expression holding only a constant.
func Const(k float64) Expression { return Expression{Constant: k} }

// Sum adds expressions together.
func Sum(es ...Expression) Expression {
	var out Expression
	for _, e := range es {
		out = out.Plus(e)
	}
	return out
}

// Plus returns e + o.
func (e Expression) Plus(o Expression) Expression {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)
	return Expression{Terms: terms, Constant: e.Constant + o.Constant}
}

// Minus returns e - o.
func (e Expression) Minus(o Expression) Expression {
	return e.Plus(o.Scale(-1))
}

// Scale returns k·e.
func (e Expression) Scale(k float64) Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Var: t.Var, Coef: t.Coef * k}
	}
	return Expression{Terms: terms, Constant: e.Constant * k}
}

// Add returns e + k.
func (e Expression) Add(k float64) Expression {
	return Expression{Terms: e.Terms, Constant: e.Constant + k}
}

// Coefficients folds repeated variables into a dense coefficient row of
// length n. Variables with an index outside [0, n) cause a panic.
func (e Expression) Coefficients(n int) []float64 {
	row := make([]float64, n)
	for _, t := range e.Terms {
		row[t.Var.index] += t.Coef
	}
	return row
}

// Eval returns the value of e under the given solution.
func (e Expression) Eval(s Solution) float64 {
	v := e.Constant
	for _, t := range e.Terms {
		v += t.Coef * s.Value(t.Var)
	}
	return v
}

func (e Expression) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		switch {
		case i == 0 && t.Coef < 0:
			b.WriteString("-")
		case i > 0 && t.Coef < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if c := math.Abs(t.Coef); c != 1 {
			fmt.Fprintf(&b, "%g*", c)
		}
		b.WriteString(t.Var.name)
	}
	if e.Constant != 0 || len(e.Terms) == 0 {
		switch {
		case len(e.Terms) == 0:
			fmt.Fprintf(&b, "%g", e.Constant)
		case e.Constant < 0:
			fmt.Fprintf(&b, " - %g", -e.Constant)
		default:
			fmt.Fprintf(&b, " + %g", e.Constant)
		}
	}
	return b.String()
}
