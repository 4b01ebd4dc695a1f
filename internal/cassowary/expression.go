package cassowary

import (
	"sort"
	"strconv"
	"strings"
)

// Term is coefficient·variable.
type Term struct {
	Variable    *Variable
	Coefficient float64
}

// Expression is a linear combination of terms plus a constant.
// Expressions are values; every operation returns a new one.
type Expression struct {
	Terms    []Term
	Constant float64
}

// NewExpression builds constant + Σ terms.
func NewExpression(constant float64, terms ...Term) Expression {
	return Expression{Terms: append([]Term(nil), terms...), Constant: constant}
}

// Constant returns the expression with no terms.
func Constant(c float64) Expression {
	return Expression{Constant: c}
}

// Add returns e + o.
func (e Expression) Add(o Expression) Expression {
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)
	return Expression{Terms: terms, Constant: e.Constant + o.Constant}
}

// Sub returns e - o.
func (e Expression) Sub(o Expression) Expression {
	return e.Add(o.Scale(-1))
}

// Scale returns k·e.
func (e Expression) Scale(k float64) Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Variable: t.Variable, Coefficient: t.Coefficient * k}
	}
	return Expression{Terms: terms, Constant: e.Constant * k}
}

// Plus returns e + c.
func (e Expression) Plus(c float64) Expression {
	return Expression{Terms: append([]Term(nil), e.Terms...), Constant: e.Constant + c}
}

// reduced merges terms on the same variable, drops zero coefficients and
// orders terms by variable creation.
func (e Expression) reduced() Expression {
	coeffs := make(map[*Variable]float64, len(e.Terms))
	order := make([]*Variable, 0, len(e.Terms))
	for _, t := range e.Terms {
		if t.Variable == nil {
			continue
		}
		if _, seen := coeffs[t.Variable]; !seen {
			order = append(order, t.Variable)
		}
		coeffs[t.Variable] += t.Coefficient
	}
	sort.Slice(order, func(i, j int) bool { return order[i].id < order[j].id })
	out := Expression{Constant: e.Constant}
	for _, v := range order {
		if c := coeffs[v]; !nearZero(c) {
			out.Terms = append(out.Terms, Term{Variable: v, Coefficient: c})
		}
	}
	return out
}

func (e Expression) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(strconv.FormatFloat(t.Coefficient, 'g', -1, 64))
		b.WriteString("*")
		b.WriteString(t.Variable.String())
	}
	if len(e.Terms) > 0 {
		b.WriteString(" + ")
	}
	b.WriteString(strconv.FormatFloat(e.Constant, 'g', -1, 64))
	return b.String()
}
