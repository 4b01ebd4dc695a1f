package cassowary

import (
	"strconv"
	"strings"
)

// Relation is the operator of a constraint.
type Relation int

const (
	EQ Relation = iota // ==
	GE                 // >=
	LE                 // <=
)

func (r Relation) String() string {
	switch r {
	case GE:
		return ">="
	case LE:
		return "<="
	default:
		return "=="
	}
}

// Constraint is an immutable relation `expression op 0` with a strength.
// Two constraints built from the same terms, operator and strength are
// Equal, which is what lets the Solver detect duplicates structurally.
type Constraint struct {
	expr     Expression
	op       Relation
	strength Strength
	key      string
}

// NewConstraint builds lhs op rhs at the given strength.
func NewConstraint(lhs Expression, op Relation, rhs Expression, strength Strength) Constraint {
	expr := lhs.Sub(rhs).reduced()
	c := Constraint{expr: expr, op: op, strength: strength.Clip()}
	c.key = c.canonical()
	return c
}

// Expression returns the normalized left-hand side (the right side is 0).
func (c Constraint) Expression() Expression { return c.expr }

// Op returns the relational operator.
func (c Constraint) Op() Relation { return c.op }

// Strength returns the constraint strength.
func (c Constraint) Strength() Strength { return c.strength }

// Key is a canonical encoding; equal keys mean structurally equal constraints.
func (c Constraint) Key() string { return c.key }

// Equal reports structural equality.
func (c Constraint) Equal(o Constraint) bool { return c.key == o.key }

// WithStrength returns a copy of c at a different strength.
func (c Constraint) WithStrength(s Strength) Constraint {
	out := Constraint{expr: c.expr, op: c.op, strength: s.Clip()}
	out.key = out.canonical()
	return out
}

// Variables lists the variables referenced by c.
func (c Constraint) Variables() []*Variable {
	vs := make([]*Variable, len(c.expr.Terms))
	for i, t := range c.expr.Terms {
		vs[i] = t.Variable
	}
	return vs
}

func (c Constraint) canonical() string {
	var b strings.Builder
	for _, t := range c.expr.Terms {
		b.WriteString(strconv.FormatUint(t.Variable.id, 10))
		b.WriteByte(':')
		b.WriteString(formatFloat(t.Coefficient))
		b.WriteByte(' ')
	}
	b.WriteString(c.op.String())
	b.WriteByte(' ')
	b.WriteString(formatFloat(-c.expr.Constant))
	b.WriteByte('@')
	b.WriteString(formatFloat(float64(c.strength)))
	return b.String()
}

func (c Constraint) String() string {
	return c.expr.String() + " " + c.op.String() + " 0 [" + c.strength.String() + "]"
}

func formatFloat(f float64) string {
	if f == 0 {
		f = 0 // fold -0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
