package layout

import (
	"errors"
	"fmt"

	"layoutkit/internal/cassowary"
)

// WidgetID identifies a widget and its Node.
type WidgetID int

// NoWidget is the id of a missing parent.
const NoWidget WidgetID = -1

// Edge names one of a node's four edge variables.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	}
	return fmt.Sprintf("edge(%d)", uint8(e))
}

// ValueReader reads solved values.
type ValueReader interface {
	Value(v *cassowary.Variable) float64
}

// Node is the layout state of one widget: its edge variables and the
// constraints that place it. Constraints accumulate; they only leave the
// list through Retract.
type Node struct {
	ID   WidgetID
	Name string

	Left   *cassowary.Variable
	Top    *cassowary.Variable
	Right  *cassowary.Variable
	Bottom *cassowary.Variable

	// Scrollable marks a node whose left/top may be driven by edit
	// suggestions. Set by ScrollInside.
	Scrollable bool

	constraints []cassowary.Constraint
	retracted   []cassowary.Constraint
}

// NewNode creates a node with four fresh edge variables.
func NewNode(id WidgetID, name string) *Node {
	if name == "" {
		name = fmt.Sprintf("widget%d", id)
	}
	return &Node{
		ID:     id,
		Name:   name,
		Left:   cassowary.NewVariable(name + ".left"),
		Top:    cassowary.NewVariable(name + ".top"),
		Right:  cassowary.NewVariable(name + ".right"),
		Bottom: cassowary.NewVariable(name + ".bottom"),
	}
}

// Var returns the variable for an edge.
func (n *Node) Var(e Edge) *cassowary.Variable {
	switch e {
	case EdgeLeft:
		return n.Left
	case EdgeTop:
		return n.Top
	case EdgeRight:
		return n.Right
	default:
		return n.Bottom
	}
}

// Vars returns left, top, right, bottom.
func (n *Node) Vars() [4]*cassowary.Variable {
	return [4]*cassowary.Variable{n.Left, n.Top, n.Right, n.Bottom}
}

// Constraints returns a copy of the node's constraint list.
func (n *Node) Constraints() []cassowary.Constraint {
	return append([]cassowary.Constraint(nil), n.constraints...)
}

// Add appends constraints. They reach the solver on the next UpdateSolver.
func (n *Node) Add(cs ...cassowary.Constraint) {
	n.constraints = append(n.constraints, cs...)
}

// Retract drops structurally equal constraints from the list and queues
// them for withdrawal from the solver.
func (n *Node) Retract(cs ...cassowary.Constraint) {
	for _, c := range cs {
		for i, have := range n.constraints {
			if have.Equal(c) {
				n.constraints = append(n.constraints[:i], n.constraints[i+1:]...)
				n.retracted = append(n.retracted, c)
				break
			}
		}
	}
}

// capture runs fn and returns the constraints it appended to n.
func (n *Node) capture(fn func()) []cassowary.Constraint {
	before := len(n.constraints)
	fn()
	return append([]cassowary.Constraint(nil), n.constraints[before:]...)
}

func (n *Node) width() cassowary.Expression {
	return n.Right.Expr().Sub(n.Left.Expr())
}

func (n *Node) height() cassowary.Expression {
	return n.Bottom.Expr().Sub(n.Top.Expr())
}

func eq(a *cassowary.Variable, b *cassowary.Variable, s cassowary.Strength) cassowary.Constraint {
	return cassowary.NewConstraint(a.Expr(), cassowary.EQ, b.Expr(), s)
}

func ge(a *cassowary.Variable, b cassowary.Expression, s cassowary.Strength) cassowary.Constraint {
	return cassowary.NewConstraint(a.Expr(), cassowary.GE, b, s)
}

func le(a *cassowary.Variable, b cassowary.Expression, s cassowary.Strength) cassowary.Constraint {
	return cassowary.NewConstraint(a.Expr(), cassowary.LE, b, s)
}

// MatchLayout pins all four edges to other's.
func (n *Node) MatchLayout(other *Node) {
	n.MatchWidth(other)
	n.MatchHeight(other)
}

// MatchLayoutStrength is MatchLayout at a chosen strength.
func (n *Node) MatchLayoutStrength(other *Node, s cassowary.Strength) {
	n.Add(
		eq(n.Left, other.Left, s),
		eq(n.Right, other.Right, s),
		eq(n.Top, other.Top, s),
		eq(n.Bottom, other.Bottom, s),
	)
}

// MatchWidth pins left and right to other's.
func (n *Node) MatchWidth(other *Node) {
	n.Add(
		eq(n.Left, other.Left, cassowary.Required),
		eq(n.Right, other.Right, cassowary.Required),
	)
}

// MatchHeight pins top and bottom to other's.
func (n *Node) MatchHeight(other *Node) {
	n.Add(
		eq(n.Top, other.Top, cassowary.Required),
		eq(n.Bottom, other.Bottom, cassowary.Required),
	)
}

// Width fixes right - left.
func (n *Node) Width(w float64) { n.WidthStrength(w, cassowary.Required) }

// Height fixes bottom - top.
func (n *Node) Height(h float64) { n.HeightStrength(h, cassowary.Required) }

// WidthStrength prefers right - left == w at strength s.
func (n *Node) WidthStrength(w float64, s cassowary.Strength) {
	n.Add(cassowary.NewConstraint(n.width(), cassowary.EQ, cassowary.Constant(w), s))
}

// HeightStrength prefers bottom - top == h at strength s.
func (n *Node) HeightStrength(h float64, s cassowary.Strength) {
	n.Add(cassowary.NewConstraint(n.height(), cassowary.EQ, cassowary.Constant(h), s))
}

// Dimensions fixes both width and height.
func (n *Node) Dimensions(w, h float64) {
	n.Width(w)
	n.Height(h)
}

// MinWidth requires right - left >= w.
func (n *Node) MinWidth(w float64) {
	n.Add(cassowary.NewConstraint(n.width(), cassowary.GE, cassowary.Constant(w), cassowary.Required))
}

// MinHeight requires bottom - top >= h.
func (n *Node) MinHeight(h float64) {
	n.Add(cassowary.NewConstraint(n.height(), cassowary.GE, cassowary.Constant(h), cassowary.Required))
}

// MinDimensions requires a minimum width and height.
func (n *Node) MinDimensions(w, h float64) {
	n.MinWidth(w)
	n.MinHeight(h)
}

// Center keeps equal margins to other on both axes, at strong strength so
// it yields to required bounds.
func (n *Node) Center(other *Node) {
	n.CenterHorizontal(other)
	n.CenterVertical(other)
}

// CenterHorizontal keeps equal left and right margins to other.
func (n *Node) CenterHorizontal(other *Node) {
	n.Add(cassowary.NewConstraint(
		n.Left.Expr().Sub(other.Left.Expr()), cassowary.EQ,
		other.Right.Expr().Sub(n.Right.Expr()), cassowary.Strong))
}

// CenterVertical keeps equal top and bottom margins to other.
func (n *Node) CenterVertical(other *Node) {
	n.Add(cassowary.NewConstraint(
		n.Top.Expr().Sub(other.Top.Expr()), cassowary.EQ,
		other.Bottom.Expr().Sub(n.Bottom.Expr()), cassowary.Strong))
}

// BoundBy keeps n inside other.
func (n *Node) BoundBy(other *Node) { n.BoundByPadding(other, 0) }

// BoundByPadding keeps n inside other inset by padding on every side.
func (n *Node) BoundByPadding(other *Node, padding float64) {
	n.Add(
		ge(n.Left, other.Left.Expr().Plus(padding), cassowary.Required),
		ge(n.Top, other.Top.Expr().Plus(padding), cassowary.Required),
		le(n.Right, other.Right.Expr().Plus(-padding), cassowary.Required),
		le(n.Bottom, other.Bottom.Expr().Plus(-padding), cassowary.Required),
	)
}

// ScrollInside lets n be larger than other and slide under it: the
// leading edges may not pass other's, and the trailing edges should
// reach other's (strong only, content may be smaller than the viewport).
// Medium preferences rest n at other's origin until a scroll suggestion
// moves it.
func (n *Node) ScrollInside(other *Node) {
	n.Add(
		le(n.Left, other.Left.Expr(), cassowary.Required),
		le(n.Top, other.Top.Expr(), cassowary.Required),
		ge(n.Right, other.Right.Expr(), cassowary.Strong),
		ge(n.Bottom, other.Bottom.Expr(), cassowary.Strong),
		eq(n.Left, other.Left, cassowary.Medium),
		eq(n.Top, other.Top, cassowary.Medium),
	)
	n.Scrollable = true
}

// AlignLeft pins left edges.
func (n *Node) AlignLeft(other *Node) { n.Add(eq(n.Left, other.Left, cassowary.Required)) }

// AlignTop pins top edges.
func (n *Node) AlignTop(other *Node) { n.Add(eq(n.Top, other.Top, cassowary.Required)) }

// AlignRight pins right edges.
func (n *Node) AlignRight(other *Node) { n.Add(eq(n.Right, other.Right, cassowary.Required)) }

// AlignBottom pins bottom edges.
func (n *Node) AlignBottom(other *Node) { n.Add(eq(n.Bottom, other.Bottom, cassowary.Required)) }

// Below requires n to start at least padding below other.
func (n *Node) Below(other *Node, padding float64) {
	n.Add(ge(n.Top, other.Bottom.Expr().Plus(padding), cassowary.Required))
}

// Above requires n to end at least padding above other.
func (n *Node) Above(other *Node, padding float64) {
	n.Add(le(n.Bottom, other.Top.Expr().Plus(-padding), cassowary.Required))
}

// ToRightOf requires n to start at least padding right of other.
func (n *Node) ToRightOf(other *Node, padding float64) {
	n.Add(ge(n.Left, other.Right.Expr().Plus(padding), cassowary.Required))
}

// ToLeftOf requires n to end at least padding left of other.
func (n *Node) ToLeftOf(other *Node, padding float64) {
	n.Add(le(n.Right, other.Left.Expr().Plus(-padding), cassowary.Required))
}

// Bounds reads the solved box. Width and height are edge differences.
// Before the first solve every value reads as zero.
func (n *Node) Bounds(r ValueReader) Rect {
	left, top := r.Value(n.Left), r.Value(n.Top)
	return Rect{
		X:      left,
		Y:      top,
		Width:  r.Value(n.Right) - left,
		Height: r.Value(n.Bottom) - top,
	}
}

// UpdateSolver withdraws retracted constraints and installs every listed
// constraint the solver does not already hold. Membership is structural,
// so calling it twice is a no-op. If any step fails, the solver is put
// back as it was and the retractions stay pending.
func (n *Node) UpdateSolver(s *cassowary.Solver) (installed int, err error) {
	var withdrawn, added []cassowary.Constraint
	for _, c := range n.retracted {
		if !s.HasConstraint(c) {
			continue
		}
		if err := s.RemoveConstraint(c); err != nil {
			err = fmt.Errorf("retract %s: %w", c, err)
			return 0, n.rollback(s, err, added, withdrawn)
		}
		withdrawn = append(withdrawn, c)
	}

	for _, c := range n.constraints {
		if s.HasConstraint(c) {
			continue
		}
		if err := s.AddConstraint(c); err != nil {
			return 0, n.rollback(s, err, added, withdrawn)
		}
		added = append(added, c)
	}
	n.retracted = nil
	return len(added), nil
}

// rollback undoes a failed UpdateSolver and returns cause, joined with
// anything that went wrong while undoing.
func (n *Node) rollback(s *cassowary.Solver, cause error, added, withdrawn []cassowary.Constraint) error {
	errs := []error{cause}
	for i := len(added) - 1; i >= 0; i-- {
		if err := s.RemoveConstraint(added[i]); err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", added[i], err))
		}
	}
	for _, c := range withdrawn {
		if err := s.AddConstraint(c); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", c, err))
		}
	}
	return fmt.Errorf("%s: %w", n.Name, errors.Join(errs...))
}
