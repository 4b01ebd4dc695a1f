package layout

import "layoutkit/internal/cassowary"

// Orientation is the main axis of a LinearLayout.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Beginning returns the leading edge of n on the axis: left or top.
func Beginning(o Orientation, n *Node) *cassowary.Variable {
	if o == Horizontal {
		return n.Left
	}
	return n.Top
}

// Ending returns the trailing edge of n on the axis: right or bottom.
func Ending(o Orientation, n *Node) *cassowary.Variable {
	if o == Horizontal {
		return n.Right
	}
	return n.Bottom
}

func crossBeginning(o Orientation, n *Node) *cassowary.Variable {
	if o == Horizontal {
		return n.Top
	}
	return n.Left
}

type linearEntry struct {
	id       WidgetID
	leading  *cassowary.Variable
	trailing *cassowary.Variable
	chain    []cassowary.Constraint // held by the parent
	cross    []cassowary.Constraint // held by the child
}

// LinearLayout stacks children along one axis. Each child starts at
// least Padding after the previous child's trailing edge (strong), packed
// against it (medium). With Expand the child spans the parent on the
// cross axis. The parent weakly hugs the last child.
//
// Ordering constraints are held by the parent node so that removing a
// child can re-link its successor to its predecessor.
type LinearLayout struct {
	Orientation Orientation
	Padding     float64
	Expand      bool

	begin   *cassowary.Variable
	end     *cassowary.Variable
	entries []linearEntry
	hug     []cassowary.Constraint
}

// NewLinearLayout attaches a linear layout to parent. The running
// trailing edge starts at the parent's leading edge.
func NewLinearLayout(parent *Node, o Orientation, padding float64, expand bool) *LinearLayout {
	b := Beginning(o, parent)
	return &LinearLayout{Orientation: o, Padding: padding, Expand: expand, begin: b, end: b}
}

// End is the trailing edge the next child will be placed after.
func (l *LinearLayout) End() *cassowary.Variable { return l.end }

// Len returns the number of children laid out.
func (l *LinearLayout) Len() int { return len(l.entries) }

func (l *LinearLayout) chain(leading, after *cassowary.Variable) []cassowary.Constraint {
	target := after.Expr().Plus(l.Padding)
	return []cassowary.Constraint{
		cassowary.NewConstraint(leading.Expr(), cassowary.GE, target, cassowary.Strong),
		cassowary.NewConstraint(leading.Expr(), cassowary.EQ, target, cassowary.Medium),
	}
}

func (l *LinearLayout) AddChildLayout(parent, child *Node) {
	e := linearEntry{
		id:       child.ID,
		leading:  Beginning(l.Orientation, child),
		trailing: Ending(l.Orientation, child),
	}
	e.chain = l.chain(e.leading, l.end)
	parent.Add(e.chain...)
	e.cross = child.capture(func() {
		switch {
		case l.Expand && l.Orientation == Horizontal:
			child.MatchHeight(parent)
		case l.Expand:
			child.MatchWidth(parent)
		default:
			child.Add(eq(crossBeginning(l.Orientation, child), crossBeginning(l.Orientation, parent), cassowary.Weak))
		}
	})
	l.entries = append(l.entries, e)
	l.end = e.trailing
	l.rehug(parent)
}

// RemoveChildLayout retracts the child's constraints and links its
// successor, if any, to its predecessor.
func (l *LinearLayout) RemoveChildLayout(parent, child *Node) {
	idx := -1
	for i, e := range l.entries {
		if e.id == child.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	e := l.entries[idx]
	parent.Retract(e.chain...)
	child.Retract(e.cross...)

	prev := l.begin
	if idx > 0 {
		prev = l.entries[idx-1].trailing
	}
	if idx+1 < len(l.entries) {
		next := &l.entries[idx+1]
		parent.Retract(next.chain...)
		next.chain = l.chain(next.leading, prev)
		parent.Add(next.chain...)
	}

	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	l.end = l.begin
	if n := len(l.entries); n > 0 {
		l.end = l.entries[n-1].trailing
	}
	l.rehug(parent)
}

func (l *LinearLayout) rehug(parent *Node) {
	var hug []cassowary.Constraint
	if n := len(l.entries); n > 0 {
		last := l.entries[n-1].trailing
		hug = []cassowary.Constraint{cassowary.NewConstraint(
			Ending(l.Orientation, parent).Expr(), cassowary.EQ,
			last.Expr().Plus(l.Padding), cassowary.Weak)}
	}
	if len(hug) == len(l.hug) && (len(hug) == 0 || hug[0].Equal(l.hug[0])) {
		return
	}
	parent.Retract(l.hug...)
	parent.Add(hug...)
	l.hug = hug
}
