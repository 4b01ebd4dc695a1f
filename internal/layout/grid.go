package layout

import "layoutkit/internal/cassowary"

type gridEntry struct {
	id    WidgetID
	edges [4]*cassowary.Variable // left, top, right, bottom
}

// GridLayout fills Columns columns row by row in insertion order. The
// first child of a column fixes the column's left/right and the first
// child of a row fixes the row's top/bottom; templates chain along each
// axis the way LinearLayout chains children. Column templates weakly
// prefer an equal share of the parent's width.
//
// Placement constraints are held by the parent. Removing a child
// re-places every remaining child.
type GridLayout struct {
	Columns int

	parentEdges [4]*cassowary.Variable
	entries     []gridEntry
	placed      []cassowary.Constraint
}

// NewGridLayout attaches a grid with the given column count (at least 1).
func NewGridLayout(parent *Node, columns int) *GridLayout {
	if columns < 1 {
		columns = 1
	}
	return &GridLayout{Columns: columns, parentEdges: parent.Vars()}
}

// Cell returns the row and column of the i-th child.
func (g *GridLayout) Cell(i int) (row, col int) {
	return i / g.Columns, i % g.Columns
}

func (g *GridLayout) AddChildLayout(parent, child *Node) {
	g.entries = append(g.entries, gridEntry{id: child.ID, edges: child.Vars()})
	cs := g.place(len(g.entries) - 1)
	g.placed = append(g.placed, cs...)
	parent.Add(cs...)
}

func (g *GridLayout) RemoveChildLayout(parent, child *Node) {
	idx := -1
	for i, e := range g.entries {
		if e.id == child.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	parent.Retract(g.placed...)
	g.placed = nil
	g.entries = append(g.entries[:idx], g.entries[idx+1:]...)
	for i := range g.entries {
		g.placed = append(g.placed, g.place(i)...)
	}
	parent.Add(g.placed...)
}

func (g *GridLayout) place(i int) []cassowary.Constraint {
	const (
		left = iota
		top
		right
		bottom
	)
	row, col := g.Cell(i)
	e := g.entries[i].edges
	var cs []cassowary.Constraint

	chain := func(leading, after *cassowary.Variable) {
		cs = append(cs,
			cassowary.NewConstraint(leading.Expr(), cassowary.GE, after.Expr(), cassowary.Strong),
			cassowary.NewConstraint(leading.Expr(), cassowary.EQ, after.Expr(), cassowary.Medium),
		)
	}

	if row == 0 {
		if col == 0 {
			chain(e[left], g.parentEdges[left])
		} else {
			chain(e[left], g.entries[col-1].edges[right])
		}
		share := g.parentEdges[right].Expr().Sub(g.parentEdges[left].Expr()).Scale(1 / float64(g.Columns))
		cs = append(cs, cassowary.NewConstraint(e[right].Expr().Sub(e[left].Expr()), cassowary.EQ, share, cassowary.Weak))
	} else {
		tmpl := g.entries[col].edges
		cs = append(cs,
			eq(e[left], tmpl[left], cassowary.Required),
			eq(e[right], tmpl[right], cassowary.Required),
		)
	}

	if col == 0 {
		if row == 0 {
			chain(e[top], g.parentEdges[top])
		} else {
			chain(e[top], g.entries[(row-1)*g.Columns].edges[bottom])
		}
	} else {
		tmpl := g.entries[row*g.Columns].edges
		cs = append(cs,
			eq(e[top], tmpl[top], cassowary.Required),
			eq(e[bottom], tmpl[bottom], cassowary.Required),
		)
	}
	return cs
}
