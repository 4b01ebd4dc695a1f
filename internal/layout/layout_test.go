package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layoutkit/internal/cassowary"
)

const delta = 1e-6

// pin fixes n to the given box with required constraints.
func pin(n *Node, x, y, w, h float64) {
	n.Add(
		cassowary.NewConstraint(n.Left.Expr(), cassowary.EQ, cassowary.Constant(x), cassowary.Required),
		cassowary.NewConstraint(n.Top.Expr(), cassowary.EQ, cassowary.Constant(y), cassowary.Required),
	)
	n.Dimensions(w, h)
}

func update(t *testing.T, s *Solver, nodes ...*Node) {
	t.Helper()
	for _, n := range nodes {
		_, err := s.UpdateLayout(n)
		require.NoError(t, err, n.Name)
	}
}

func assertRect(t *testing.T, want, got Rect) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Width, got.Width, delta, "width")
	assert.InDelta(t, want.Height, got.Height, delta, "height")
}

func TestNode_CenterInParent(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 0, 0, 300, 300)
	child := arena.New("child")
	child.Width(100)
	child.Height(50)
	child.Center(parent)

	update(t, s, parent, child)

	b := s.Bounds(child)
	assertRect(t, Rect{X: 100, Y: 125, Width: 100, Height: 50}, b)
	assert.InDelta(t, 200, b.Right(), delta)
	assert.InDelta(t, 175, b.Bottom(), delta)
}

func TestNode_BoundByHoldsAgainstSoftPressure(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 10, 10, 100, 100)
	child := arena.New("child")
	child.BoundBy(parent)
	child.WidthStrength(500, cassowary.Strong)
	child.HeightStrength(500, cassowary.Strong)
	child.Add(cassowary.NewConstraint(child.Left.Expr(), cassowary.EQ, cassowary.Constant(0), cassowary.Strong))

	update(t, s, parent, child)

	p, c := s.Bounds(parent), s.Bounds(child)
	assert.GreaterOrEqual(t, c.X, p.X-delta)
	assert.GreaterOrEqual(t, c.Y, p.Y-delta)
	assert.LessOrEqual(t, c.Right(), p.Right()+delta)
	assert.LessOrEqual(t, c.Bottom(), p.Bottom()+delta)
}

func TestNode_MatchWidthIsExact(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 0, 0, 240, 80)
	child := arena.New("child")
	child.MatchWidth(parent)
	child.WidthStrength(20, cassowary.Strong)
	child.Height(10)

	update(t, s, parent, child)
	assert.InDelta(t, 240, s.Bounds(child).Width, delta)
}

func TestNode_UpdateLayoutIsIdempotent(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 0, 0, 300, 300)
	child := arena.New("child")
	child.Dimensions(30, 30)
	child.Center(parent)

	changes, err := s.UpdateLayout(parent)
	require.NoError(t, err)
	assert.Len(t, changes, 4, "first solve reports every edge")

	changes, err = s.UpdateLayout(child)
	require.NoError(t, err)
	assert.NotEmpty(t, changes)

	for _, n := range []*Node{parent, child} {
		changes, err = s.UpdateLayout(n)
		require.NoError(t, err)
		assert.Empty(t, changes)
	}
}

func TestNode_DuplicateConstraintsInstallOnce(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	n := arena.New("n")
	n.Width(10)
	n.Width(10)
	pin(n, 0, 0, 10, 5)
	update(t, s, n)
	// left, top, width (three copies share one), height
	assert.Equal(t, 4, s.NumConstraints())
}

func TestSolver_InfeasibleRollsBack(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 0, 0, 50, 50)
	update(t, s, parent)
	before := s.NumConstraints()

	child := arena.New("child")
	child.Width(100)
	child.MatchWidth(parent)

	_, err := s.UpdateLayout(child)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasible))
	assert.True(t, errors.Is(err, cassowary.ErrUnsatisfiable))
	assert.Equal(t, before, s.NumConstraints())
	assertRect(t, Rect{Width: 50, Height: 50}, s.Bounds(parent))
}

func TestSolver_InfeasibleKeepsRetractions(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 0, 0, 50, 50)
	child := arena.New("child")
	child.Width(30)
	update(t, s, parent, child)
	before := s.NumConstraints()

	narrow := cassowary.NewConstraint(child.Right.Expr().Sub(child.Left.Expr()), cassowary.EQ, cassowary.Constant(30), cassowary.Required)
	wide := cassowary.NewConstraint(child.Right.Expr().Sub(child.Left.Expr()), cassowary.EQ, cassowary.Constant(100), cassowary.Required)
	child.Retract(narrow)
	child.Width(100)
	child.MatchWidth(parent)

	_, err := s.UpdateLayout(child)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasible))
	assert.True(t, s.HasConstraint(narrow))
	assert.Equal(t, before, s.NumConstraints())
	assert.InDelta(t, 30, s.Bounds(child).Width, delta)

	// The retraction is still pending for the next update.
	child.Retract(wide)
	update(t, s, child)
	assert.False(t, s.HasConstraint(narrow))
	assert.InDelta(t, 50, s.Bounds(child).Width, delta)
}

func TestSolver_SuggestRequiresEditVariable(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	n := arena.New("n")
	pin(n, 0, 0, 10, 10)
	update(t, s, n)

	err := s.SuggestValue(n.Left, 5)
	assert.True(t, errors.Is(err, ErrNotEditable))
}

func TestSolver_ScrollInsideFollowsSuggestions(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	viewport := arena.New("viewport")
	pin(viewport, 0, 0, 100, 100)
	content := arena.New("content")
	content.ScrollInside(viewport)
	content.Dimensions(100, 300)
	require.True(t, content.Scrollable)

	update(t, s, viewport, content)
	assertRect(t, Rect{Width: 100, Height: 300}, s.Bounds(content))

	require.NoError(t, s.AddEditVariable(content.Top, cassowary.Strong))
	require.NoError(t, s.SuggestValue(content.Top, -50))
	changes := s.Changes()
	require.Len(t, changes, 2)
	for _, c := range changes {
		assert.Equal(t, content.ID, c.Widget)
	}
	assertRect(t, Rect{Y: -50, Width: 100, Height: 300}, s.Bounds(content))
}

func TestSolver_RemoveNode(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 0, 0, 100, 100)
	child := arena.New("child")
	child.BoundBy(parent)
	child.Dimensions(10, 10)
	update(t, s, parent, child)
	require.NoError(t, s.AddEditVariable(child.Left, cassowary.Strong))

	require.NoError(t, s.RemoveNode(child))
	assert.Equal(t, 4, s.NumConstraints())
	assert.False(t, s.HasEditVariable(child.Left))
	assert.Empty(t, s.Changes())
}

func TestFrame_InsetsChild(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 0, 0, 200, 100)
	child := arena.New("child")
	frame := NewFrame(10)
	frame.AddChildLayout(parent, child)
	update(t, s, parent, child)
	assertRect(t, Rect{X: 10, Y: 10, Width: 180, Height: 80}, s.Bounds(child))

	frame.RemoveChildLayout(parent, child)
	assert.Empty(t, child.Constraints())
	update(t, s, child)
	assert.Equal(t, 4, s.NumConstraints())
}

func TestExactFrame_MatchesParent(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("parent")
	pin(parent, 5, 6, 70, 80)
	child := arena.New("child")
	var frame ExactFrame
	frame.AddChildLayout(parent, child)
	update(t, s, parent, child)
	assertRect(t, Rect{X: 5, Y: 6, Width: 70, Height: 80}, s.Bounds(child))
}

func TestLinearLayout_Orientation(t *testing.T) {
	n := NewNode(0, "n")
	assert.Same(t, n.Left, Beginning(Horizontal, n))
	assert.Same(t, n.Right, Ending(Horizontal, n))
	assert.Same(t, n.Top, Beginning(Vertical, n))
	assert.Same(t, n.Bottom, Ending(Vertical, n))
}

func TestLinearLayout_OrdersChildren(t *testing.T) {
	const padding = 10
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("list")
	pin(parent, 0, 0, 300, 300)
	list := NewLinearLayout(parent, Vertical, padding, true)

	var children []*Node
	add := func() {
		c := arena.New("")
		c.Height(50)
		list.AddChildLayout(parent, c)
		children = append(children, c)
		update(t, s, parent, c)
	}
	for range 3 {
		add()
	}

	var before []Rect
	for i, c := range children {
		b := s.Bounds(c)
		before = append(before, b)
		assert.InDelta(t, 0, b.X, delta)
		assert.InDelta(t, 300, b.Width, delta, "expand matches cross axis")
		if i > 0 {
			assert.GreaterOrEqual(t, b.Y, before[i-1].Bottom()+padding-delta)
		}
	}
	assert.InDelta(t, 10, before[0].Y, delta)

	add()
	for i, c := range children[:3] {
		assertRect(t, before[i], s.Bounds(c))
	}
	assert.GreaterOrEqual(t, s.Bounds(children[3]).Y, before[2].Bottom()+padding-delta)
	assert.Same(t, children[3].Bottom, list.End())
}

func TestLinearLayout_RemoveMiddleRelinks(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("row")
	pin(parent, 0, 0, 500, 40)
	row := NewLinearLayout(parent, Horizontal, 5, false)

	var cells []*Node
	for range 3 {
		c := arena.New("")
		c.Dimensions(40, 20)
		row.AddChildLayout(parent, c)
		cells = append(cells, c)
	}
	update(t, s, parent, cells[0], cells[1], cells[2])
	assert.InDelta(t, 95, s.Bounds(cells[2]).X, delta)
	assert.InDelta(t, 0, s.Bounds(cells[2]).Y, delta, "weak cross alignment")

	row.RemoveChildLayout(parent, cells[1])
	update(t, s, parent)
	require.NoError(t, s.RemoveNode(cells[1]))
	assert.Equal(t, 2, row.Len())
	assert.InDelta(t, 50, s.Bounds(cells[2]).X, delta)

	row.RemoveChildLayout(parent, cells[2])
	update(t, s, parent)
	assert.Same(t, cells[0].Right, row.End())
}

func TestLinearLayout_HugsLastChild(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	root := arena.New("root")
	pin(root, 0, 0, 100, 1000)
	parent := arena.New("list")
	parent.AlignTop(root)
	parent.MatchWidth(root)
	list := NewLinearLayout(parent, Vertical, 0, true)
	for range 4 {
		c := arena.New("")
		c.Height(25)
		list.AddChildLayout(parent, c)
		update(t, s, c)
	}
	update(t, s, root, parent)
	assert.InDelta(t, 100, s.Bounds(parent).Height, delta)
}

func TestGridLayout_PlacesCellsInOrder(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("grid")
	pin(parent, 0, 0, 300, 300)
	grid := NewGridLayout(parent, 2)

	var cells []*Node
	for range 3 {
		c := arena.New("")
		c.Dimensions(50, 50)
		grid.AddChildLayout(parent, c)
		cells = append(cells, c)
	}
	update(t, s, parent, cells[0], cells[1], cells[2])

	tests := []struct {
		row, col int
		want     Rect
	}{
		{0, 0, Rect{X: 0, Y: 0, Width: 50, Height: 50}},
		{0, 1, Rect{X: 50, Y: 0, Width: 50, Height: 50}},
		{1, 0, Rect{X: 0, Y: 50, Width: 50, Height: 50}},
	}
	for i, tt := range tests {
		row, col := grid.Cell(i)
		assert.Equal(t, tt.row, row)
		assert.Equal(t, tt.col, col)
		assertRect(t, tt.want, s.Bounds(cells[i]))
	}

	grid.RemoveChildLayout(parent, cells[0])
	update(t, s, parent)
	require.NoError(t, s.RemoveNode(cells[0]))
	assertRect(t, Rect{X: 0, Y: 0, Width: 50, Height: 50}, s.Bounds(cells[1]))
	assertRect(t, Rect{X: 50, Y: 0, Width: 50, Height: 50}, s.Bounds(cells[2]))
}

func TestGridLayout_SharesWidthWhenUnsized(t *testing.T) {
	arena := NewArena()
	s := NewSolver()
	parent := arena.New("grid")
	pin(parent, 0, 0, 300, 100)
	grid := NewGridLayout(parent, 3)
	var cells []*Node
	for range 3 {
		c := arena.New("")
		c.Height(20)
		grid.AddChildLayout(parent, c)
		cells = append(cells, c)
	}
	update(t, s, parent, cells[0], cells[1], cells[2])
	for i, c := range cells {
		assertRect(t, Rect{X: float64(i) * 100, Width: 100, Height: 20}, s.Bounds(c))
	}
}

func TestCustomContainer(t *testing.T) {
	var added, removed int
	c := Custom{
		OnAdd:    func(parent, child *Node) { added++ },
		OnRemove: func(parent, child *Node) { removed++ },
	}
	p, ch := NewNode(0, "p"), NewNode(1, "c")
	c.AddChildLayout(p, ch)
	c.RemoveChildLayout(p, ch)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
	Custom{}.AddChildLayout(p, ch)
}

func TestRect_Intersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	assert.Equal(t, Rect{X: 5, Y: 5, Width: 5, Height: 5}, a.Intersect(b))
	assert.True(t, a.Intersect(Rect{X: 20, Y: 20, Width: 1, Height: 1}).Empty())
	assert.True(t, a.Contains(Point{X: 0, Y: 9.5}))
	assert.False(t, a.Contains(Point{X: 10, Y: 0}))
}
