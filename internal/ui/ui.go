package ui

import (
	"errors"
	"fmt"
	"io"
	"log"

	"layoutkit/internal/cassowary"
	"layoutkit/internal/layout"
)

var (
	// ErrUnknownWidget is returned for ids that were never created or have
	// been removed.
	ErrUnknownWidget = errors.New("unknown widget")
	// ErrAttached is returned when adding a child that already has a parent
	// or would become its own ancestor.
	ErrAttached = errors.New("widget already attached")
	// ErrRootRemoval is returned when removing the root widget.
	ErrRootRemoval = errors.New("cannot remove root widget")
)

// Widget is one node of the UI tree. Bounds are the solved bounds as of
// the last processed LayoutChanged.
type Widget struct {
	ID       layout.WidgetID
	Name     string
	Parent   layout.WidgetID
	Children []layout.WidgetID
	Node     *layout.Node
	Bounds   layout.Rect

	container      layout.Container
	hasContainer   bool
	scrollChildren bool
	scroll         *ScrollHandler
}

// UI owns a widget tree and the single solver laying it out.
type UI struct {
	arena  *layout.Arena
	solver *layout.Solver
	root   layout.WidgetID

	widgets        map[layout.WidgetID]*Widget
	handlers       handlerTable
	widgetHandlers map[layout.WidgetID]handlerTable
	queue          []envelope
	redrawQueued   bool

	renderer   Renderer
	window     Window
	logger     *log.Logger
	scrollGain float64
	solverOpts []layout.SolverOption
}

// Option configures a UI.
type Option func(*UI)

// WithRenderer sets the renderer notified of layout updates.
func WithRenderer(r Renderer) Option { return func(u *UI) { u.renderer = r } }

// WithWindow sets the window resized by ResizeWindow.
func WithWindow(w Window) Option { return func(u *UI) { u.window = w } }

// WithLogger logs edge changes and handler errors to l.
func WithLogger(l *log.Logger) Option {
	return func(u *UI) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithScrollGain sets the wheel sensitivity of scroll handlers.
func WithScrollGain(g float64) Option { return func(u *UI) { u.scrollGain = g } }

// WithSolverOptions passes options to the layout solver.
func WithSolverOptions(opts ...layout.SolverOption) Option {
	return func(u *UI) { u.solverOpts = append(u.solverOpts, opts...) }
}

// New creates a UI with a root widget pinned at the origin. The root's
// size follows WindowResized once the first one arrives; before that it
// is whatever its content makes it.
func New(opts ...Option) *UI {
	u := &UI{
		arena:          layout.NewArena(),
		widgets:        make(map[layout.WidgetID]*Widget),
		handlers:       make(handlerTable),
		widgetHandlers: make(map[layout.WidgetID]handlerTable),
		logger:         log.New(io.Discard, "", 0),
		scrollGain:     DefaultScrollGain,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.solver = layout.NewSolver(u.solverOpts...)

	root := u.NewWidget("root")
	root.Node.Add(
		cassowary.NewConstraint(root.Node.Left.Expr(), cassowary.EQ, cassowary.Constant(0), cassowary.Required),
		cassowary.NewConstraint(root.Node.Top.Expr(), cassowary.EQ, cassowary.Constant(0), cassowary.Required),
	)
	u.root = root.ID
	u.registerCoreHandlers()
	u.Send(ToUI(), UpdateLayout{Widget: root.ID})
	return u
}

// Root returns the root widget's id.
func (u *UI) Root() layout.WidgetID { return u.root }

// Solver returns the layout solver.
func (u *UI) Solver() *layout.Solver { return u.solver }

// NewWidget creates a detached widget. Add constraints to its Node, then
// attach it with AddChild.
func (u *UI) NewWidget(name string) *Widget {
	n := u.arena.New(name)
	w := &Widget{ID: n.ID, Name: n.Name, Parent: layout.NoWidget, Node: n}
	u.widgets[w.ID] = w
	return w
}

// Widget looks up a widget.
func (u *UI) Widget(id layout.WidgetID) (*Widget, bool) {
	w, ok := u.widgets[id]
	return w, ok
}

// ScrollHandler returns the handler scrolling id inside its viewport, or
// nil if id is not a viewport child.
func (w *Widget) ScrollHandler() *ScrollHandler { return w.scroll }

// Node returns a widget's layout node, or nil.
func (u *UI) Node(id layout.WidgetID) *layout.Node {
	n, _ := u.arena.Get(id)
	return n
}

// Len returns the number of live widgets, root included.
func (u *UI) Len() int { return len(u.widgets) }

// AddChild attaches child under parent and queues ChildAdded for the
// parent's container and the UI.
func (u *UI) AddChild(parent, child layout.WidgetID) error {
	p, ok := u.widgets[parent]
	if !ok {
		return fmt.Errorf("add child: parent %d: %w", parent, ErrUnknownWidget)
	}
	c, ok := u.widgets[child]
	if !ok {
		return fmt.Errorf("add child: child %d: %w", child, ErrUnknownWidget)
	}
	if c.Parent != layout.NoWidget || child == u.root || u.isAncestor(child, parent) {
		return fmt.Errorf("add child %s to %s: %w", c.Name, p.Name, ErrAttached)
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
	ev := ChildAdded{Parent: parent, Child: child}
	u.Send(ToWidget(parent), ev)
	u.Send(ToUI(), ev)
	return nil
}

// RemoveWidget detaches id from its parent. Once processed, the parent's
// container drops it and the whole subtree is torn down: constraints and
// edit variables leave the solver and the ids stop resolving.
func (u *UI) RemoveWidget(id layout.WidgetID) error {
	if id == u.root {
		return ErrRootRemoval
	}
	w, ok := u.widgets[id]
	if !ok {
		return fmt.Errorf("remove widget %d: %w", id, ErrUnknownWidget)
	}
	if p, ok := u.widgets[w.Parent]; ok {
		for i, c := range p.Children {
			if c == id {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	ev := ChildRemoved{Parent: w.Parent, Child: id}
	if w.Parent != layout.NoWidget {
		u.Send(ToWidget(w.Parent), ev)
	}
	u.Send(ToUI(), ev)
	return nil
}

// SetContainer makes c place the children of id added from now on.
func (u *UI) SetContainer(id layout.WidgetID, c layout.Container) error {
	w, ok := u.widgets[id]
	if !ok {
		return fmt.Errorf("set container: %d: %w", id, ErrUnknownWidget)
	}
	w.container = c
	if !w.hasContainer {
		u.OnWidget(id, KindChildAdded, HandlerFunc(containerHandler))
		u.OnWidget(id, KindChildRemoved, HandlerFunc(containerHandler))
		w.hasContainer = true
	}
	return nil
}

// VBox stacks id's children top to bottom.
func (u *UI) VBox(id layout.WidgetID, padding float64, expand bool) error {
	return u.linear(id, layout.Vertical, padding, expand)
}

// HBox stacks id's children left to right.
func (u *UI) HBox(id layout.WidgetID, padding float64, expand bool) error {
	return u.linear(id, layout.Horizontal, padding, expand)
}

func (u *UI) linear(id layout.WidgetID, o layout.Orientation, padding float64, expand bool) error {
	n := u.Node(id)
	if n == nil {
		return fmt.Errorf("linear layout: %d: %w", id, ErrUnknownWidget)
	}
	return u.SetContainer(id, layout.NewLinearLayout(n, o, padding, expand))
}

// Grid lays id's children out in columns.
func (u *UI) Grid(id layout.WidgetID, columns int) error {
	n := u.Node(id)
	if n == nil {
		return fmt.Errorf("grid layout: %d: %w", id, ErrUnknownWidget)
	}
	return u.SetContainer(id, layout.NewGridLayout(n, columns))
}

// ContentsScroll makes id a viewport: each child scrolls inside it and
// gets a ScrollHandler.
func (u *UI) ContentsScroll(id layout.WidgetID) error {
	if err := u.SetContainer(id, &layout.ScrollContainer{}); err != nil {
		return err
	}
	u.widgets[id].scrollChildren = true
	return nil
}

// Resize queues a WindowResized.
func (u *UI) Resize(width, height float64) {
	u.Send(ToUI(), WindowResized{Width: width, Height: height})
}

// Scroll queues a wheel event at a cursor position. It goes to the deepest
// widget under the cursor and bubbles up until a scroll handler takes it.
func (u *UI) Scroll(at, delta layout.Point) {
	u.Send(ToUI(), MouseScroll{At: at, Delta: delta})
}

// WidgetAt returns the deepest widget whose bounds contain p. Later
// siblings win over earlier ones. Children outside their parent's bounds
// are not hit.
func (u *UI) WidgetAt(p layout.Point) (layout.WidgetID, bool) {
	return u.hit(u.root, p)
}

func (u *UI) hit(id layout.WidgetID, p layout.Point) (layout.WidgetID, bool) {
	w := u.widgets[id]
	if !w.Bounds.Contains(p) {
		return layout.NoWidget, false
	}
	for i := len(w.Children) - 1; i >= 0; i-- {
		if got, ok := u.hit(w.Children[i], p); ok {
			return got, true
		}
	}
	return id, true
}

// WidgetInfo is one row of a Snapshot.
type WidgetInfo struct {
	ID     layout.WidgetID `json:"id"`
	Name   string          `json:"name"`
	Parent layout.WidgetID `json:"parent"`
	Depth  int             `json:"depth"`
	Bounds layout.Rect     `json:"bounds"`
}

// Snapshot lists the attached widgets in draw order (parents before
// children).
func (u *UI) Snapshot() []WidgetInfo {
	var out []WidgetInfo
	var walk func(id layout.WidgetID, depth int)
	walk = func(id layout.WidgetID, depth int) {
		w := u.widgets[id]
		out = append(out, WidgetInfo{ID: id, Name: w.Name, Parent: w.Parent, Depth: depth, Bounds: w.Bounds})
		for _, c := range w.Children {
			walk(c, depth+1)
		}
	}
	walk(u.root, 0)
	return out
}

// subtree lists id and its descendants, parents first.
func (u *UI) subtree(id layout.WidgetID) []layout.WidgetID {
	w, ok := u.widgets[id]
	if !ok {
		return nil
	}
	out := []layout.WidgetID{id}
	for _, c := range w.Children {
		out = append(out, u.subtree(c)...)
	}
	return out
}

func (u *UI) isAncestor(a, b layout.WidgetID) bool {
	for id := b; id != layout.NoWidget; {
		if id == a {
			return true
		}
		w, ok := u.widgets[id]
		if !ok {
			return false
		}
		id = w.Parent
	}
	return false
}
