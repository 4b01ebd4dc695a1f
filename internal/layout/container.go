package layout

import "layoutkit/internal/cassowary"

// Container is a placement policy attached to one parent node. It is told
// when children arrive and leave and adds or retracts the constraints
// tying them to the parent. Containers never check feasibility; the
// Solver reports infeasible required constraints.
type Container interface {
	AddChildLayout(parent, child *Node)
	RemoveChildLayout(parent, child *Node)
}

// attachment records the constraints a container added for one child,
// split by the node that holds them.
type attachment struct {
	onChild  []cassowary.Constraint
	onParent []cassowary.Constraint
}

func (a attachment) retract(parent, child *Node) {
	child.Retract(a.onChild...)
	parent.Retract(a.onParent...)
}

// Frame keeps the child inside the parent, inset by Padding, and prefers
// it to fill the parent. The fill is strong rather than required: a
// required fill plus a non-zero inset has no solution.
type Frame struct {
	Padding  float64
	attached map[WidgetID]attachment
}

// NewFrame returns a frame with the given inset.
func NewFrame(padding float64) *Frame {
	return &Frame{Padding: padding}
}

func (f *Frame) AddChildLayout(parent, child *Node) {
	if f.attached == nil {
		f.attached = make(map[WidgetID]attachment)
	}
	f.attached[child.ID] = attachment{onChild: child.capture(func() {
		child.BoundByPadding(parent, f.Padding)
		child.MatchLayoutStrength(parent, cassowary.Strong)
	})}
}

func (f *Frame) RemoveChildLayout(parent, child *Node) {
	if a, ok := f.attached[child.ID]; ok {
		a.retract(parent, child)
		delete(f.attached, child.ID)
	}
}

// ExactFrame forces the child's box to equal the parent's.
type ExactFrame struct {
	attached map[WidgetID]attachment
}

func (f *ExactFrame) AddChildLayout(parent, child *Node) {
	if f.attached == nil {
		f.attached = make(map[WidgetID]attachment)
	}
	f.attached[child.ID] = attachment{onChild: child.capture(func() {
		child.MatchLayout(parent)
	})}
}

func (f *ExactFrame) RemoveChildLayout(parent, child *Node) {
	if a, ok := f.attached[child.ID]; ok {
		a.retract(parent, child)
		delete(f.attached, child.ID)
	}
}

// ScrollContainer lets each child scroll inside the parent.
type ScrollContainer struct {
	attached map[WidgetID]attachment
}

func (c *ScrollContainer) AddChildLayout(parent, child *Node) {
	if c.attached == nil {
		c.attached = make(map[WidgetID]attachment)
	}
	c.attached[child.ID] = attachment{onChild: child.capture(func() {
		child.ScrollInside(parent)
	})}
}

func (c *ScrollContainer) RemoveChildLayout(parent, child *Node) {
	if a, ok := c.attached[child.ID]; ok {
		a.retract(parent, child)
		child.Scrollable = false
		delete(c.attached, child.ID)
	}
}

// Custom adapts a pair of functions. Either may be nil.
type Custom struct {
	OnAdd    func(parent, child *Node)
	OnRemove func(parent, child *Node)
}

func (c Custom) AddChildLayout(parent, child *Node) {
	if c.OnAdd != nil {
		c.OnAdd(parent, child)
	}
}

func (c Custom) RemoveChildLayout(parent, child *Node) {
	if c.OnRemove != nil {
		c.OnRemove(parent, child)
	}
}

var (
	_ Container = (*Frame)(nil)
	_ Container = (*ExactFrame)(nil)
	_ Container = (*ScrollContainer)(nil)
	_ Container = (*LinearLayout)(nil)
	_ Container = (*GridLayout)(nil)
	_ Container = Custom{}
)
