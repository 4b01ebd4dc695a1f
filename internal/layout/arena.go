package layout

// Arena owns every Node of a UI, indexed by WidgetID. Ids are never
// reused, so a stale id simply misses.
type Arena struct {
	nodes map[WidgetID]*Node
	next  WidgetID
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make(map[WidgetID]*Node)}
}

// New allocates a node with a fresh id.
func (a *Arena) New(name string) *Node {
	id := a.next
	a.next++
	n := NewNode(id, name)
	a.nodes[id] = n
	return n
}

// Get looks up a node.
func (a *Arena) Get(id WidgetID) (*Node, bool) {
	n, ok := a.nodes[id]
	return n, ok
}

// Remove frees a node. The caller retracts its constraints first.
func (a *Arena) Remove(id WidgetID) {
	delete(a.nodes, id)
}

// Len returns the number of live nodes.
func (a *Arena) Len() int { return len(a.nodes) }
