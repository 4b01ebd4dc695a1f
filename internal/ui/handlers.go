package ui

import (
	"fmt"

	"layoutkit/internal/cassowary"
	"layoutkit/internal/layout"
)

// containerHandler forwards structural events to the receiving widget's
// container.
func containerHandler(ctx *Context, ev Event) (bool, error) {
	w, ok := ctx.UI.widgets[ctx.Widget]
	if !ok || w.container == nil {
		return false, nil
	}
	switch ev := ev.(type) {
	case ChildAdded:
		child := ctx.UI.Node(ev.Child)
		if child == nil {
			return false, nil
		}
		w.container.AddChildLayout(w.Node, child)
	case ChildRemoved:
		child := ctx.UI.Node(ev.Child)
		if child == nil {
			return false, nil
		}
		w.container.RemoveChildLayout(w.Node, child)
	default:
		return false, nil
	}
	return true, nil
}

func (u *UI) registerCoreHandlers() {
	u.On(KindChildAdded, HandlerFunc(u.handleChildAdded))
	u.On(KindChildRemoved, HandlerFunc(u.handleChildRemoved))
	u.On(KindUpdateLayout, HandlerFunc(u.handleUpdateLayout))
	u.On(KindLayoutChanged, HandlerFunc(u.handleLayoutChanged))
	u.On(KindRedraw, HandlerFunc(u.handleRedraw))
	u.On(KindWindowResized, HandlerFunc(u.handleWindowResized))
	u.On(KindResizeWindow, HandlerFunc(u.handleResizeWindow))
	u.On(KindMouseScroll, HandlerFunc(u.handleMouseScroll))
}

// handleChildAdded runs after the parent's container has placed the child:
// it gives viewport children a scroll handler and queues layout updates
// for the parent and the child's subtree.
func (u *UI) handleChildAdded(ctx *Context, e Event) (bool, error) {
	ev := e.(ChildAdded)
	parent, ok := u.widgets[ev.Parent]
	if !ok {
		return false, nil
	}
	child, ok := u.widgets[ev.Child]
	if !ok {
		return false, nil
	}
	if parent.scrollChildren && child.scroll == nil {
		child.scroll = NewScrollHandler(u.scrollGain)
		u.OnWidget(child.ID, KindMouseScroll, child.scroll)
	}
	ctx.Send(ToUI(), UpdateLayout{Widget: parent.ID})
	for _, id := range u.subtree(child.ID) {
		ctx.Send(ToUI(), UpdateLayout{Widget: id})
	}
	return true, nil
}

// handleChildRemoved withdraws the parent's retracted constraints, then
// tears the child's subtree down, children before parents, and publishes
// whatever the teardown moved.
func (u *UI) handleChildRemoved(ctx *Context, e Event) (bool, error) {
	ev := e.(ChildRemoved)
	if ev.Parent != layout.NoWidget {
		if err := ctx.UpdateLayout(ev.Parent); err != nil {
			return false, err
		}
	}
	ids := u.subtree(ev.Child)
	for i := len(ids) - 1; i >= 0; i-- {
		w := u.widgets[ids[i]]
		if err := u.solver.RemoveNode(w.Node); err != nil {
			return false, fmt.Errorf("remove %s: %w", w.Name, err)
		}
		u.arena.Remove(w.ID)
		delete(u.widgets, w.ID)
		delete(u.widgetHandlers, w.ID)
	}
	if len(ids) > 0 {
		u.logger.Printf("ui: removed %d widget(s) under %d", len(ids), ev.Parent)
	}
	// Withdrawing constraints re-solves; survivors may have moved.
	ctx.PublishChanges()
	return true, nil
}

func (u *UI) handleUpdateLayout(ctx *Context, e Event) (bool, error) {
	ev := e.(UpdateLayout)
	if err := ctx.UpdateLayout(ev.Widget); err != nil {
		return false, err
	}
	return true, nil
}

// handleLayoutChanged refreshes the cached bounds of every widget that
// moved, tells the renderer and the widget, and queues one Redraw.
func (u *UI) handleLayoutChanged(ctx *Context, e Event) (bool, error) {
	ev := e.(LayoutChanged)
	var moved []layout.WidgetID
	seen := make(map[layout.WidgetID]bool)
	for _, c := range ev.Changes {
		w, ok := u.widgets[c.Widget]
		if !ok {
			continue
		}
		u.logger.Printf("%s: %s = %g", w.Name, c.Edge, c.Value)
		if !seen[c.Widget] {
			seen[c.Widget] = true
			moved = append(moved, c.Widget)
		}
	}
	for _, id := range moved {
		w := u.widgets[id]
		w.Bounds = u.solver.Bounds(w.Node)
		if u.renderer != nil {
			u.renderer.LayoutUpdated(id, w.Bounds)
		}
		ctx.Send(ToWidget(id), LayoutUpdated{Widget: id, Bounds: w.Bounds})
	}
	if len(moved) > 0 && !u.redrawQueued {
		u.redrawQueued = true
		ctx.Send(ToUI(), Redraw{})
	}
	return true, nil
}

func (u *UI) handleRedraw(*Context, Event) (bool, error) {
	u.redrawQueued = false
	if u.renderer != nil {
		u.renderer.Redraw()
	}
	return true, nil
}

// handleWindowResized drives the root's right and bottom edges, which
// become strong edit variables on the first resize.
func (u *UI) handleWindowResized(ctx *Context, e Event) (bool, error) {
	ev := e.(WindowResized)
	root := u.Node(u.root)
	for _, v := range []*cassowary.Variable{root.Right, root.Bottom} {
		if u.solver.HasEditVariable(v) {
			continue
		}
		if err := u.solver.AddEditVariable(v, cassowary.Strong); err != nil {
			return false, fmt.Errorf("window resize: %w", err)
		}
	}
	if err := u.solver.SuggestValue(root.Right, ev.Width); err != nil {
		return false, err
	}
	if err := u.solver.SuggestValue(root.Bottom, ev.Height); err != nil {
		return false, err
	}
	ctx.PublishChanges()
	return true, nil
}

// handleResizeWindow fits the window to the root's solved size, never
// smaller than 1x1.
func (u *UI) handleResizeWindow(*Context, Event) (bool, error) {
	if u.window == nil {
		return false, nil
	}
	b := u.solver.Bounds(u.Node(u.root))
	u.window.Resize(max(1, b.Width), max(1, b.Height))
	return true, nil
}

// handleMouseScroll routes a UI-wide wheel event to the widget under the
// cursor.
func (u *UI) handleMouseScroll(_ *Context, e Event) (bool, error) {
	ev := e.(MouseScroll)
	id, ok := u.WidgetAt(ev.At)
	if !ok {
		return false, nil
	}
	return u.bubble(id, ev)
}
