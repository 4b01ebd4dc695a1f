package ui

import (
	"fmt"
	"log"

	"layoutkit/internal/layout"
)

// Handler reacts to an event. It reports whether it consumed the event;
// an unconsumed MouseScroll bubbles to the widget's parent.
type Handler interface {
	Handle(ctx *Context, ev Event) (handled bool, err error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx *Context, ev Event) (bool, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx *Context, ev Event) (bool, error) { return f(ctx, ev) }

// handlerTable maps an event kind to its handlers in registration order.
type handlerTable map[EventKind][]Handler

func (t handlerTable) add(k EventKind, h Handler) {
	t[k] = append(t[k], h)
}

// run calls every handler for ev's kind and stops at the first error.
func (t handlerTable) run(ctx *Context, ev Event) (bool, error) {
	var handled bool
	for _, h := range t[ev.Kind()] {
		ok, err := h.Handle(ctx, ev)
		if err != nil {
			return handled, err
		}
		handled = handled || ok
	}
	return handled, nil
}

// Context is what a handler may touch: the UI it runs in, the solver, the
// queue (through Send) and the logger. Widget is the receiving widget, or
// layout.NoWidget for UI-wide handlers.
type Context struct {
	UI     *UI
	Solver *layout.Solver
	Logger *log.Logger
	Widget layout.WidgetID
}

// Send enqueues an event behind everything already queued.
func (c *Context) Send(t Target, ev Event) { c.UI.Send(t, ev) }

// Node returns the receiving widget's layout node, or nil.
func (c *Context) Node() *layout.Node { return c.UI.Node(c.Widget) }

// Parent returns the receiving widget's parent node, or nil.
func (c *Context) Parent() *layout.Node {
	w, ok := c.UI.widgets[c.Widget]
	if !ok {
		return nil
	}
	return c.UI.Node(w.Parent)
}

// UpdateLayout installs id's pending constraints now and queues the
// resulting LayoutChanged.
func (c *Context) UpdateLayout(id layout.WidgetID) error {
	n := c.UI.Node(id)
	if n == nil {
		return nil
	}
	changes, err := c.Solver.UpdateLayout(n)
	if err != nil {
		return fmt.Errorf("update layout of %s: %w", n.Name, err)
	}
	c.publish(changes)
	return nil
}

// PublishChanges queues a LayoutChanged for edges moved by suggestions.
func (c *Context) PublishChanges() { c.publish(c.Solver.Changes()) }

func (c *Context) publish(changes []layout.Change) {
	if len(changes) > 0 {
		c.Send(ToUI(), LayoutChanged{Changes: changes})
	}
}

func (u *UI) context(id layout.WidgetID) *Context {
	return &Context{UI: u, Solver: u.solver, Logger: u.logger, Widget: id}
}

// On registers a UI-wide handler.
func (u *UI) On(k EventKind, h Handler) {
	u.handlers.add(k, h)
}

// OnWidget registers a handler for events targeted at one widget.
func (u *UI) OnWidget(id layout.WidgetID, k EventKind, h Handler) {
	t, ok := u.widgetHandlers[id]
	if !ok {
		t = make(handlerTable)
		u.widgetHandlers[id] = t
	}
	t.add(k, h)
}

// Send enqueues ev for t. Nothing runs until Process.
func (u *UI) Send(t Target, ev Event) {
	u.queue = append(u.queue, envelope{target: t, event: ev})
}

// Pending returns the number of queued events.
func (u *UI) Pending() int { return len(u.queue) }

// Process drains the queue, including events queued by handlers. The
// first handler error stops draining; events still queued stay queued and
// the error is returned.
func (u *UI) Process() error {
	for len(u.queue) > 0 {
		env := u.queue[0]
		u.queue = u.queue[1:]
		if _, err := u.deliver(env); err != nil {
			u.logger.Printf("ui.Process: %s to %s: %v", env.event.Kind(), env.target, err)
			return err
		}
	}
	u.queue = nil
	return nil
}

func (u *UI) deliver(env envelope) (bool, error) {
	switch env.target.Scope {
	case ScopeUI:
		return u.handlers.run(u.context(layout.NoWidget), env.event)
	case ScopeWidget:
		return u.deliverWidget(env.target.Widget, env.event)
	default:
		var handled bool
		for _, id := range u.subtree(env.target.Widget) {
			ok, err := u.deliverWidget(id, env.event)
			if err != nil {
				return handled, err
			}
			handled = handled || ok
		}
		return handled, nil
	}
}

func (u *UI) deliverWidget(id layout.WidgetID, ev Event) (bool, error) {
	t, ok := u.widgetHandlers[id]
	if !ok {
		return false, nil
	}
	return t.run(u.context(id), ev)
}

// bubble offers ev to id and then each ancestor until one handles it.
func (u *UI) bubble(id layout.WidgetID, ev Event) (bool, error) {
	for id != layout.NoWidget {
		handled, err := u.deliverWidget(id, ev)
		if err != nil || handled {
			return handled, err
		}
		w, ok := u.widgets[id]
		if !ok {
			break
		}
		id = w.Parent
	}
	return false, nil
}
