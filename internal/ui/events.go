package ui

import (
	"fmt"

	"layoutkit/internal/layout"
)

// EventKind is the dispatch key of an Event.
type EventKind uint8

const (
	KindChildAdded EventKind = iota
	KindChildRemoved
	KindUpdateLayout
	KindLayoutChanged
	KindLayoutUpdated
	KindResizeWindow
	KindWindowResized
	KindMouseScroll
	KindRedraw
)

var kindNames = [...]string{
	KindChildAdded:    "child_added",
	KindChildRemoved:  "child_removed",
	KindUpdateLayout:  "update_layout",
	KindLayoutChanged: "layout_changed",
	KindLayoutUpdated: "layout_updated",
	KindResizeWindow:  "resize_window",
	KindWindowResized: "window_resized",
	KindMouseScroll:   "mouse_scroll",
	KindRedraw:        "redraw",
}

func (k EventKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is a message flowing through the UI queue.
type Event interface {
	Kind() EventKind
}

// ChildAdded is sent when Child is attached under Parent.
type ChildAdded struct {
	Parent layout.WidgetID
	Child  layout.WidgetID
}

// ChildRemoved is sent when Child is detached from Parent. The child's
// subtree is torn down after its parent's container has seen this event.
type ChildRemoved struct {
	Parent layout.WidgetID
	Child  layout.WidgetID
}

// UpdateLayout pushes Widget's pending constraints into the solver.
type UpdateLayout struct {
	Widget layout.WidgetID
}

// LayoutChanged carries the edges that moved in the last solve.
type LayoutChanged struct {
	Changes []layout.Change
}

// LayoutUpdated tells a widget its solved bounds changed.
type LayoutUpdated struct {
	Widget layout.WidgetID
	Bounds layout.Rect
}

// ResizeWindow asks the window to take the root's solved size.
type ResizeWindow struct{}

// WindowResized reports a new window size from the window system.
type WindowResized struct {
	Width, Height float64
}

// MouseScroll carries a wheel delta. At is the cursor position, used when
// the event is sent to the whole UI and must find its widget.
type MouseScroll struct {
	Delta layout.Point
	At    layout.Point
}

// Redraw asks the renderer to repaint everything.
type Redraw struct{}

func (ChildAdded) Kind() EventKind    { return KindChildAdded }
func (ChildRemoved) Kind() EventKind  { return KindChildRemoved }
func (UpdateLayout) Kind() EventKind  { return KindUpdateLayout }
func (LayoutChanged) Kind() EventKind { return KindLayoutChanged }
func (LayoutUpdated) Kind() EventKind { return KindLayoutUpdated }
func (ResizeWindow) Kind() EventKind  { return KindResizeWindow }
func (WindowResized) Kind() EventKind { return KindWindowResized }
func (MouseScroll) Kind() EventKind   { return KindMouseScroll }
func (Redraw) Kind() EventKind        { return KindRedraw }

// Scope selects which handlers receive an event.
type Scope uint8

const (
	// ScopeWidget delivers to one widget's handlers.
	ScopeWidget Scope = iota
	// ScopeSubtree delivers to a widget and all its descendants, parents first.
	ScopeSubtree
	// ScopeUI delivers to the UI-wide handlers.
	ScopeUI
)

func (s Scope) String() string {
	switch s {
	case ScopeWidget:
		return "widget"
	case ScopeSubtree:
		return "subtree"
	default:
		return "ui"
	}
}

// Target addresses an event.
type Target struct {
	Scope  Scope
	Widget layout.WidgetID
}

// ToWidget targets a single widget.
func ToWidget(id layout.WidgetID) Target { return Target{Scope: ScopeWidget, Widget: id} }

// ToSubtree targets a widget and its descendants.
func ToSubtree(id layout.WidgetID) Target { return Target{Scope: ScopeSubtree, Widget: id} }

// ToUI targets the UI-wide handlers.
func ToUI() Target { return Target{Scope: ScopeUI, Widget: layout.NoWidget} }

func (t Target) String() string {
	if t.Scope == ScopeUI {
		return "ui"
	}
	return fmt.Sprintf("%s(%d)", t.Scope, t.Widget)
}

type envelope struct {
	target Target
	event  Event
}
