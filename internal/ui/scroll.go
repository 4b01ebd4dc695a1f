package ui

import (
	"fmt"

	"layoutkit/internal/cassowary"
	"layoutkit/internal/layout"
)

// DefaultScrollGain is the distance one wheel step moves content.
const DefaultScrollGain = 13

// ScrollHandler slides a scrollable widget inside its parent. It is idle
// until the first wheel event, which registers the widget's left and top
// as strong edit variables; from then on each event accumulates into a
// clamped offset that is suggested to the solver.
type ScrollHandler struct {
	offset layout.Point
	gain   float64
}

// NewScrollHandler returns an idle handler. A non-positive gain selects
// DefaultScrollGain.
func NewScrollHandler(gain float64) *ScrollHandler {
	if gain <= 0 {
		gain = DefaultScrollGain
	}
	return &ScrollHandler{gain: gain}
}

// Offset returns the content's displacement from the viewport origin.
// Both components are always in [min(0, viewport-content), 0].
func (h *ScrollHandler) Offset() layout.Point { return h.offset }

// Handle implements Handler. Events for widgets that are not scrollable
// are left unhandled and change nothing.
func (h *ScrollHandler) Handle(ctx *Context, ev Event) (bool, error) {
	scroll, ok := ev.(MouseScroll)
	if !ok {
		return false, nil
	}
	node, parent := ctx.Node(), ctx.Parent()
	if node == nil || parent == nil || !node.Scrollable {
		return false, nil
	}

	// Read sizes before registering edits: a fresh edit variable pulls its
	// edge toward zero until the first suggestion lands.
	content, viewport := ctx.Solver.Bounds(node), ctx.Solver.Bounds(parent)
	if err := ctx.Solver.Editable(node, cassowary.Strong); err != nil {
		return false, fmt.Errorf("scroll %s: %w", node.Name, err)
	}

	h.offset.X = ClampOffset(h.offset.X+scroll.Delta.X*h.gain, viewport.Width, content.Width)
	h.offset.Y = ClampOffset(h.offset.Y+scroll.Delta.Y*h.gain, viewport.Height, content.Height)
	if err := ctx.Solver.SuggestValue(node.Left, viewport.X+h.offset.X); err != nil {
		return false, err
	}
	if err := ctx.Solver.SuggestValue(node.Top, viewport.Y+h.offset.Y); err != nil {
		return false, err
	}
	ctx.PublishChanges()
	return true, nil
}

// ClampOffset limits a scroll offset to [min(0, viewport-content), 0]:
// never past the content start, never past its end, and pinned at zero
// when the content fits.
func ClampOffset(offset, viewport, content float64) float64 {
	return min(0, max(viewport-content, offset))
}
