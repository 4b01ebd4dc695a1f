package ui

import "layoutkit/internal/layout"

// Renderer draws widgets. LayoutUpdated is called once per widget whose
// solved bounds moved, then Redraw once for the whole batch.
type Renderer interface {
	LayoutUpdated(id layout.WidgetID, bounds layout.Rect)
	Redraw()
}

// Window is the native window hosting the root widget.
type Window interface {
	Resize(width, height float64)
}
