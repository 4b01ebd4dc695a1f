// Package ui wires the layout solver to a live widget tree.
//
// Core abstractions:
//   - UI: owns the widget tree, the layout arena and solver, and the event queue
//   - Event: a typed message (ChildAdded, UpdateLayout, MouseScroll, ...)
//   - Target: where an event goes (one widget, a widget subtree, or the UI)
//   - Handler: reacts to an event through a Context capability struct
//   - ScrollHandler: turns wheel deltas into clamped edit suggestions
//
// Everything runs on the goroutine that calls UI.Process. Handlers may
// enqueue further events; they run in FIFO order.
package ui
