// Package layout maps widgets onto rectangles with linear constraints.
//
// Each widget owns a Node: four edge variables plus the constraints that
// reference them. Containers (Frame, ExactFrame, LinearLayout, GridLayout,
// ScrollContainer, Custom) add and retract constraints as children come
// and go. A Solver pushes node constraints into a shared
// cassowary.Solver and reports which edges moved.
//
// Bounds read before the first UpdateLayout of a node are zero.
package layout
