// Package cassowary implements an incremental linear constraint solver.
//
// Constraints are linear equalities or inequalities over Variables, each
// tagged with a Strength. Required constraints must all hold; weaker ones
// are satisfied best-effort, stronger first. The Solver keeps its tableau
// between calls so adding a constraint or suggesting a new value for an
// edit variable only re-derives what changed.
//
// Core abstractions:
//   - Variable: opaque handle for one unknown scalar
//   - Expression: Σ coefficient·variable + constant
//   - Constraint: expression {==, >=, <=} 0 with a Strength
//   - Solver: the tableau, edit variables and change tracking
//
// The Solver is not safe for concurrent use.
package cassowary
