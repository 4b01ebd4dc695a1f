package cassowary

import "errors"

var (
	// ErrUnsatisfiable is returned when a required constraint conflicts
	// with the required constraints already in the solver.
	ErrUnsatisfiable = errors.New("unsatisfiable required constraint")
	// ErrDuplicateConstraint is returned when a structurally equal
	// constraint is already installed.
	ErrDuplicateConstraint = errors.New("duplicate constraint")
	// ErrUnknownConstraint is returned when removing a constraint that was
	// never added.
	ErrUnknownConstraint = errors.New("unknown constraint")
	// ErrDuplicateEditVariable is returned when a variable is already an
	// edit variable.
	ErrDuplicateEditVariable = errors.New("duplicate edit variable")
	// ErrUnknownEditVariable is returned when suggesting or removing a
	// variable that is not an edit variable.
	ErrUnknownEditVariable = errors.New("unknown edit variable")
	// ErrBadRequiredStrength is returned when adding an edit variable at
	// required strength.
	ErrBadRequiredStrength = errors.New("edit variable cannot be required")
	// ErrInternal signals a broken tableau invariant.
	ErrInternal = errors.New("internal solver error")
)
