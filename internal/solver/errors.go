package solver

import "errors"

var (
	// ErrUnknownVariable is returned when a call references a variable id
	// that was never passed to AddVariables.
	ErrUnknownVariable = errors.New("solver: unknown variable id")
	// ErrUnknownConstraint is returned when a call references a constraint
	// id that was never passed to AddLinearConstraints.
	ErrUnknownConstraint = errors.New("solver: unknown constraint id")
	// ErrDuplicateVariable is returned when a variable id is added twice.
	ErrDuplicateVariable = errors.New("solver: duplicate variable id")
	// ErrDuplicateConstraint is returned when a constraint id is added twice.
	ErrDuplicateConstraint = errors.New("solver: duplicate constraint id")
	// ErrNotOptimized is returned by the read-back methods when called
	// before Optimize has run successfully.
	ErrNotOptimized = errors.New("solver: Optimize has not produced a solution yet")
)
