package ilp

import "errors"

var (
	// ErrInfeasible reports that the program has no feasible assignment.
	ErrInfeasible = errors.New("program is infeasible")
	// ErrSolverUnavailable reports that the requested backend cannot be
	// located or invoked.
	ErrSolverUnavailable = errors.New("solver unavailable")
	// ErrTimeout reports that the solver exceeded its allotted time. No
	// partial solution is returned.
	ErrTimeout = errors.New("solver timed out")
)
