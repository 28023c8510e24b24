package engine

import "errors"

// Every failure the engine reports wraps exactly one of these sentinels, so
// callers classify with errors.Is and still get the offending value in the
// message.
var (
	// ErrInvalidFormat: the supplied employee identifier is missing or is
	// not exactly six ASCII digits.
	ErrInvalidFormat = errors.New("invalid employee id")
	// ErrNotFound: no directory record exists for the identifier.
	ErrNotFound = errors.New("employee not found")
	// ErrNotAManager: the identifier resolves to a record whose role is not MANAGER.
	ErrNotAManager = errors.New("employee is not a manager")
	// ErrInvalidCost: a role-cost line carries a cost that is not a
	// non-negative base-10 integer.
	ErrInvalidCost = errors.New("invalid role cost")
	// ErrMissingRoleAllocation: a role reached during aggregation has no
	// entry in the role-cost table.
	ErrMissingRoleAllocation = errors.New("missing role allocation")
	// ErrMalformedRecord: an input line does not have the expected field count.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrDuplicateEmployee: an identifier is defined twice under DuplicateReject.
	ErrDuplicateEmployee = errors.New("duplicate employee id")
	// ErrCycleDetected: the manager references loop back onto an employee
	// already counted in the current traversal.
	ErrCycleDetected = errors.New("reporting cycle detected")
)
