package main

import (
	"errors"

	"allocation/pkg/engine"
)

// Process exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitRoot      = 3
	exitData      = 4
	exitStructure = 5
)

// codedError carries an explicit exit code for errors the engine does not classify.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	switch {
	case errors.Is(err, engine.ErrInvalidFormat):
		return exitUsage
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, engine.ErrNotAManager):
		return exitRoot
	case errors.Is(err, engine.ErrInvalidCost),
		errors.Is(err, engine.ErrMalformedRecord),
		errors.Is(err, engine.ErrDuplicateEmployee),
		errors.Is(err, engine.ErrMissingRoleAllocation):
		return exitData
	case errors.Is(err, engine.ErrCycleDetected):
		return exitStructure
	default:
		return exitFailure
	}
}
