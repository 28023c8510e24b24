package engine

import (
	"fmt"

	"allocation/pkg/schema"
)

// ValidateEntryID checks the shape of a root identifier before any input is
// read. It returns the identifier unchanged on success.
func ValidateEntryID(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: please provide a 6 digit employee id (e.g. 123456)", ErrInvalidFormat)
	}
	if !schema.ValidEmployeeID(raw) {
		return "", fmt.Errorf("%w: %q must be exactly 6 digits (e.g. 123456)", ErrInvalidFormat, raw)
	}
	return raw, nil
}

// ValidateRoot resolves id against the loaded directory and confirms it is a
// manager. It repeats the format check so it is safe to call on its own.
func ValidateRoot(dir *Directory, id string) (*schema.EmployeeRecord, error) {
	if _, err := ValidateEntryID(id); err != nil {
		return nil, err
	}
	rec, ok := dir.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s was not found", ErrNotFound, id)
	}
	if !rec.IsManager() {
		return nil, fmt.Errorf("%w: %s is not a manager: %s", ErrNotAManager, id, rec.Role)
	}
	return rec, nil
}
