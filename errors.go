package house_rental

import (
	"errors"
	"fmt"
)

// Error kinds shared by services and handlers. Wrap them with Errorf and
// classify with errors.Is at the HTTP boundary.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// Errorf wraps kind with a formatted message: "<kind>: <message>".
func Errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// StorageErr wraps a store failure so that both ErrStorage and the cause
// remain reachable through errors.Is.
func StorageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
