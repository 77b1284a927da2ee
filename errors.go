package shtest

import (
	"errors"
	"fmt"
)

// FatalError marks a user-actionable error that aborts the run
// immediately with exit code 2 (§7), as opposed to an ordinary test
// failure (exit code 1 eventually, execution continues).
type FatalError struct {
	err error
}

func (e *FatalError) Error() string { return e.err.Error() }
func (e *FatalError) Unwrap() error { return e.err }

// Fatalf builds a FatalError from a format string.
func Fatalf(format string, args ...any) error {
	return &FatalError{err: fmt.Errorf(format, args...)}
}

// IsFatal reports whether err (or something it wraps) is a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
