// Package common defines the sentinel errors and error types shared by the
// repositories and the user service. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrDuplicateOrWrite reports that the store rejected a write, either
	// because of a duplicate key or for any other reason.
	ErrDuplicateOrWrite = errors.New("duplicate or rejected write")

	// ErrInvalidOperation reports a caller contract violation or a state the
	// caller should never have been able to reach.
	ErrInvalidOperation = errors.New("invalid operation")
)

// UserWriteError is returned when a user record could not be written.
// It matches ErrDuplicateOrWrite and unwraps to the store error.
type UserWriteError struct {
	Name string
	Err  error
}

func (e *UserWriteError) Error() string {
	return fmt.Sprintf("user %s wasn't added: %v", e.Name, e.Err)
}

func (e *UserWriteError) Unwrap() error {
	return e.Err
}

func (e *UserWriteError) Is(target error) bool {
	return target == ErrDuplicateOrWrite
}

// InvalidOperationf formats a message and wraps it with ErrInvalidOperation.
func InvalidOperationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}
