package task

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid task")
	// ErrNotFound is returned when an id does not exist in the store.
	ErrNotFound = errors.New("task not found")
	// ErrAlreadyCompleted is returned when completing a completed task.
	ErrAlreadyCompleted = errors.New("task already completed")
	// ErrDuplicateID is returned by Restore when two tasks share an id.
	ErrDuplicateID = errors.New("duplicate task id")
	// ErrIDExhausted is returned by Add when no unused id is left.
	ErrIDExhausted = errors.New("task ids exhausted")
)

// ValidationError represents rejected input with the offending field.
type ValidationError struct {
	Field string // Task field that failed validation
	Err   error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrValidation) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
