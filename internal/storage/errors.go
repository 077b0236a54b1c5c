package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCorrupt matches any *CorruptError via errors.Is.
	ErrCorrupt = errors.New("corrupt task file")
	// ErrIO matches any *IOError via errors.Is.
	ErrIO = errors.New("task file I/O failed")

	errIsDir = errors.New("is a directory")
)

// ValidationError represents a problem found in the task file.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CorruptError is returned by Load when the file exists but cannot be
// trusted. Problems holds every issue found, not just the first.
type CorruptError struct {
	Path     string
	Problems []error
}

func (e *CorruptError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "corrupt task file %s", e.Path)
	if len(e.Problems) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ": %v", e.Problems[0])
	if n := len(e.Problems) - 1; n > 0 {
		fmt.Fprintf(&b, " (and %d more)", n)
	}
	return b.String()
}

// Unwrap returns the individual problems.
func (e *CorruptError) Unwrap() []error {
	return e.Problems
}

// Is lets errors.Is(err, ErrCorrupt) match.
func (e *CorruptError) Is(target error) bool {
	return target == ErrCorrupt
}

// IOError wraps a filesystem failure while reading or writing the task file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrIO) match.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
