// Package errs defines the error taxonomy for config reconciliation.
// Typed errors carry context and match their sentinel via errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrIO indicates a filesystem operation failed.
	ErrIO = errors.New("io error")

	// ErrParse indicates a malformed document.
	ErrParse = errors.New("parse error")

	// ErrAlreadyExists indicates an entity with the same name already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound indicates the entity does not exist in any location.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference indicates a {file:...} reference with no usable target.
	ErrInvalidReference = errors.New("invalid file reference")

	// ErrInvalidName indicates an entity name that cannot be used as a file name.
	ErrInvalidName = errors.New("invalid name")
)

// IOError wraps a failed filesystem call.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// NewIOError creates an IOError, or returns nil when err is nil.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// ParseError reports a document that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// AlreadyExistsError reports a create-time name conflict.
type AlreadyExistsError struct {
	Kind     string
	Name     string
	Location string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists %s", e.Kind, e.Name, e.Location)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// NotFoundError reports an entity absent from every location.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidReferenceError reports a {file:...} value whose target is empty or malformed.
type InvalidReferenceError struct {
	Entity string
	Field  string
	Ref    string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s file reference for %s: %q", e.Field, e.Entity, e.Ref)
}

func (e *InvalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }

// InvalidNameError reports an unusable entity name.
type InvalidNameError struct {
	Name       string
	Reason     string
	Suggestion string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}

func (e *InvalidNameError) Is(target error) bool { return target == ErrInvalidName }
