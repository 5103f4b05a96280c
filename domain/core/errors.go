package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Shape / argument failures are fatal to the call that raised them
	ErrShape           = errors.New("input failed shape validation")
	ErrInvalidArgument = errors.New("invalid argument")

	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: evaluation run", ErrNotFound)

	// I/O errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyInput        = errors.New("input has no rows")
)

// ShapeError reports which structural precondition an input violates.
// It is raised before any check logic executes and never recovered internally.
type ShapeError struct {
	Entity string // "dataset", "data dictionary", "taxonomy", "dossier"
	Field  string // offending column or field, "" when the container itself is wrong
	Reason string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s: field %q: %s", e.Entity, e.Field, e.Reason)
}

// Unwrap ties ShapeError into the sentinel hierarchy.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// NewShapeError creates a shape error for the given entity and field.
func NewShapeError(entity, field, reason string) *ShapeError {
	return &ShapeError{Entity: entity, Field: field, Reason: reason}
}

// ArgumentError reports an invalid flag or option value.
type ArgumentError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Name, e.Reason)
}

// Unwrap ties ArgumentError into the sentinel hierarchy.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// IsShapeError reports whether err is (or wraps) a shape validation failure.
func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}
