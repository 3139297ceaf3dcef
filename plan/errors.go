package plan

import (
	"errors"
	"fmt"
)

// UnknownColumnError reports a column name that is not in scope for the
// attempted operation (selection, rename, drop, or join key).
type UnknownColumnError struct {
	// Column is the missing name.
	Column string

	// Op identifies the operation that looked the name up.
	Op string
}

// Error implements the error interface.
func (e *UnknownColumnError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: unknown column %q", e.Op, e.Column)
	}
	return fmt.Sprintf("unknown column %q", e.Column)
}

// IsUnknownColumn returns true if the error is an UnknownColumnError.
// Uses errors.As to handle wrapped errors.
func IsUnknownColumn(err error) bool {
	var ue *UnknownColumnError
	return errors.As(err, &ue)
}

// DuplicateColumnError reports a transformation that would give two
// projection entries the same output name.
type DuplicateColumnError struct {
	Column string
}

// Error implements the error interface.
func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Column)
}

// SharedSourceError reports a merge whose two sides are backed by the same
// source, which would leave column references ambiguous. Open a second
// frame over the table, or derive one side (filter, rename) first.
type SharedSourceError struct {
	Table string
}

// Error implements the error interface.
func (e *SharedSourceError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("merge: both sides read the same source %q", e.Table)
	}
	return "merge: both sides read the same source"
}

// IsSharedSource returns true if the error is a SharedSourceError.
// Uses errors.As to handle wrapped errors.
func IsSharedSource(err error) bool {
	var se *SharedSourceError
	return errors.As(err, &se)
}

// UnsupportedJoinKindError reports a merge with a join kind outside the
// supported set (inner, left).
type UnsupportedJoinKindError struct {
	Kind string
}

// Error implements the error interface.
func (e *UnsupportedJoinKindError) Error() string {
	return fmt.Sprintf("unsupported join kind %q (supported: inner, left)", e.Kind)
}

// IsUnsupportedJoinKind returns true if the error is an
// UnsupportedJoinKindError. Uses errors.As to handle wrapped errors.
func IsUnsupportedJoinKind(err error) bool {
	var ue *UnsupportedJoinKindError
	return errors.As(err, &ue)
}
