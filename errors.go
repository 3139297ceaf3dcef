package qframe

import (
	"errors"
	"fmt"
)

// UnknownTableError reports a lookup of a table name absent from the
// schema.
type UnknownTableError struct {
	Table string
}

// Error implements the error interface.
func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Table)
}

// IsUnknownTable returns true if the error is an UnknownTableError.
// Uses errors.As to handle wrapped errors.
func IsUnknownTable(err error) bool {
	var ue *UnknownTableError
	return errors.As(err, &ue)
}

// ExecutionError wraps a failure returned by the connection adapter during
// materialization. The adapter's original error is preserved and reachable
// through Unwrap.
type ExecutionError struct {
	// Query is the SQL statement that failed.
	Query string

	// Err is the adapter's error.
	Err error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute %q: %v", e.Query, e.Err)
}

// Unwrap returns the adapter's original error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsExecution returns true if the error is an ExecutionError.
// Uses errors.As to handle wrapped errors.
func IsExecution(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}
