package expr

import (
	"errors"
	"fmt"
)

// InvalidExpressionError reports a structurally invalid expression detected
// at render time, such as a column reference whose source is not part of
// the plan being rendered, or a literal of an unsupported kind.
type InvalidExpressionError struct {
	// Reason is a human-readable description of the defect.
	Reason string

	// Column is the offending column name, when the defect is a reference.
	Column string
}

// Error implements the error interface.
func (e *InvalidExpressionError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("invalid expression: %s (column %q)", e.Reason, e.Column)
	}
	return fmt.Sprintf("invalid expression: %s", e.Reason)
}

// IsInvalidExpression returns true if the error is an InvalidExpressionError.
// Uses errors.As to handle wrapped errors.
func IsInvalidExpression(err error) bool {
	var ie *InvalidExpressionError
	return errors.As(err, &ie)
}
