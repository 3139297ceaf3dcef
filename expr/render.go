package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Context maps source identity tokens to the SQL aliases assigned for one
// rendering pass. It is built by the plan renderer while walking the source
// tree and consulted here to resolve column references.
type Context map[string]string

// Render converts an expression to a SQL fragment.
//
// Rendering is pure and deterministic: the same expression rendered with
// the same context yields identical text. Binary operands that are
// themselves binary operations are parenthesized, which makes the output
// independent of operator precedence.
func Render(e Expr, ctx Context) (string, error) {
	switch node := e.(type) {
	case Column:
		alias, ok := ctx[node.Source]
		if !ok {
			return "", &InvalidExpressionError{
				Reason: "column reference does not resolve to a source in the plan",
				Column: node.Name,
			}
		}
		return alias + "." + node.Name, nil
	case Literal:
		return renderLiteral(node.Value)
	case Binary:
		left, err := renderOperand(node.Left, ctx)
		if err != nil {
			return "", err
		}
		right, err := renderOperand(node.Right, ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", left, node.Op, right), nil
	case Unary:
		if node.Op != OpNot {
			return "", &InvalidExpressionError{
				Reason: fmt.Sprintf("unsupported unary operator %q", node.Op),
			}
		}
		operand, err := renderOperand(node.Operand, ctx)
		if err != nil {
			return "", err
		}
		return "NOT " + operand, nil
	case Func:
		arg, err := Render(node.Arg, ctx)
		if err != nil {
			return "", err
		}
		return node.Name + "(" + arg + ")", nil
	case nil:
		return "", &InvalidExpressionError{Reason: "nil expression"}
	default:
		return "", &InvalidExpressionError{
			Reason: fmt.Sprintf("unknown expression type %T", e),
		}
	}
}

// renderOperand renders a sub-expression, parenthesizing it when it is a
// binary operation.
func renderOperand(e Expr, ctx Context) (string, error) {
	s, err := Render(e, ctx)
	if err != nil {
		return "", err
	}
	if _, ok := e.(Binary); ok {
		return "(" + s + ")", nil
	}
	return s, nil
}

// renderLiteral inlines a scalar value per the dialect quoting rules:
// strings single-quoted with internal quotes doubled, numbers unquoted,
// booleans as TRUE/FALSE, nil as NULL.
func renderLiteral(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	default:
		return "", &InvalidExpressionError{
			Reason: fmt.Sprintf("unsupported literal type %T", v),
		}
	}
}
