package expr

// Expr represents a symbolic expression node.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the renderer.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Op identifies a binary or unary operator. The value is the SQL spelling.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"

	OpEq Op = "="
	OpNe Op = "<>"
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="

	OpAnd Op = "AND"
	OpOr  Op = "OR"
	OpNot Op = "NOT"
)

// Column references a column exposed by a plan source.
//
// Source is the identity token of the source the column belongs to; the
// renderer resolves it to a SQL alias through the Context. The binding is
// checked at render time, not at construction, so expressions can be built
// before the plan they apply to exists.
type Column struct {
	Source string // Source identity token (resolved to an alias at render)
	Name   string // Column name within the source
}

func (Column) exprNode() {}

// Literal is a scalar value inlined into the rendered SQL.
//
// Supported value kinds: string, all Go integer types, float32/float64,
// bool, and nil. Anything else fails with InvalidExpressionError at render.
type Literal struct {
	Value any
}

func (Literal) exprNode() {}

// Binary applies an operator to two operands.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (Binary) exprNode() {}

// Unary applies an operator to a single operand. Only OpNot is rendered.
type Unary struct {
	Op      Op
	Operand Expr
}

func (Unary) exprNode() {}

// Func applies an aggregate function to its argument.
type Func struct {
	Name string // SQL function name (SUM, AVG, MIN, MAX)
	Arg  Expr
}

func (Func) exprNode() {}

// Lit wraps a scalar value as a Literal expression.
func Lit(v any) Expr {
	return Literal{Value: v}
}

// lift converts a plain value to an expression. Values that are already
// expressions pass through unchanged; anything else becomes a Literal.
func lift(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Literal{Value: v}
}

// Binary operator constructors. Each accepts expressions or plain scalar
// values; scalars are lifted to literals.

// Add builds left + right.
func Add(left, right any) Expr { return Binary{Op: OpAdd, Left: lift(left), Right: lift(right)} }

// Sub builds left - right.
func Sub(left, right any) Expr { return Binary{Op: OpSub, Left: lift(left), Right: lift(right)} }

// Mul builds left * right.
func Mul(left, right any) Expr { return Binary{Op: OpMul, Left: lift(left), Right: lift(right)} }

// Div builds left / right.
func Div(left, right any) Expr { return Binary{Op: OpDiv, Left: lift(left), Right: lift(right)} }

// Eq builds left = right.
func Eq(left, right any) Expr { return Binary{Op: OpEq, Left: lift(left), Right: lift(right)} }

// Ne builds left <> right.
func Ne(left, right any) Expr { return Binary{Op: OpNe, Left: lift(left), Right: lift(right)} }

// Lt builds left < right.
func Lt(left, right any) Expr { return Binary{Op: OpLt, Left: lift(left), Right: lift(right)} }

// Le builds left <= right.
func Le(left, right any) Expr { return Binary{Op: OpLe, Left: lift(left), Right: lift(right)} }

// Gt builds left > right.
func Gt(left, right any) Expr { return Binary{Op: OpGt, Left: lift(left), Right: lift(right)} }

// Ge builds left >= right.
func Ge(left, right any) Expr { return Binary{Op: OpGe, Left: lift(left), Right: lift(right)} }

// And builds left AND right.
func And(left, right any) Expr { return Binary{Op: OpAnd, Left: lift(left), Right: lift(right)} }

// Or builds left OR right.
func Or(left, right any) Expr { return Binary{Op: OpOr, Left: lift(left), Right: lift(right)} }

// Not builds NOT operand.
func Not(operand Expr) Expr { return Unary{Op: OpNot, Operand: operand} }

// Aggregate function constructors.

// Sum builds SUM(arg).
func Sum(arg Expr) Expr { return Func{Name: "SUM", Arg: arg} }

// Avg builds AVG(arg).
func Avg(arg Expr) Expr { return Func{Name: "AVG", Arg: arg} }

// Min builds MIN(arg).
func Min(arg Expr) Expr { return Func{Name: "MIN", Arg: arg} }

// Max builds MAX(arg).
func Max(arg Expr) Expr { return Func{Name: "MAX", Arg: arg} }
