// Package expr provides the symbolic expression AST for lazy query building.
//
// An Expr is an immutable value describing a column reference, a literal,
// or an operator applied to other expressions. Building an expression never
// touches the database and never mutates its operands; every combinator
// returns a new node.
//
// Expr is a sealed interface using the marker method pattern. Only types in
// this package implement it, which keeps type switches in the renderer
// exhaustive and prevents external extensions.
//
// Expression types:
//   - Column: reference to a column of a plan source
//   - Literal: inlined scalar value
//   - Binary: arithmetic, comparison, or boolean operator over two operands
//   - Unary: NOT
//   - Func: aggregate function (SUM, AVG, MIN, MAX)
//
// Rendering is pure and deterministic: the same expression rendered against
// the same alias context produces identical SQL text, byte for byte. Column
// references are resolved against a Context mapping source tokens to SQL
// aliases; a reference to a source absent from the context fails with
// InvalidExpressionError. No type checking happens at construction time.
// Mismatched operand kinds surface either as InvalidExpressionError during
// rendering or as a database error at materialization.
package expr
