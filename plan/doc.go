// Package plan provides the immutable query plan and its SQL renderer.
//
// A Plan describes one logical relation: a source (base table or join of
// two plans), an ordered projection of named expressions, an optional
// boolean filter, and the DISTINCT/LIMIT/OFFSET modifiers. Plans are
// persistent values - every transformation returns a new Plan that shares
// the unchanged parts of the old one structurally. Nothing is mutated in
// place, so plans are safe to share between frames.
//
// ARCHITECTURE:
//
// The plan sits between the frame API and the connection adapter:
//
//	[Frame API] → [Plan] → [SQL text] → [Connection Adapter]
//
// Building a plan never touches the database. Rendering is total and
// side-effect-free; rendering the same plan twice yields identical text.
//
// SOURCES AND ALIASES:
//
// Source is a sealed interface with two implementations:
//   - Base: a named table with its discovery-order columns
//   - Join: inner or left join of two sub-plans on a key equality
//
// Aliases are assigned at render time, positionally, depth-first and
// left-to-right over the source tree: a, b, ..., z, aa, ab, ... A trivial
// side of a join (untouched base table) is inlined into the FROM clause;
// any other side renders as a parenthesized subquery with its own inner
// alias scope, and outer references address its output column names.
// Because assignment is positional, repeated table names never collide.
//
// COLUMN PROVENANCE:
//
// Column references carry the identity token of the source that owns them.
// Tokens are opaque (UUIDv7) and never appear in rendered SQL; the render
// context maps tokens to the aliases assigned for that pass. A reference
// to a token outside the plan's source tree fails rendering with
// expr.InvalidExpressionError.
package plan
