package qframe

import (
	"context"
	"fmt"
	"strings"

	"github.com/qframe-project/qframe/expr"
	"github.com/qframe-project/qframe/plan"
)

// Frame is a lazy handle on one logical relation.
//
// A Frame wraps an immutable query plan. Every transformation returns a
// new Frame wrapping a new plan; nothing mutates in place, and no method
// touches the database except Head, Shape, Values, and Scalar. Those
// materialize by rendering the plan to SQL and executing it through the
// connection adapter, with exactly one round-trip per call and no retries.
type Frame struct {
	conn Conn
	plan *plan.Plan

	// rows caches the result of Values. Write-once per frame; derived
	// frames start cold.
	rows   []Row
	cached bool
}

// Shape is the dimensionality of a frame: row count by column count.
type Shape struct {
	Rows int
	Cols int
}

// withPlan derives a frame over a new plan with a cold cache.
func (f *Frame) withPlan(p *plan.Plan) *Frame {
	return &Frame{conn: f.conn, plan: p}
}

// Plan returns the frame's underlying query plan.
func (f *Frame) Plan() *plan.Plan {
	return f.plan
}

// Columns returns the projection output names in declared order.
func (f *Frame) Columns() []string {
	return f.plan.Names()
}

// Width returns the number of projection entries without executing
// anything.
func (f *Frame) Width() int {
	return f.plan.Width()
}

// Col returns the expression behind an output column, for use in computed
// columns and filters. The expression carries the column's provenance, so
// filters built from it reference source columns, not SELECT aliases.
func (f *Frame) Col(name string) (expr.Expr, error) {
	e, ok := f.plan.Field(name)
	if !ok {
		return nil, &plan.UnknownColumnError{Column: name, Op: "column"}
	}
	return e, nil
}

// Select narrows the frame to the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	p, err := f.plan.Select(names...)
	if err != nil {
		return nil, err
	}
	return f.withPlan(p), nil
}

// WithColumn adds a computed column, or replaces the expression behind
// name if the projection already has it.
func (f *Frame) WithColumn(name string, e expr.Expr) *Frame {
	return f.withPlan(f.plan.WithColumn(name, e))
}

// Rename substitutes output column names per the mapping.
func (f *Frame) Rename(mapping map[string]string) (*Frame, error) {
	p, err := f.plan.Rename(mapping)
	if err != nil {
		return nil, err
	}
	return f.withPlan(p), nil
}

// Drop removes the named columns from the projection.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	p, err := f.plan.Drop(names...)
	if err != nil {
		return nil, err
	}
	return f.withPlan(p), nil
}

// Filter restricts the frame to rows satisfying cond. Sequential filters
// conjoin in application order.
func (f *Frame) Filter(cond expr.Expr) *Frame {
	return f.withPlan(f.plan.Filter(cond))
}

// Distinct removes duplicate rows.
func (f *Frame) Distinct() *Frame {
	return f.withPlan(f.plan.Distinct())
}

// Slice restricts the frame to rows [start, stop).
func (f *Frame) Slice(start, stop int) (*Frame, error) {
	p, err := f.plan.Slice(start, stop)
	if err != nil {
		return nil, err
	}
	return f.withPlan(p), nil
}

// MergeOptions configures a Merge call.
//
// Either On (same key name on both sides) or the LeftOn/RightOn pair
// (differing key names) must be set. How defaults to an inner join.
type MergeOptions struct {
	How     string // "inner" (default) or "left"
	On      string
	LeftOn  string
	RightOn string
}

// Merge joins the frame with right database-style.
//
// The merged projection is the left columns followed by the right ones;
// the shared join key appears once (from the left), and a right column
// whose name the left side already exposes is dropped. Rename a side
// first to keep both.
func (f *Frame) Merge(right *Frame, opts MergeOptions) (*Frame, error) {
	leftKey, rightKey := opts.LeftOn, opts.RightOn
	if opts.On != "" {
		if leftKey != "" || rightKey != "" {
			return nil, fmt.Errorf("merge: On and LeftOn/RightOn are mutually exclusive")
		}
		leftKey, rightKey = opts.On, opts.On
	}
	if leftKey == "" || rightKey == "" {
		return nil, fmt.Errorf("merge: join key required (On, or LeftOn and RightOn)")
	}
	how := opts.How
	if how == "" {
		how = string(plan.JoinInner)
	}
	p, err := f.plan.Merge(right.plan, plan.JoinKind(strings.ToLower(how)), leftKey, rightKey)
	if err != nil {
		return nil, err
	}
	return f.withPlan(p), nil
}

// Sum aggregates the frame to the sum of one column.
func (f *Frame) Sum(name string) (*Frame, error) { return f.agg(name, expr.Sum) }

// Mean aggregates the frame to the average of one column.
func (f *Frame) Mean(name string) (*Frame, error) { return f.agg(name, expr.Avg) }

// Min aggregates the frame to the minimum of one column.
func (f *Frame) Min(name string) (*Frame, error) { return f.agg(name, expr.Min) }

// Max aggregates the frame to the maximum of one column.
func (f *Frame) Max(name string) (*Frame, error) { return f.agg(name, expr.Max) }

func (f *Frame) agg(name string, fn func(expr.Expr) expr.Expr) (*Frame, error) {
	e, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	return f.withPlan(f.plan.Aggregate(name, fn(e))), nil
}

// SQL renders the frame's plan to SQL text. It never executes.
func (f *Frame) SQL() (string, error) {
	return f.plan.SQL()
}

// execute runs one statement through the adapter, wrapping any failure.
func (f *Frame) execute(ctx context.Context, sql string) ([]Row, error) {
	rows, err := f.conn.Query(ctx, sql)
	if err != nil {
		return nil, &ExecutionError{Query: sql, Err: err}
	}
	return rows, nil
}

// Head executes a LIMIT n variant of the query and returns the first n
// rows as a presentation table headed by the projection output names.
func (f *Frame) Head(ctx context.Context, n int) (*Table, error) {
	sliced, err := f.plan.Slice(0, n)
	if err != nil {
		return nil, err
	}
	sql, err := sliced.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := f.execute(ctx, sql)
	if err != nil {
		return nil, err
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = formatRow(row)
	}
	return NewTable(f.Columns(), cells), nil
}

// Shape returns the frame's dimensionality. The column count comes from
// the projection without executing; the row count executes one
// SELECT COUNT(*) wrapper query.
func (f *Frame) Shape(ctx context.Context) (Shape, error) {
	sql, err := f.plan.CountSQL()
	if err != nil {
		return Shape{}, err
	}
	rows, err := f.execute(ctx, sql)
	if err != nil {
		return Shape{}, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Shape{}, &ExecutionError{Query: sql, Err: fmt.Errorf("count query returned no rows")}
	}
	count, err := asInt(rows[0][0])
	if err != nil {
		return Shape{}, &ExecutionError{Query: sql, Err: err}
	}
	return Shape{Rows: count, Cols: f.plan.Width()}, nil
}

// Values executes the unrestricted query and returns all rows. The result
// is cached on the frame; subsequent calls return the cached rows without
// touching the database.
func (f *Frame) Values(ctx context.Context) ([]Row, error) {
	if f.cached {
		return f.rows, nil
	}
	sql, err := f.plan.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := f.execute(ctx, sql)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	f.rows = rows
	f.cached = true
	return rows, nil
}

// Scalar executes the query and returns the first value of the first row.
// Useful with the aggregate transforms.
func (f *Frame) Scalar(ctx context.Context) (any, error) {
	rows, err := f.Values(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("scalar: query returned no rows")
	}
	return rows[0][0], nil
}

// asInt converts a scalar the driver returned for COUNT(*) to an int.
func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case int:
		return n, nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected count type %T", v)
	}
}

// formatRow converts raw driver values to display strings.
func formatRow(row Row) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = formatValue(v)
	}
	return cells
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
