package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/qframe-project/qframe/expr"
)

// Source represents the FROM part of a plan.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern enables exhaustive type switches in the
// renderer.
type Source interface {
	sourceNode() // Marker method - seals interface to this package
}

// Base is a named database table with its discovery-order columns.
type Base struct {
	// Token is the identity referenced by expr.Column values bound to
	// this table. It never appears in rendered SQL.
	Token string

	// Table is the table name.
	Table string

	// Columns holds the column names in discovery order.
	Columns []string
}

func (*Base) sourceNode() {}

// JoinKind identifies the join flavor of a merged plan.
type JoinKind string

const (
	// JoinInner keeps only rows with a match on both sides.
	JoinInner JoinKind = "inner"

	// JoinLeft keeps all left rows, padding unmatched right columns
	// with NULL.
	JoinLeft JoinKind = "left"
)

// Join combines two sub-plans on a key equality.
type Join struct {
	Left  *Plan
	Right *Plan
	Kind  JoinKind

	// OnLeft and OnRight are the two key expressions; the renderer emits
	// them as OnLeft=OnRight in the ON clause.
	OnLeft  expr.Expr
	OnRight expr.Expr
}

func (*Join) sourceNode() {}

// Field is one named projection entry.
type Field struct {
	Name string
	Expr expr.Expr
}

// Plan is an immutable description of one logical relation.
//
// All transformation methods return a new Plan sharing the unchanged parts
// of the receiver. A Plan is never mutated after construction, so it is
// safe to share between any number of frames.
type Plan struct {
	token    string
	source   Source
	fields   []Field
	filter   expr.Expr
	distinct bool
	limit    int // -1 means no limit
	offset   int
}

// newToken mints a fresh source identity token.
func newToken() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewBase creates a plan over a base table with the default all-columns
// projection in discovery order and no filter.
func NewBase(table string, columns []string) *Plan {
	base := &Base{
		Token:   newToken(),
		Table:   table,
		Columns: append([]string(nil), columns...),
	}
	fields := make([]Field, len(columns))
	for i, name := range columns {
		fields[i] = Field{Name: name, Expr: expr.Column{Source: base.Token, Name: name}}
	}
	return &Plan{
		token:  newToken(),
		source: base,
		fields: fields,
		limit:  -1,
	}
}

// derive copies the plan with a fresh identity for further modification.
// Callers replace fields on the copy before returning it. The fresh token
// keeps two derivations of one plan distinguishable when both end up as
// sides of the same join.
func (p *Plan) derive() *Plan {
	dup := *p
	dup.token = newToken()
	return &dup
}

// Token returns the plan's identity token. Column references created with
// this token resolve to the plan's alias when it renders as a subquery.
func (p *Plan) Token() string {
	return p.token
}

// Names returns the projection output names in declared order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.Name
	}
	return names
}

// Width returns the number of projection entries.
func (p *Plan) Width() int {
	return len(p.fields)
}

// Fields returns a copy of the projection entries in declared order.
func (p *Plan) Fields() []Field {
	return append([]Field(nil), p.fields...)
}

// Field returns the expression behind an output name.
func (p *Plan) Field(name string) (expr.Expr, bool) {
	for _, f := range p.fields {
		if f.Name == name {
			return f.Expr, true
		}
	}
	return nil, false
}

// Select narrows the projection to the requested output names, in the
// requested order. The source and filter are unchanged.
func (p *Plan) Select(names ...string) (*Plan, error) {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		e, ok := p.Field(name)
		if !ok {
			return nil, &UnknownColumnError{Column: name, Op: "select"}
		}
		fields = append(fields, Field{Name: name, Expr: e})
	}
	dup := p.derive()
	dup.fields = fields
	return dup, nil
}

// WithColumn extends the projection with a computed column, or replaces
// the expression behind name if it already exists.
func (p *Plan) WithColumn(name string, e expr.Expr) *Plan {
	fields := make([]Field, len(p.fields), len(p.fields)+1)
	copy(fields, p.fields)
	replaced := false
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Expr = e
			replaced = true
			break
		}
	}
	if !replaced {
		fields = append(fields, Field{Name: name, Expr: e})
	}
	dup := p.derive()
	dup.fields = fields
	return dup
}

// Rename substitutes projection output names per the mapping. Every key
// must name an existing entry, and no substitution may collide with a
// surviving name.
func (p *Plan) Rename(mapping map[string]string) (*Plan, error) {
	for from := range mapping {
		if _, ok := p.Field(from); !ok {
			return nil, &UnknownColumnError{Column: from, Op: "rename"}
		}
	}
	fields := make([]Field, len(p.fields))
	seen := make(map[string]bool, len(p.fields))
	for i, f := range p.fields {
		name := f.Name
		if to, ok := mapping[name]; ok {
			name = to
		}
		if seen[name] {
			return nil, &DuplicateColumnError{Column: name}
		}
		seen[name] = true
		fields[i] = Field{Name: name, Expr: f.Expr}
	}
	dup := p.derive()
	dup.fields = fields
	return dup, nil
}

// Drop removes the named projection entries, keeping the rest in order.
func (p *Plan) Drop(names ...string) (*Plan, error) {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := p.Field(name); !ok {
			return nil, &UnknownColumnError{Column: name, Op: "drop"}
		}
		dropped[name] = true
	}
	fields := make([]Field, 0, len(p.fields))
	for _, f := range p.fields {
		if !dropped[f.Name] {
			fields = append(fields, f)
		}
	}
	dup := p.derive()
	dup.fields = fields
	return dup, nil
}

// Filter restricts the plan's rows to those satisfying cond. A second
// filter conjoins with the first in application order. The condition is
// evaluated at the source alias level, mirroring SQL WHERE semantics.
func (p *Plan) Filter(cond expr.Expr) *Plan {
	dup := p.derive()
	if p.filter != nil {
		dup.filter = expr.And(p.filter, cond)
	} else {
		dup.filter = cond
	}
	return dup
}

// Distinct marks the plan as SELECT DISTINCT.
func (p *Plan) Distinct() *Plan {
	dup := p.derive()
	dup.distinct = true
	return dup
}

// Slice restricts the plan to rows [start, stop), rendered as LIMIT with
// an OFFSET when start is positive.
func (p *Plan) Slice(start, stop int) (*Plan, error) {
	if start < 0 || stop < start {
		return nil, fmt.Errorf("invalid slice [%d, %d)", start, stop)
	}
	dup := p.derive()
	dup.limit = stop - start
	dup.offset = start
	return dup, nil
}

// Aggregate replaces the projection with a single aggregate entry. The
// source and filter are kept; distinct, limit, and offset are cleared, so
// the aggregate ranges over every filtered row.
func (p *Plan) Aggregate(name string, e expr.Expr) *Plan {
	dup := p.derive()
	dup.fields = []Field{{Name: name, Expr: e}}
	dup.distinct = false
	dup.limit = -1
	dup.offset = 0
	return dup
}

// Merge joins the plan with right on leftKey=rightKey and returns a plan
// whose source is the join of the two.
//
// The default projection is the left projection followed by the right one,
// with two drops applied to the right side: the join key when both sides
// use the same key name, and any column whose output name the left side
// already exposes. The left side always wins a name conflict; rename a
// side first to keep both columns.
func (p *Plan) Merge(right *Plan, kind JoinKind, leftKey, rightKey string) (*Plan, error) {
	switch kind {
	case JoinInner, JoinLeft:
	default:
		return nil, &UnsupportedJoinKindError{Kind: string(kind)}
	}
	if _, ok := p.Field(leftKey); !ok {
		return nil, &UnknownColumnError{Column: leftKey, Op: "merge"}
	}
	if _, ok := right.Field(rightKey); !ok {
		return nil, &UnknownColumnError{Column: rightKey, Op: "merge"}
	}
	if p.sideToken() == right.sideToken() {
		return nil, &SharedSourceError{Table: p.sourceTable()}
	}

	join := &Join{
		Left:    p,
		Right:   right,
		Kind:    kind,
		OnLeft:  sideExpr(p, leftKey),
		OnRight: sideExpr(right, rightKey),
	}

	fields := make([]Field, 0, len(p.fields)+len(right.fields))
	taken := make(map[string]bool, len(p.fields))
	for _, f := range p.fields {
		fields = append(fields, Field{Name: f.Name, Expr: sideExpr(p, f.Name)})
		taken[f.Name] = true
	}
	for _, f := range right.fields {
		if f.Name == rightKey && rightKey == leftKey {
			continue
		}
		if taken[f.Name] {
			continue
		}
		fields = append(fields, Field{Name: f.Name, Expr: sideExpr(right, f.Name)})
		taken[f.Name] = true
	}

	return &Plan{
		token:  newToken(),
		source: join,
		fields: fields,
		limit:  -1,
	}, nil
}

// sideExpr returns the expression through which the merged plan addresses
// one output column of a join side. A trivial side is inlined into the
// FROM clause, so its own expressions remain valid; any other side renders
// as a subquery and is addressed by its plan token and output name.
func sideExpr(side *Plan, name string) expr.Expr {
	if side.trivial() {
		e, _ := side.Field(name)
		return e
	}
	return expr.Column{Source: side.token, Name: name}
}

// sideToken returns the identity a plan binds in the outer alias scope
// when used as a join side: the base table token when the side is inlined,
// the plan token when it renders as a subquery. Two sides with the same
// sideToken cannot share one scope, because their column references would
// be indistinguishable.
func (p *Plan) sideToken() string {
	if base, ok := p.source.(*Base); ok && p.trivial() {
		return base.Token
	}
	return p.token
}

// sourceTable returns the base table name when the plan reads one directly.
func (p *Plan) sourceTable() string {
	if base, ok := p.source.(*Base); ok {
		return base.Table
	}
	return ""
}

// trivial reports whether the plan is an untouched base table: base
// source, default all-columns projection, no filter, no modifiers. Only
// trivial plans are inlined when used as a join side.
func (p *Plan) trivial() bool {
	base, ok := p.source.(*Base)
	if !ok {
		return false
	}
	if p.filter != nil || p.distinct || p.limit >= 0 || p.offset != 0 {
		return false
	}
	if len(p.fields) != len(base.Columns) {
		return false
	}
	for i, f := range p.fields {
		if f.Name != base.Columns[i] {
			return false
		}
		col, ok := f.Expr.(expr.Column)
		if !ok || col.Source != base.Token || col.Name != base.Columns[i] {
			return false
		}
	}
	return true
}
