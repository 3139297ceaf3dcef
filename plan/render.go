package plan

import (
	"fmt"
	"strings"

	"github.com/qframe-project/qframe/expr"
)

// SQL renders the plan to one complete SQL statement.
//
// Rendering is total and side-effect-free; calling it twice on the same
// plan yields identical text.
func (p *Plan) SQL() (string, error) {
	body, err := p.renderBody()
	if err != nil {
		return "", err
	}
	return body + ";", nil
}

// CountSQL renders the row-count wrapper statement for the plan:
// SELECT COUNT(*) FROM (<query>);
func (p *Plan) CountSQL() (string, error) {
	body, err := p.renderBody()
	if err != nil {
		return "", err
	}
	return "SELECT COUNT(*) FROM (" + body + ");", nil
}

// renderBody renders the statement without the trailing semicolon. Each
// call opens a fresh alias scope, so nested subqueries restart aliasing
// independently of the outer statement.
func (p *Plan) renderBody() (string, error) {
	gen := &aliasGen{}
	ctx := expr.Context{}

	from, err := renderFrom(p.source, gen, ctx)
	if err != nil {
		return "", err
	}

	items := make([]string, len(p.fields))
	for i, f := range p.fields {
		frag, err := expr.Render(f.Expr, ctx)
		if err != nil {
			return "", fmt.Errorf("render column %q: %w", f.Name, err)
		}
		if col, ok := f.Expr.(expr.Column); ok && col.Name == f.Name {
			items[i] = frag
		} else {
			items[i] = frag + " AS " + f.Name
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if p.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(items, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(from)

	if p.filter != nil {
		cond, err := expr.Render(p.filter, ctx)
		if err != nil {
			return "", fmt.Errorf("render filter: %w", err)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(cond)
	}

	if p.limit >= 0 {
		if p.offset > 0 {
			fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", p.limit, p.offset)
		} else {
			fmt.Fprintf(&sb, " LIMIT %d", p.limit)
		}
	}

	return sb.String(), nil
}

// renderFrom renders a source, assigning aliases into ctx as it walks the
// tree depth-first, left-to-right.
func renderFrom(s Source, gen *aliasGen, ctx expr.Context) (string, error) {
	switch src := s.(type) {
	case *Base:
		if _, bound := ctx[src.Token]; bound {
			return "", &SharedSourceError{Table: src.Table}
		}
		alias := gen.next()
		ctx[src.Token] = alias
		return src.Table + " AS " + alias, nil
	case *Join:
		left, err := renderSide(src.Left, gen, ctx)
		if err != nil {
			return "", err
		}
		right, err := renderSide(src.Right, gen, ctx)
		if err != nil {
			return "", err
		}
		onLeft, err := expr.Render(src.OnLeft, ctx)
		if err != nil {
			return "", fmt.Errorf("render join condition: %w", err)
		}
		onRight, err := expr.Render(src.OnRight, ctx)
		if err != nil {
			return "", fmt.Errorf("render join condition: %w", err)
		}
		var kind string
		switch src.Kind {
		case JoinLeft:
			kind = "LEFT JOIN"
		default:
			kind = "INNER JOIN"
		}
		return fmt.Sprintf("%s %s %s ON %s=%s", left, kind, right, onLeft, onRight), nil
	default:
		return "", fmt.Errorf("unknown source type %T", s)
	}
}

// renderSide renders one side of a join. A trivial side is inlined; any
// other side becomes a parenthesized subquery with its own alias scope,
// addressed from the outside by a fresh alias over its output names.
func renderSide(side *Plan, gen *aliasGen, ctx expr.Context) (string, error) {
	if side.trivial() {
		return renderFrom(side.source, gen, ctx)
	}
	if _, bound := ctx[side.token]; bound {
		return "", &SharedSourceError{Table: side.sourceTable()}
	}
	body, err := side.renderBody()
	if err != nil {
		return "", err
	}
	alias := gen.next()
	ctx[side.token] = alias
	return "(" + body + ") AS " + alias, nil
}
