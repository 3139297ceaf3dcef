package qframe

import "strings"

// Table is a minimal presentation grid for previews and the schema
// overview: column headers plus string cells. It preserves column order
// exactly as given and carries no query semantics.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable builds a table from headers and rows. Ragged rows are padded
// with blank cells to the header width.
func NewTable(columns []string, rows [][]string) *Table {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(columns) {
			p := make([]string, len(columns))
			copy(p, row)
			row = p
		}
		padded[i] = row[:len(columns)]
	}
	return &Table{columns: append([]string(nil), columns...), rows: padded}
}

// Columns returns the header names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Rows returns the cell values by row.
func (t *Table) Rows() [][]string {
	return t.rows
}

// String renders the grid as padded text: a header line, a dashed rule,
// the rows, and a closing rule of equals signs.
func (t *Table) String() string {
	widths := make([]int, len(t.columns))
	for i, name := range t.columns {
		widths[i] = len(name)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = " " + cell + strings.Repeat(" ", widths[i]-len(cell)) + " "
		}
		return strings.Join(parts, "|")
	}
	rule := func(ch string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(ch, w+2)
		}
		return strings.Join(parts, "|")
	}

	out := make([]string, 0, len(t.rows)+3)
	out = append(out, line(t.columns), rule("-"))
	for _, row := range t.rows {
		out = append(out, line(row))
	}
	out = append(out, rule("="))
	return strings.Join(out, "\n")
}
