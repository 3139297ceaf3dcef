package qframe

import (
	"context"
	"fmt"

	"github.com/qframe-project/qframe/plan"
)

// Schema is the discovered structure of a database: its tables and their
// columns, in the order the connection adapter reports them.
//
// A Schema is built once at construction and immutable afterward. It
// borrows the connection; closing the connection remains the caller's
// responsibility.
type Schema struct {
	conn   Conn
	tables []string
	cols   map[string][]Column
}

// Discover builds a Schema by querying the connection adapter for its
// tables and their columns.
func Discover(ctx context.Context, conn Conn) (*Schema, error) {
	tables, err := conn.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	cols := make(map[string][]Column, len(tables))
	for _, table := range tables {
		c, err := conn.Columns(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("list columns of %q: %w", table, err)
		}
		cols[table] = c
	}
	return &Schema{conn: conn, tables: tables, cols: cols}, nil
}

// Tables returns the table names in discovery order.
func (s *Schema) Tables() []string {
	return append([]string(nil), s.tables...)
}

// Columns returns the columns of a table in discovery order.
func (s *Schema) Columns(table string) ([]Column, error) {
	cols, ok := s.cols[table]
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}
	return append([]Column(nil), cols...), nil
}

// Frame returns a fresh lazy frame over a table, projecting all of its
// columns in discovery order with no filter.
func (s *Schema) Frame(table string) (*Frame, error) {
	cols, ok := s.cols[table]
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return &Frame{conn: s.conn, plan: plan.NewBase(table, names)}, nil
}

// Overview renders the schema as a grid: one column per table, headed by
// the table name, with the table's column names stacked beneath. Shorter
// tables pad with blank cells.
func (s *Schema) Overview() *Table {
	height := 0
	for _, table := range s.tables {
		if n := len(s.cols[table]); n > height {
			height = n
		}
	}
	rows := make([][]string, height)
	for i := range rows {
		row := make([]string, len(s.tables))
		for j, table := range s.tables {
			if cols := s.cols[table]; i < len(cols) {
				row[j] = cols[i].Name
			}
		}
		rows[i] = row
	}
	return NewTable(s.Tables(), rows)
}
