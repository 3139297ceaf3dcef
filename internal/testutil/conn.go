// Package testutil provides deterministic test doubles for qframe.
package testutil

import (
	"context"
	"fmt"

	"github.com/qframe-project/qframe"
)

// Conn is an in-memory qframe.Conn for tests.
//
// Table and column listings come from fixed fixtures; query results are
// looked up by exact SQL text, so tests assert the rendered statement and
// its result in one place. Every executed statement is recorded in Log,
// which lets tests prove that plan building never touched the adapter.
type Conn struct {
	// TableNames is returned by Tables in order.
	TableNames []string

	// Cols maps table name to its column fixtures.
	Cols map[string][]qframe.Column

	// Results maps exact SQL text to the rows Query returns for it.
	Results map[string][]qframe.Row

	// Err, when set, is returned by Query unconditionally.
	Err error

	// Log records every SQL statement passed to Query, in order.
	Log []string
}

// Tables implements qframe.Conn.
func (c *Conn) Tables(ctx context.Context) ([]string, error) {
	return append([]string(nil), c.TableNames...), nil
}

// Columns implements qframe.Conn.
func (c *Conn) Columns(ctx context.Context, table string) ([]qframe.Column, error) {
	cols, ok := c.Cols[table]
	if !ok {
		return nil, &qframe.UnknownTableError{Table: table}
	}
	return cols, nil
}

// Query implements qframe.Conn. Statements without a configured result
// fail, so an unexpected query surfaces as a test failure instead of an
// empty result.
func (c *Conn) Query(ctx context.Context, sql string) ([]qframe.Row, error) {
	c.Log = append(c.Log, sql)
	if c.Err != nil {
		return nil, c.Err
	}
	rows, ok := c.Results[sql]
	if !ok {
		return nil, fmt.Errorf("no fixture for query %q", sql)
	}
	return rows, nil
}
