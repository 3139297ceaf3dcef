package qframe

import "context"

// Column describes one column of a table: its name and the declared type
// string reported by the database.
type Column struct {
	Name string
	Type string
}

// Row is one result row, ordered to match the statement's output columns.
type Row []any

// Conn is the connection adapter consumed by this package.
//
// The adapter is owned by the caller: this package never opens, closes, or
// pools connections, and assumes single-owner, non-concurrent use. All
// three methods must fail deterministically rather than silently truncate.
//
// The sqlite and duckdb subpackages provide ready-made implementations.
type Conn interface {
	// Tables lists the user table names in a deterministic order.
	Tables(ctx context.Context) ([]string, error)

	// Columns lists the columns of a table in declaration order.
	Columns(ctx context.Context, table string) ([]Column, error)

	// Query executes one SQL statement and returns all result rows.
	Query(ctx context.Context, sql string) ([]Row, error)
}
