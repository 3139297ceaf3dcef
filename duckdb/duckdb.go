// Package duckdb provides a qframe connection adapter over DuckDB.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/qframe-project/qframe"
)

// Conn is a qframe.Conn over a DuckDB database file. An empty path opens
// an in-memory database.
type Conn struct {
	db *sql.DB
}

// Open creates or opens a DuckDB database at the given path.
func Open(path string) (*Conn, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Conn{db: db}, nil
}

// Close closes the database connection.
func (c *Conn) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB returns the underlying sql.DB for direct use.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// Exec runs a statement that returns no rows. Useful for loading fixtures.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

// Tables lists the table names of the main schema, sorted by name.
func (c *Conn) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'main' AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("query information_schema.tables: %w", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}

// Columns lists a table's columns in ordinal order from the information
// schema. An unknown table fails with qframe.UnknownTableError.
func (c *Conn) Columns(ctx context.Context, table string) ([]qframe.Column, error) {
	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT column_name, data_type FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = %s
		ORDER BY ordinal_position`, quoteLiteral(table)))
	if err != nil {
		return nil, fmt.Errorf("query information_schema.columns: %w", err)
	}
	defer rows.Close()

	cols := []qframe.Column{}
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		cols = append(cols, qframe.Column{Name: name, Type: typ})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, &qframe.UnknownTableError{Table: table}
	}
	return cols, nil
}

// Query executes one statement and fetches all rows.
func (c *Conn) Query(ctx context.Context, query string) ([]qframe.Row, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("result columns: %w", err)
	}

	out := []qframe.Row{}
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, qframe.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// quoteLiteral single-quotes a string literal, doubling embedded quotes.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
