package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/phrazzld/attendance-api/internal/store"
)

// Column describes one column of a user table.
type Column struct {
	Table      string
	Name       string
	DataType   string
	MaxLength  sql.NullInt64
	IsNullable bool
	Default    sql.NullString
}

// FullType renders the data type with its length, e.g. "character varying(255)".
func (c Column) FullType() string {
	if c.MaxLength.Valid {
		return fmt.Sprintf("%s(%d)", c.DataType, c.MaxLength.Int64)
	}
	return c.DataType
}

// Constraint describes one table constraint and, when it has one, a column it covers.
type Constraint struct {
	Table  string
	Name   string
	Type   string
	Column sql.NullString
}

// Index describes one index as reported by pg_indexes.
type Index struct {
	Table      string
	Name       string
	Definition string
}

const (
	columnsQuery = `
		SELECT c.table_name, c.column_name, c.data_type, c.character_maximum_length,
			c.is_nullable = 'YES', c.column_default
		FROM information_schema.columns c
		JOIN information_schema.tables t
			ON c.table_name = t.table_name AND c.table_schema = t.table_schema
		WHERE t.table_type = 'BASE TABLE'
			AND c.table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY c.table_name, c.ordinal_position`

	constraintsQuery = `
		SELECT tc.table_name, tc.constraint_name, tc.constraint_type, kcu.column_name
		FROM information_schema.table_constraints tc
		LEFT JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY tc.table_name, tc.constraint_type, kcu.ordinal_position`

	indexesQuery = `
		SELECT tablename, indexname, indexdef
		FROM pg_indexes
		WHERE schemaname NOT IN ('pg_catalog', 'information_schema')
		ORDER BY tablename, indexname`
)

// Inspector reads server and schema metadata for diagnostics.
type Inspector struct {
	db store.DBTX
}

// NewInspector creates an Inspector over db.
func NewInspector(db store.DBTX) *Inspector {
	if db == nil {
		panic("db cannot be nil")
	}
	return &Inspector{db: db}
}

// SelectOne runs SELECT 1 and returns the result.
func (i *Inspector) SelectOne(ctx context.Context) (int, error) {
	var one int
	if err := i.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return 0, fmt.Errorf("failed to execute test query: %w", err)
	}
	return one, nil
}

// Version returns the output of SELECT version().
func (i *Inspector) Version(ctx context.Context) (string, error) {
	var version string
	if err := i.db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", fmt.Errorf("failed to fetch database version: %w", err)
	}
	return version, nil
}

// Columns lists every column of every user table, grouped by table.
func (i *Inspector) Columns(ctx context.Context) ([]Column, error) {
	return queryAll(ctx, i.db, columnsQuery, "columns", func(rows *sql.Rows) (Column, error) {
		var c Column
		err := rows.Scan(&c.Table, &c.Name, &c.DataType, &c.MaxLength, &c.IsNullable, &c.Default)
		return c, err
	})
}

// Constraints lists primary key, unique, foreign key and check constraints.
func (i *Inspector) Constraints(ctx context.Context) ([]Constraint, error) {
	return queryAll(ctx, i.db, constraintsQuery, "constraints", func(rows *sql.Rows) (Constraint, error) {
		var c Constraint
		err := rows.Scan(&c.Table, &c.Name, &c.Type, &c.Column)
		return c, err
	})
}

// Indexes lists indexes outside the system schemas.
func (i *Inspector) Indexes(ctx context.Context) ([]Index, error) {
	return queryAll(ctx, i.db, indexesQuery, "indexes", func(rows *sql.Rows) (Index, error) {
		var idx Index
		err := rows.Scan(&idx.Table, &idx.Name, &idx.Definition)
		return idx, err
	})
}

func queryAll[T any](ctx context.Context, db store.DBTX, query, what string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", what, err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", what, err)
	}
	return out, nil
}
