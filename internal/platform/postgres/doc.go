// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It also owns the connection pool, the
// embedded goose migrations and the schema introspection used by the
// diagnostic commands.
package postgres
