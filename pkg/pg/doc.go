// Package pg establishes PostgreSQL connection pools via pgx and applies
// goose schema migrations.
package pg
