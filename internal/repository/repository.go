// Package repository implements pkg/store's interfaces against
// Postgres via lib/pq, honouring the §6 schema bit-exactly:
//
//	employees(id TEXT PK, name TEXT, rank TEXT, department TEXT)
//	schedule(emp_id TEXT, date TEXT ISO-8601, shift TEXT, PK(emp_id,date))
//	manual_shifts(emp_id TEXT, date TEXT ISO-8601, shift TEXT, PK(emp_id,date))
//	settings(key TEXT PK, value TEXT)
package repository

import (
	"context"
	"database/sql"
)

// DB is the minimal surface every repository needs — satisfied by
// *sql.DB, *sql.Tx, and the teacher's *database.DB wrapper alike.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
