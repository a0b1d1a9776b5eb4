package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories need. Services pass *sql.DB for
// reads and the *sql.Tx of a UnitOfWork for grouped writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
