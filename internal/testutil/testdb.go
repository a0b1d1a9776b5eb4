package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/porbotenet-wq/facadeflow/internal/db"
)

// NewTestDB returns a migrated in-memory database closed at test cleanup.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return open(t, db.MemoryPath)
}

// NewFileTestDB returns a migrated database file under t.TempDir, for tests
// that need WAL mode or more than one connection.
func NewFileTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return open(t, filepath.Join(t.TempDir(), "facadeflow.db"))
}

func open(t testing.TB, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork over database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
