package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// connPragmas are applied by the driver to every pooled connection.
var connPragmas = []string{"foreign_keys(1)", "busy_timeout(5000)"}

// OpenDB opens the facadeflow database at path and brings its schema up to
// date. File databases run in WAL mode so the HTTP server and a CLI session
// can share one file. An in-memory database is pinned to a single
// connection, because each new connection would get its own empty schema.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if memory {
		database.SetMaxOpenConns(1)
	}

	setup := []struct {
		what, stmt string
	}{
		{"enabling foreign keys", "PRAGMA foreign_keys = ON"},
		{"setting WAL mode", "PRAGMA journal_mode = WAL"},
	}
	for _, s := range setup {
		if memory && strings.Contains(s.stmt, "journal_mode") {
			continue
		}
		if _, err := database.Exec(s.stmt); err != nil {
			database.Close()
			return nil, fmt.Errorf("%s: %w", s.what, err)
		}
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

func dsn(path string) string {
	if path == MemoryPath {
		return path
	}
	params := make([]string, len(connPragmas))
	for i, p := range connPragmas {
		params[i] = "_pragma=" + p
	}
	return path + "?" + strings.Join(params, "&")
}
