// Package sqldb_test contains integration tests for the database/sql repositories.
//
// Every test runs against a fresh sqlite3 file created through db.Executor, so
// the schema under test is the one EnsureSchema applies in production.
package sqldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/example/todolist/internal/db"
)

// setupTestExecutor creates a sqlite3 database with the tasks table.
func setupTestExecutor(t *testing.T) *db.Executor {
	t.Helper()

	connector, err := db.NewConnector(db.Options{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "todo.db"),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connector: %v", err)
	}

	exec := db.NewExecutor(connector, zerolog.Nop())
	if err := exec.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return exec
}

// seedTask inserts a task with an explicit status.
func seedTask(t *testing.T, exec *db.Executor, userName, description, status string) {
	t.Helper()
	_, err := exec.Exec(context.Background(),
		"INSERT INTO tasks (user_name, description, status) VALUES (?, ?, ?)",
		userName, description, status,
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
}
