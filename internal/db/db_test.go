package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

type countingPassword struct {
	value string
	err   error
	calls int
}

func (p *countingPassword) Password() (string, error) {
	p.calls++
	return p.value, p.err
}

func newSQLiteExecutor(t *testing.T, path string) (*Executor, *Connector) {
	t.Helper()
	connector, err := NewConnector(Options{Driver: DriverSQLite, Path: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewConnector failed: %v", err)
	}
	return NewExecutor(connector, zerolog.Nop()), connector
}

func TestNewConnector_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "unknown driver", opts: Options{Driver: "postgres"}},
		{name: "mysql without password source", opts: Options{Driver: DriverMySQL}},
		{name: "sqlite without path", opts: Options{Driver: DriverSQLite}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConnector(tt.opts, zerolog.Nop()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConnector_MySQLDSN(t *testing.T) {
	passwords := &countingPassword{value: "s3cret"}
	c, err := NewConnector(Options{
		Driver:    DriverMySQL,
		Host:      "localhost",
		Port:      3306,
		User:      "root",
		Database:  "todo_list_db",
		Charset:   "utf8",
		Passwords: passwords,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewConnector failed: %v", err)
	}

	dsn, err := c.dsn()
	if err != nil {
		t.Fatalf("dsn failed: %v", err)
	}
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q) failed: %v", dsn, err)
	}
	if parsed.User != "root" || parsed.Passwd != "s3cret" {
		t.Errorf("unexpected credentials %q/%q", parsed.User, parsed.Passwd)
	}
	if parsed.Addr != "localhost:3306" {
		t.Errorf("expected addr localhost:3306, got %q", parsed.Addr)
	}
	if parsed.DBName != "" {
		t.Errorf("expected no default database before schema setup, got %q", parsed.DBName)
	}
	if !parsed.ParseTime {
		t.Error("expected parseTime=true")
	}
	if !strings.Contains(dsn, "charset=utf8") {
		t.Errorf("expected charset=utf8 in %q", dsn)
	}

	c.UseDatabase("todo_list_db")
	dsn, err = c.dsn()
	if err != nil {
		t.Fatalf("dsn failed: %v", err)
	}
	parsed, err = mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN failed: %v", err)
	}
	if parsed.DBName != "todo_list_db" {
		t.Errorf("expected database todo_list_db, got %q", parsed.DBName)
	}

	if passwords.calls != 1 {
		t.Errorf("expected password to be read once, got %d reads", passwords.calls)
	}
}

func TestConnector_PasswordErrorIsFatalBeforeFirstConnect(t *testing.T) {
	c, err := NewConnector(Options{
		Driver:    DriverMySQL,
		Host:      "localhost",
		Port:      3306,
		User:      "root",
		Database:  "todo_list_db",
		Passwords: &countingPassword{err: errors.New("no terminal")},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewConnector failed: %v", err)
	}

	_, _, err = c.Open(context.Background())
	var connectErr *ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected *ConnectError, got %v", err)
	}
}

func TestConnector_FirstConnectFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "todo.db")
	exec, connector := newSQLiteExecutor(t, path)

	err := exec.EnsureSchema(context.Background())
	var connectErr *ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected *ConnectError, got %v", err)
	}
	if connector.Connected() {
		t.Error("connector should not report a connection")
	}
}

func TestConnector_LaterFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	exec, connector := newSQLiteExecutor(t, filepath.Join(dir, "todo.db"))

	if err := exec.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if !connector.Connected() {
		t.Fatal("expected connector to record the first connection")
	}

	connector.opts.Path = filepath.Join(dir, "missing", "todo.db")
	_, err := exec.Exec(context.Background(), "DELETE FROM tasks")
	if err == nil {
		t.Fatal("expected error for unreachable database")
	}
	var connectErr *ConnectError
	if errors.As(err, &connectErr) {
		t.Errorf("failure after first connection should not be fatal: %v", err)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	exec, _ := newSQLiteExecutor(t, filepath.Join(t.TempDir(), "todo.db"))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := exec.EnsureSchema(ctx); err != nil {
			t.Fatalf("EnsureSchema call %d failed: %v", i+1, err)
		}
	}

	var count int
	err := exec.Query(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		func(rows *sql.Rows) error { return rows.Scan(&count) },
		TableName,
	)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one tasks table, got %d", count)
	}
}

func TestExecutor_ExecAndQuery(t *testing.T) {
	exec, _ := newSQLiteExecutor(t, filepath.Join(t.TempDir(), "todo.db"))
	ctx := context.Background()
	if err := exec.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	affected, err := exec.Exec(ctx, "INSERT INTO tasks (user_name, description) VALUES (?, ?)", "Alice", "Buy milk")
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	var statuses []string
	err = exec.Query(ctx, "SELECT status FROM tasks WHERE user_name = ?", func(rows *sql.Rows) error {
		var status string
		if err := rows.Scan(&status); err != nil {
			return err
		}
		statuses = append(statuses, status)
		return nil
	}, "Alice")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(statuses) != 1 || statuses[0] != "Pending" {
		t.Errorf("expected default status Pending, got %v", statuses)
	}
}

func TestExecutor_ErrorsAreReturned(t *testing.T) {
	exec, _ := newSQLiteExecutor(t, filepath.Join(t.TempDir(), "todo.db"))
	ctx := context.Background()
	if err := exec.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	if _, err := exec.Exec(ctx, "UPDATE no_such_table SET x = 1"); err == nil {
		t.Error("expected Exec error for missing table")
	}
	err := exec.Query(ctx, "SELECT nope FROM tasks", func(rows *sql.Rows) error { return nil })
	if err == nil {
		t.Error("expected Query error for missing column")
	}
}

func TestSchemaStatements(t *testing.T) {
	stmts, err := SchemaStatements(DriverMySQL, "todo_list_db")
	if err != nil {
		t.Fatalf("SchemaStatements failed: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("expected 3 mysql statements, got %d", len(stmts))
	}
	if stmts[0] != "CREATE DATABASE IF NOT EXISTS todo_list_db" {
		t.Errorf("unexpected first statement %q", stmts[0])
	}
	if stmts[1] != "USE todo_list_db" {
		t.Errorf("unexpected second statement %q", stmts[1])
	}

	if _, err := SchemaStatements(DriverMySQL, "bad-name;"); err == nil {
		t.Error("expected error for invalid database name")
	}
	if _, err := SchemaStatements("oracle", "x"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestCachedPassword(t *testing.T) {
	failing := &countingPassword{err: errors.New("interrupted")}
	cached := NewCachedPassword(failing)
	if _, err := cached.Password(); err == nil {
		t.Fatal("expected error from failing source")
	}
	failing.err = nil
	failing.value = "pw"
	for i := 0; i < 3; i++ {
		got, err := cached.Password()
		if err != nil || got != "pw" {
			t.Fatalf("Password() = %q, %v", got, err)
		}
	}
	if failing.calls != 2 {
		t.Errorf("expected 2 source reads (one failed, one cached), got %d", failing.calls)
	}

	if got, _ := StaticPassword("fixed").Password(); got != "fixed" {
		t.Errorf("StaticPassword returned %q", got)
	}
}
