package db

import (
	"context"
	"fmt"
	"regexp"
)

// TableName is the single table this program owns.
const TableName = "tasks"

// MySQLTableSQL creates the tasks table inside the selected database.
const MySQLTableSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_name VARCHAR(50) NOT NULL,
	description TEXT NOT NULL,
	status VARCHAR(10) NOT NULL DEFAULT 'Pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteTableSQL is the sqlite3 rendition of the same table.
// AUTOINCREMENT keeps ids from being reused after deletes.
const SQLiteTableSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_name VARCHAR(50) NOT NULL,
	description TEXT NOT NULL,
	status VARCHAR(10) NOT NULL DEFAULT 'Pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// SchemaStatements returns the DDL for driver, in execution order.
// All statements must run on the same connection (mysql relies on USE).
func SchemaStatements(driver, database string) ([]string, error) {
	switch driver {
	case DriverMySQL:
		if !identifierRe.MatchString(database) {
			return nil, fmt.Errorf("invalid database name %q", database)
		}
		return []string{
			"CREATE DATABASE IF NOT EXISTS " + database,
			"USE " + database,
			MySQLTableSQL,
		}, nil
	case DriverSQLite:
		return []string{SQLiteTableSQL}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// EnsureSchema creates the namespace and tasks table if absent.
// Safe to call on every startup. On success, later mysql connections
// default to the namespace.
//
// A *ConnectError means the store is unreachable; any other error means
// the connection worked but the DDL did not.
func (e *Executor) EnsureSchema(ctx context.Context) error {
	stmts, err := SchemaStatements(e.connector.opts.Driver, e.connector.opts.Database)
	if err != nil {
		return err
	}

	conn, release, err := e.connector.Open(ctx)
	if err != nil {
		return err
	}
	defer release()

	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			e.log.Debug().Err(err).Str("stmt", stmt).Msg("schema statement failed")
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if e.connector.opts.Driver == DriverMySQL {
		e.connector.UseDatabase(e.connector.opts.Database)
	}
	e.log.Debug().Str("table", TableName).Msg("schema verified")
	return nil
}
