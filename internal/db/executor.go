package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Executor runs one parameterized statement per call. Errors are returned,
// never swallowed, so callers can tell "no rows" from "failed".
type Executor struct {
	connector *Connector
	log       zerolog.Logger
}

// NewExecutor creates an Executor over connector.
func NewExecutor(connector *Connector, log zerolog.Logger) *Executor {
	return &Executor{connector: connector, log: log}
}

// Exec runs a statement that returns no rows and reports rows affected.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	conn, release, err := e.connector.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	result, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		e.log.Debug().Err(err).Str("query", query).Msg("statement failed")
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	e.log.Debug().Str("query", query).Int64("affected", affected).Msg("statement executed")
	return affected, nil
}

// Query runs a statement and hands each row to scan.
func (e *Executor) Query(ctx context.Context, query string, scan func(*sql.Rows) error, args ...any) error {
	conn, release, err := e.connector.Open(ctx)
	if err != nil {
		return err
	}
	defer release()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		e.log.Debug().Err(err).Str("query", query).Msg("query failed")
		return err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	e.log.Debug().Str("query", query).Int("rows", count).Msg("query executed")
	return nil
}
