// Package sqldb contains database/sql implementations of repository interfaces.
// The same statements run against mysql and sqlite3.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/todolist/internal/core/task"
	"github.com/example/todolist/internal/ports/secondary"
)

// Executor runs single statements. Implemented by *db.Executor.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, scan func(*sql.Rows) error, args ...any) error
}

// TaskRepository implements secondary.TaskRepository over an Executor.
type TaskRepository struct {
	exec Executor
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(exec Executor) *TaskRepository {
	return &TaskRepository{exec: exec}
}

const taskSelectCols = "id, user_name, description, status, created_at"

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var createdAt sql.NullTime

	record := &secondary.TaskRecord{}
	if err := scanner.Scan(&record.ID, &record.UserName, &record.Description, &record.Status, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*secondary.TaskRecord, error) {
	var tasks []*secondary.TaskRecord
	err := r.exec.Query(ctx, query, func(rows *sql.Rows) error {
		record, err := scanTask(rows)
		if err != nil {
			return err
		}
		tasks = append(tasks, record)
		return nil
	}, args...)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create persists a new pending task.
func (r *TaskRepository) Create(ctx context.Context, record *secondary.TaskRecord) error {
	_, err := r.exec.Exec(ctx,
		"INSERT INTO tasks (user_name, description, status) VALUES (?, ?, ?)",
		record.UserName, record.Description, task.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's tasks ordered by status, then ID.
// "Complete" sorts before "Pending".
func (r *TaskRepository) ListByUser(ctx context.Context, userName string) ([]*secondary.TaskRecord, error) {
	tasks, err := r.queryTasks(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE user_name = ? ORDER BY status, id",
		userName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByDescription retrieves a user's tasks with the exact description.
func (r *TaskRepository) FindByDescription(ctx context.Context, userName, description string) ([]*secondary.TaskRecord, error) {
	tasks, err := r.queryTasks(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE user_name = ? AND description = ? ORDER BY id",
		userName, description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return tasks, nil
}

// CompleteByDescription sets every non-complete matching task to complete.
func (r *TaskRepository) CompleteByDescription(ctx context.Context, userName, description string) (int64, error) {
	affected, err := r.exec.Exec(ctx,
		"UPDATE tasks SET status = ? WHERE user_name = ? AND description = ? AND status != ?",
		task.StatusComplete, userName, description, task.StatusComplete,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to complete task: %w", err)
	}
	return affected, nil
}

// DeleteByDescription removes every matching task.
func (r *TaskRepository) DeleteByDescription(ctx context.Context, userName, description string) (int64, error) {
	affected, err := r.exec.Exec(ctx,
		"DELETE FROM tasks WHERE user_name = ? AND description = ?",
		userName, description,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}
	return affected, nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
