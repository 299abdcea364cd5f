// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// TaskRepository defines the secondary port for task persistence.
// Lookups by description are exact-match and always scoped to a user.
type TaskRepository interface {
	// Create persists a new pending task.
	Create(ctx context.Context, task *TaskRecord) error

	// ListByUser retrieves a user's tasks ordered by status, then ID.
	ListByUser(ctx context.Context, userName string) ([]*TaskRecord, error)

	// FindByDescription retrieves a user's tasks with the exact description, lowest ID first.
	FindByDescription(ctx context.Context, userName, description string) ([]*TaskRecord, error)

	// CompleteByDescription sets every non-complete matching task to complete.
	CompleteByDescription(ctx context.Context, userName, description string) (int64, error)

	// DeleteByDescription removes every matching task.
	DeleteByDescription(ctx context.Context, userName, description string) (int64, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          int64
	UserName    string
	Description string
	Status      string
	CreatedAt   string // Empty string means null
}
