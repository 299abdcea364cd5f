package primary

import (
	"context"

	"github.com/example/todolist/internal/core/task"
)

// TaskService defines the primary port for task operations.
// Every operation is scoped to the session user the service was built for.
type TaskService interface {
	// UserName returns the session user the service is bound to.
	UserName() string

	// AddTask creates a pending task for the session user.
	AddTask(ctx context.Context, description string) (*AddTaskResponse, error)

	// ListTasks lists the session user's tasks, complete before pending, then by ID.
	ListTasks(ctx context.Context) ([]*Task, error)

	// CompleteTask marks every pending task with the exact description as complete.
	CompleteTask(ctx context.Context, description string) (*CompleteTaskResponse, error)

	// DeleteTask removes every task with the exact description.
	DeleteTask(ctx context.Context, description string) (*DeleteTaskResponse, error)
}

// AddTaskResponse contains the result of adding a task.
type AddTaskResponse struct {
	UserName    string
	Description string
}

// CompleteTaskResponse contains the result of a complete request.
type CompleteTaskResponse struct {
	Description string
	Affected    int64
	Outcome     task.CompletionOutcome
}

// DeleteTaskResponse contains the result of a delete request.
type DeleteTaskResponse struct {
	Description string
	Affected    int64
}

// Task represents a task entity at the port boundary.
type Task struct {
	ID          int64
	UserName    string
	Description string
	Status      string
	CreatedAt   string
}

// IsComplete reports whether the task's status reads as complete.
func (t *Task) IsComplete() bool {
	return task.IsComplete(t.Status)
}
