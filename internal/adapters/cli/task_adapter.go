// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/todolist/internal/core/task"
	"github.com/example/todolist/internal/ports/primary"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	doneColor    = color.New(color.FgGreen, color.Bold)
)

// TaskAdapter is a thin adapter that translates menu actions to TaskService calls.
// It depends only on the TaskService interface, enabling easy testing with mocks.
type TaskAdapter struct {
	service primary.TaskService
	out     io.Writer
}

// NewTaskAdapter creates a new TaskAdapter with the given service.
func NewTaskAdapter(service primary.TaskService, out io.Writer) *TaskAdapter {
	return &TaskAdapter{
		service: service,
		out:     out,
	}
}

// List prints the session user's tasks.
func (a *TaskAdapter) List(ctx context.Context) error {
	user := a.service.UserName()
	tasks, err := a.service.ListTasks(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintf(a.out, "--- %s's To-Do List is Empty! ---\n", user)
		return nil
	}

	fmt.Fprintf(a.out, "\n--- %s's To-Do List ---\n", user)
	for _, t := range tasks {
		marker := "[ ]"
		if t.IsComplete() {
			marker = doneColor.Sprint("[X]")
		}
		fmt.Fprintf(a.out, "[%3d] %s %s (%s)\n", t.ID, marker, t.Description, t.Status)
	}
	fmt.Fprintln(a.out, "----------------------------")
	fmt.Fprintln(a.out)
	return nil
}

// Add adds a task.
func (a *TaskAdapter) Add(ctx context.Context, description string) error {
	resp, err := a.service.AddTask(ctx, description)
	if err != nil {
		return err
	}

	successColor.Fprintf(a.out, "Task added for %s: '%s'\n", resp.UserName, resp.Description)
	return nil
}

// Complete marks tasks matching description as complete.
func (a *TaskAdapter) Complete(ctx context.Context, description string) error {
	resp, err := a.service.CompleteTask(ctx, description)
	if err != nil {
		return err
	}

	switch resp.Outcome {
	case task.OutcomeCompleted:
		successColor.Fprintf(a.out, "Task '%s' marked as Complete!\n", resp.Description)
	case task.OutcomeAlreadyComplete:
		warnColor.Fprintf(a.out, "Task '%s' was already Complete.\n", resp.Description)
	case task.OutcomeNoPending:
		warnColor.Fprintf(a.out, "No pending task found matching the exact description: '%s'\n", resp.Description)
	default:
		warnColor.Fprintf(a.out, "Task '%s' not found for user %s.\n", resp.Description, a.service.UserName())
	}
	return nil
}

// Delete removes tasks matching description.
func (a *TaskAdapter) Delete(ctx context.Context, description string) error {
	resp, err := a.service.DeleteTask(ctx, description)
	if err != nil {
		return err
	}

	if resp.Affected > 0 {
		successColor.Fprintf(a.out, "Task '%s' deleted.\n", resp.Description)
		return nil
	}
	warnColor.Fprintf(a.out, "No task found matching the exact description: '%s'\n", resp.Description)
	return nil
}

// ReportError prints the user-facing message for an operation error.
func (a *TaskAdapter) ReportError(err error) {
	if errors.Is(err, task.ErrEmptyDescription) {
		warnColor.Fprintln(a.out, "Task description cannot be empty.")
		return
	}
	errorColor.Fprintf(a.out, "Database operation failed: %v\n", err)
}
