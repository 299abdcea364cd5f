package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/todolist/internal/core/task"
	"github.com/example/todolist/internal/ports/primary"
	"github.com/example/todolist/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	session  *Session
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository, session *Session) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		session:  session,
	}
}

// UserName returns the session user.
func (s *TaskServiceImpl) UserName() string {
	return s.session.UserName()
}

// AddTask creates a pending task for the session user.
func (s *TaskServiceImpl) AddTask(ctx context.Context, description string) (*primary.AddTaskResponse, error) {
	description = strings.TrimSpace(description)
	if err := task.CanMutate(description).Error(); err != nil {
		return nil, err
	}

	record := &secondary.TaskRecord{
		UserName:    s.session.UserName(),
		Description: description,
		Status:      task.StatusPending,
	}
	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &primary.AddTaskResponse{
		UserName:    record.UserName,
		Description: description,
	}, nil
}

// ListTasks lists the session user's tasks.
func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]*primary.Task, error) {
	records, err := s.taskRepo.ListByUser(ctx, s.session.UserName())
	if err != nil {
		return nil, err
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = recordToTask(r)
	}
	return tasks, nil
}

// CompleteTask marks every pending task with the exact description as complete.
// When nothing changes, a follow-up lookup explains why.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, description string) (*primary.CompleteTaskResponse, error) {
	description = strings.TrimSpace(description)
	if err := task.CanMutate(description).Error(); err != nil {
		return nil, err
	}

	user := s.session.UserName()
	affected, err := s.taskRepo.CompleteByDescription(ctx, user, description)
	if err != nil {
		return nil, err
	}

	guardCtx := task.CompletionContext{Affected: affected}
	if affected == 0 {
		matches, err := s.taskRepo.FindByDescription(ctx, user, description)
		if err != nil {
			return nil, fmt.Errorf("failed to check task status: %w", err)
		}
		for _, m := range matches {
			guardCtx.Statuses = append(guardCtx.Statuses, m.Status)
		}
	}

	return &primary.CompleteTaskResponse{
		Description: description,
		Affected:    affected,
		Outcome:     task.ResolveCompletion(guardCtx),
	}, nil
}

// DeleteTask removes every task with the exact description.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, description string) (*primary.DeleteTaskResponse, error) {
	description = strings.TrimSpace(description)
	if err := task.CanMutate(description).Error(); err != nil {
		return nil, err
	}

	affected, err := s.taskRepo.DeleteByDescription(ctx, s.session.UserName(), description)
	if err != nil {
		return nil, err
	}

	return &primary.DeleteTaskResponse{
		Description: description,
		Affected:    affected,
	}, nil
}

func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          r.ID,
		UserName:    r.UserName,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
