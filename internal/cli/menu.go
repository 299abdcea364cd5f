package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/todolist/internal/core/task"
	"github.com/example/todolist/internal/db"
)

// TaskActions is what the menu dispatches to. Implemented by the task adapter.
type TaskActions interface {
	List(ctx context.Context) error
	Add(ctx context.Context, description string) error
	Complete(ctx context.Context, description string) error
	Delete(ctx context.Context, description string) error
	ReportError(err error)
}

// Backend prepares storage and hands out session-bound task actions.
type Backend interface {
	EnsureSchema(ctx context.Context) error
	Tasks(userName string) TaskActions
}

type menuState int

const (
	stateAwaitingName menuState = iota
	stateMenuIdle
	stateExited
)

// Menu is the interactive session: one name prompt, then a choice loop.
type Menu struct {
	console  *Console
	backend  Backend
	log      zerolog.Logger
	state    menuState
	userName string
	tasks    TaskActions
}

// NewMenu creates a Menu in the AwaitingName state.
func NewMenu(console *Console, backend Backend, log zerolog.Logger) *Menu {
	return &Menu{
		console: console,
		backend: backend,
		log:     log,
		state:   stateAwaitingName,
	}
}

// UserName returns the session name, empty until the name prompt is answered.
func (m *Menu) UserName() string {
	return m.userName
}

// Run drives the session until the user exits or input ends.
// A *db.ConnectError is returned when the store is unreachable at startup.
func (m *Menu) Run(ctx context.Context) error {
	for m.state != stateExited {
		var err error
		switch m.state {
		case stateAwaitingName:
			err = m.awaitName(ctx)
		case stateMenuIdle:
			err = m.idle(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Menu) awaitName(ctx context.Context) error {
	raw, err := m.console.Prompt("Please enter your name to start your personalized To-Do List: ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	m.userName = task.SessionName(raw)
	m.printf("Welcome, %s!\n", m.userName)

	if err := m.backend.EnsureSchema(ctx); err != nil {
		var connectErr *db.ConnectError
		if errors.As(err, &connectErr) {
			m.log.Debug().Err(err).Msg("initial connection failed")
			m.printf("Database connection failed: %v\n", connectErr.Err)
			m.printf("Please check your MySQL service and credentials.\n")
			return err
		}
		m.log.Warn().Err(err).Msg("table setup failed")
		m.printf("Database connection established.\n")
		m.printf("An error occurred during table setup: %v\n", err)
	} else {
		m.printf("Database connection established.\n")
		m.printf("Database and 'tasks' table verified.\n")
	}

	m.tasks = m.backend.Tasks(m.userName)
	m.state = stateMenuIdle
	return nil
}

func (m *Menu) idle(ctx context.Context) error {
	m.printf("\n===== %s's Menu =====\n", m.userName)
	m.printf("1. View My Tasks\n")
	m.printf("2. Add New Task\n")
	m.printf("3. Mark Task Complete (by description)\n")
	m.printf("4. Delete Task (by description)\n")
	m.printf("5. Exit\n")

	choice, err := m.console.Prompt("Enter your choice (1-5): ")
	if errors.Is(err, io.EOF) {
		m.printf("\n")
		m.exit()
		return nil
	}
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		m.report(m.tasks.List(ctx))
	case "2":
		desc, err := m.readDescription("Enter the new task description: ")
		if err != nil {
			return err
		}
		m.report(m.tasks.Add(ctx, desc))
	case "3":
		desc, err := m.readDescription("Enter the EXACT description of the task to mark complete: ")
		if err != nil {
			return err
		}
		m.report(m.tasks.Complete(ctx, desc))
	case "4":
		desc, err := m.readDescription("Enter the EXACT description of the task to delete: ")
		if err != nil {
			return err
		}
		m.report(m.tasks.Delete(ctx, desc))
	case "5":
		m.exit()
	default:
		m.printf("Invalid choice. Please enter a number between 1 and 5.\n")
	}
	return nil
}

// readDescription treats end of input as an empty answer.
func (m *Menu) readDescription(prompt string) (string, error) {
	desc, err := m.console.Prompt(prompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(desc), nil
}

func (m *Menu) report(err error) {
	if err == nil {
		return
	}
	m.log.Debug().Err(err).Str("user", m.userName).Msg("operation failed")
	m.tasks.ReportError(err)
}

func (m *Menu) exit() {
	m.printf("Exiting To-Do List, %s. Goodbye!\n", m.userName)
	m.state = stateExited
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.console.out, format, args...)
}
