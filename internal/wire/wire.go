// Package wire provides dependency injection for the todolist application.
// One App is built per process; task adapters are bound to a session name.
package wire

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	cliadapter "github.com/example/todolist/internal/adapters/cli"
	"github.com/example/todolist/internal/adapters/sqldb"
	"github.com/example/todolist/internal/app"
	"github.com/example/todolist/internal/config"
	"github.com/example/todolist/internal/db"
)

// App holds the process-wide dependencies.
type App struct {
	executor *db.Executor
	log      zerolog.Logger
}

// New builds the connection stack from cfg. passwords is consulted only
// when cfg carries no password and the driver needs one.
func New(cfg *config.Config, passwords db.PasswordSource, log zerolog.Logger) (*App, error) {
	if cfg.DB.Password != "" {
		passwords = db.StaticPassword(cfg.DB.Password)
	}

	if cfg.DB.Driver == config.DriverSQLite {
		if err := config.EnsureDir(cfg.DB.Path); err != nil {
			return nil, err
		}
	}

	connector, err := db.NewConnector(db.Options{
		Driver:    cfg.DB.Driver,
		Host:      cfg.DB.Host,
		Port:      cfg.DB.Port,
		User:      cfg.DB.User,
		Database:  cfg.DB.Name,
		Charset:   cfg.DB.Charset,
		Path:      cfg.DB.Path,
		Passwords: passwords,
	}, log)
	if err != nil {
		return nil, err
	}

	return &App{
		executor: db.NewExecutor(connector, log),
		log:      log,
	}, nil
}

// EnsureSchema creates the namespace and tasks table if absent.
func (a *App) EnsureSchema(ctx context.Context) error {
	return a.executor.EnsureSchema(ctx)
}

// TaskAdapter returns a TaskAdapter for userName writing to stdout.
func (a *App) TaskAdapter(userName string) *cliadapter.TaskAdapter {
	return a.TaskAdapterWithOutput(userName, os.Stdout)
}

// TaskAdapterWithOutput returns a TaskAdapter for userName writing to the given output.
// This variant allows testing or alternate output destinations.
func (a *App) TaskAdapterWithOutput(userName string, out io.Writer) *cliadapter.TaskAdapter {
	repo := sqldb.NewTaskRepository(a.executor)
	service := app.NewTaskService(repo, app.NewSession(userName))
	return cliadapter.NewTaskAdapter(service, out)
}
