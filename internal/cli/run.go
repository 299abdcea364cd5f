// Package cli implements the interactive to-do session behind the root command.
package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/todolist/internal/config"
	"github.com/example/todolist/internal/logging"
	"github.com/example/todolist/internal/wire"
)

// Run is the root command's RunE: it loads config from the environment
// and runs one interactive session on the command's stdin/stdout.
func Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	console := NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	return RunSession(cmd.Context(), cfg, console, log)
}

// RunSession wires the application for cfg and runs the menu to completion.
func RunSession(ctx context.Context, cfg *config.Config, console *Console, log zerolog.Logger) error {
	a, err := wire.New(cfg, NewPasswordPrompt(console, cfg.DB.User), log)
	if err != nil {
		return err
	}

	menu := NewMenu(console, appBackend{app: a, out: console.out}, log)
	return menu.Run(ctx)
}

// appBackend adapts *wire.App to Backend.
type appBackend struct {
	app *wire.App
	out io.Writer
}

func (b appBackend) EnsureSchema(ctx context.Context) error {
	return b.app.EnsureSchema(ctx)
}

func (b appBackend) Tasks(userName string) TaskActions {
	return b.app.TaskAdapterWithOutput(userName, b.out)
}
