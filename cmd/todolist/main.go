package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/todolist/internal/cli"
	"github.com/example/todolist/internal/db"
	"github.com/example/todolist/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "todolist",
		Short:   "Personal to-do list backed by MySQL",
		Version: version.String(),
		Long: `todolist is an interactive, per-user to-do list.
It asks for your name, then lets you view, add, complete, and delete tasks.

Connection settings come from TODO_DB_* environment variables; the password
is asked for once when TODO_DB_PASSWORD is not set.`,
		Args:          cobra.NoArgs,
		RunE:          cli.Run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Connection failures were already reported by the session.
		var connectErr *db.ConnectError
		if !errors.As(err, &connectErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
