// Package logging builds the diagnostic logger.
// User-facing text goes to stdout; this logger writes operational detail to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger at the given level writing to w.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := zerolog.NewConsoleWriter()
	out.Out = w
	out.TimeFormat = time.DateTime
	out.NoColor = !isTerminal(w)

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
