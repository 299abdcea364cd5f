package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console reads line-oriented answers to prompts.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal file descriptor, or -1
}

// NewConsole creates a Console reading from in and prompting on out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.fd = int(f.Fd())
	}
	return c
}

// Prompt prints prompt and returns the next input line without its line ending.
// At end of input it returns io.EOF, unless a final unterminated line was read.
func (c *Console) Prompt(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PasswordPrompt asks for the database password without echo when the
// input is a terminal. Wrap it in db.CachedPassword to ask only once.
type PasswordPrompt struct {
	console *Console
	user    string
}

// NewPasswordPrompt creates a password prompt for the given database account.
func NewPasswordPrompt(console *Console, user string) *PasswordPrompt {
	return &PasswordPrompt{console: console, user: user}
}

// Password implements db.PasswordSource.
func (p *PasswordPrompt) Password() (string, error) {
	prompt := fmt.Sprintf("Enter MySQL password for user '%s': ", p.user)
	if p.console.fd < 0 {
		return p.console.Prompt(prompt)
	}

	fmt.Fprint(p.console.out, prompt)
	secret, err := term.ReadPassword(p.console.fd)
	fmt.Fprintln(p.console.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}
