package app

import "github.com/example/todolist/internal/core/task"

// Session carries the per-run identity every task operation is scoped to.
// It is built once at startup and never changes.
type Session struct {
	userName string
}

// NewSession creates a session for the given raw name entry.
func NewSession(rawName string) *Session {
	return &Session{userName: task.SessionName(rawName)}
}

// UserName returns the session's user name.
func (s *Session) UserName() string {
	return s.userName
}
