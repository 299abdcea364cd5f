// Package task contains the pure business logic for task operations.
// Guards are pure functions that evaluate preconditions without side effects.
package task

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Task statuses as stored.
const (
	StatusPending  = "Pending"
	StatusComplete = "Complete"
)

// DefaultSessionName is used when the user enters no name.
const DefaultSessionName = "Guest"

// MaxUserNameLength matches the user_name column width.
const MaxUserNameLength = 50

// ErrEmptyDescription is returned when a description is blank after trimming.
var ErrEmptyDescription = errors.New("task description cannot be empty")

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Err     error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Err
}

// CanMutate evaluates whether a description may be sent to the store.
// Rules:
// - Description must be non-empty after trimming
func CanMutate(description string) GuardResult {
	if strings.TrimSpace(description) == "" {
		return GuardResult{Allowed: false, Err: ErrEmptyDescription}
	}
	return GuardResult{Allowed: true}
}

// IsComplete reports whether a stored status means complete.
// Comparison tolerates case and surrounding whitespace.
func IsComplete(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), StatusComplete)
}

// SessionName normalizes a raw name entry. Blank input yields "Guest";
// longer names are cut to the column width.
func SessionName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DefaultSessionName
	}
	if utf8.RuneCountInString(name) > MaxUserNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxUserNameLength]))
	}
	return name
}

// CompletionOutcome classifies the result of a complete request.
type CompletionOutcome string

const (
	OutcomeCompleted       CompletionOutcome = "completed"
	OutcomeAlreadyComplete CompletionOutcome = "already_complete"
	OutcomeNoPending       CompletionOutcome = "no_pending"
	OutcomeNotFound        CompletionOutcome = "not_found"
)

// CompletionContext provides context for resolving a complete request.
type CompletionContext struct {
	Affected int64
	// Statuses of rows matching (user, description), lowest id first.
	// Only consulted when Affected is zero.
	Statuses []string
}

// ResolveCompletion decides what a complete request achieved.
// Rules:
// - Any row updated means completed
// - Otherwise the first matching row decides: complete means already complete,
//   anything else means no pending row matched
// - No matching row means not found
func ResolveCompletion(ctx CompletionContext) CompletionOutcome {
	if ctx.Affected > 0 {
		return OutcomeCompleted
	}
	if len(ctx.Statuses) == 0 {
		return OutcomeNotFound
	}
	if IsComplete(ctx.Statuses[0]) {
		return OutcomeAlreadyComplete
	}
	return OutcomeNoPending
}
