package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCommand is the class of every rejected command. A rejected
	// command leaves the combat untouched.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrInvariant reports an internal consistency failure. The combat is
	// marked faulted and refuses further commands.
	ErrInvariant     = errors.New("combat invariant violated")
	ErrCombatFaulted = errors.New("combat is faulted")
)

// CommandError carries the diagnostic of a rejected command.
type CommandError struct {
	Reason string
}

func (e *CommandError) Error() string { return "invalid command: " + e.Reason }

func (e *CommandError) Unwrap() error { return ErrInvalidCommand }

func reject(format string, args ...any) error {
	return &CommandError{Reason: fmt.Sprintf(format, args...)}
}
