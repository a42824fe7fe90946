// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CommandResult represents the outcome of an external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation for inspection in tests.
type CommandCall struct {
	Command string
	Args    []string
	Stdin   string
}

// CommandRunner executes external commands. A nonzero exit code is
// reported through CommandResult, not as an error; errors are reserved
// for failures to run the command at all.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunInput behaves like Run but feeds stdin to the command.
	RunInput(ctx context.Context, stdin string, command string, args ...string) (CommandResult, error)
}
