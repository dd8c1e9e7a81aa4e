package runner

import (
	"context"

	"github.com/rs/zerolog"
)

// DryRunRunner records and logs commands without running them
type DryRunRunner struct {
	logger   zerolog.Logger
	commands []Command
}

// NewDryRunRunner creates a runner that never starts a process
func NewDryRunRunner(logger zerolog.Logger) *DryRunRunner {
	return &DryRunRunner{logger: logger}
}

// Run logs the command and reports success with empty output
func (r *DryRunRunner) Run(_ context.Context, c Command) (Result, error) {
	r.commands = append(r.commands, c)
	r.logger.Info().
		Str("command", c.String()).
		Msg("Dry run mode - command would be executed")
	return Result{}, nil
}

// Commands returns every command seen so far, in order
func (r *DryRunRunner) Commands() []Command {
	return r.commands
}
