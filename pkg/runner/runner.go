package runner

import (
	"context"
	"strings"
	"time"
)

// Command is a single external process invocation
type Command struct {
	Name string
	Args []string
	// Env entries (KEY=value) added on top of the current environment
	Env []string
	// Dir is the working directory, the current one when empty
	Dir string
	// Sudo requests elevation when the process is not already root
	Sudo bool
	// Stream forwards output to the console while it is captured
	Stream bool
	// Timeout bounds the run when positive
	Timeout time.Duration
}

// String renders the command line for logs and plans
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+2)
	if c.Sudo {
		parts = append(parts, "sudo")
	}
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Result is the outcome of a finished process
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Lines splits stdout into lines without the trailing newline
func (r Result) Lines() []string {
	out := strings.TrimRight(r.Stdout, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Runner runs commands. A non-nil error is a COMMAND error from pkg/errors
// whenever the process could not start or exited non-zero.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}
