package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/rs/zerolog"
)

// Options configures an ExecRunner
type Options struct {
	Logger zerolog.Logger
	// SudoCommand elevates commands with Sudo set, "sudo" when empty
	SudoCommand string
	// Stdout and Stderr receive streamed output, os.Stdout/os.Stderr when nil
	Stdout io.Writer
	Stderr io.Writer
	// IsRoot reports whether elevation is unnecessary, os.Geteuid() == 0 when nil
	IsRoot func() bool
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger      zerolog.Logger
	sudoCommand string
	stdout      io.Writer
	stderr      io.Writer
	isRoot      func() bool
}

// NewExecRunner creates a runner that starts real processes
func NewExecRunner(opts Options) *ExecRunner {
	r := &ExecRunner{
		logger:      opts.Logger,
		sudoCommand: opts.SudoCommand,
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		isRoot:      opts.IsRoot,
	}
	if r.sudoCommand == "" {
		r.sudoCommand = "sudo"
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	if r.isRoot == nil {
		r.isRoot = func() bool { return os.Geteuid() == 0 }
	}
	return r
}

// Run starts the command and waits for it to finish
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	if c.Name == "" {
		return Result{ExitCode: -1}, errors.New(errors.ErrInvalidInput, "command requires a name")
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	name, args := r.argv(c)
	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Str("workingDir", c.Dir).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)

	var stdout, stderr bytes.Buffer
	if c.Stream {
		cmd.Stdout = io.MultiWriter(&stdout, r.stdout)
		cmd.Stderr = io.MultiWriter(&stderr, r.stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if stdout.Len() > 0 {
		r.logger.Trace().Str("output", result.Stdout).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		r.logger.Trace().Str("output", result.Stderr).Msg("Command stderr")
	}

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		r.logger.Debug().
			Err(err).
			Str("command", name).
			Int("exitCode", result.ExitCode).
			Dur("duration", result.Duration).
			Msg("Command execution failed")
		return result, errors.CommandFailed(err, name, args, result.ExitCode, result.Stderr)
	}

	r.logger.Debug().
		Str("command", name).
		Dur("duration", result.Duration).
		Msg("Command executed successfully")
	return result, nil
}

// argv applies sudo elevation. Environment entries are passed through
// env(1) because sudo resets the environment of the elevated process.
func (r *ExecRunner) argv(c Command) (string, []string) {
	if !c.Sudo || r.isRoot() {
		return c.Name, c.Args
	}

	args := make([]string, 0, len(c.Args)+len(c.Env)+2)
	if len(c.Env) > 0 {
		args = append(args, "env")
		args = append(args, c.Env...)
	}
	args = append(args, c.Name)
	args = append(args, c.Args...)
	return r.sudoCommand, args
}
