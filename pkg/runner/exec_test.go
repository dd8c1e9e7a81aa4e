package runner

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(stdout, stderr *bytes.Buffer, root bool) *ExecRunner {
	return NewExecRunner(Options{
		Logger: zerolog.Nop(),
		Stdout: stdout,
		Stderr: stderr,
		IsRoot: func() bool { return root },
	})
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{}, true)

	res, err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo hello; echo oops >&2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
	assert.Equal(t, []string{"hello"}, res.Lines())
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{}, true)

	res, err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo broken >&2; exit 3"},
	})
	require.Error(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
	assert.Equal(t, 3, errors.ExitCode(err))
	assert.Equal(t, "broken", errors.GetErrorDetails(err)["stderr"])
}

func TestExecRunner_CommandNotFound(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{}, true)

	res, err := r.Run(context.Background(), Command{Name: "dotsetup-definitely-not-a-binary"})
	require.Error(t, err)

	assert.Equal(t, -1, res.ExitCode)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
}

func TestExecRunner_EmptyName(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{}, true)

	_, err := r.Run(context.Background(), Command{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestExecRunner_EnvAndDir(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{}, true)
	dir := t.TempDir()

	res, err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf "%s %s" "$DOTSETUP_TEST" "$(pwd)"`},
		Env:  []string{"DOTSETUP_TEST=yes"},
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "yes ")
	assert.Contains(t, res.Stdout, dir)
}

func TestExecRunner_Stream(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := newTestRunner(&stdout, &stderr, true)

	res, err := r.Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "echo visible; echo warn >&2"},
		Stream: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "visible\n", res.Stdout)
	assert.Equal(t, "visible\n", stdout.String())
	assert.Equal(t, "warn\n", stderr.String())
}

func TestExecRunner_Timeout(t *testing.T) {
	r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{}, true)

	start := time.Now()
	_, err := r.Run(context.Background(), Command{
		Name:    "sleep",
		Args:    []string{"5"},
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecRunner_Argv(t *testing.T) {
	tests := []struct {
		name     string
		root     bool
		cmd      Command
		wantName string
		wantArgs []string
	}{
		{
			name:     "no sudo requested",
			cmd:      Command{Name: "apt", Args: []string{"list", "--upgradable"}},
			wantName: "apt",
			wantArgs: []string{"list", "--upgradable"},
		},
		{
			name:     "sudo",
			cmd:      Command{Name: "apt", Args: []string{"update"}, Sudo: true},
			wantName: "sudo",
			wantArgs: []string{"apt", "update"},
		},
		{
			name:     "sudo with env",
			cmd:      Command{Name: "apt", Args: []string{"upgrade", "-y"}, Sudo: true, Env: []string{"DEBIAN_FRONTEND=noninteractive"}},
			wantName: "sudo",
			wantArgs: []string{"env", "DEBIAN_FRONTEND=noninteractive", "apt", "upgrade", "-y"},
		},
		{
			name:     "already root",
			root:     true,
			cmd:      Command{Name: "apt", Args: []string{"update"}, Sudo: true},
			wantName: "apt",
			wantArgs: []string{"update"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRunner(&bytes.Buffer{}, &bytes.Buffer{}, tt.root)
			name, args := r.argv(tt.cmd)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "apt", Args: []string{"install", "-y", "git"}, Sudo: true}
	assert.Equal(t, "sudo apt install -y git", c.String())
}

func TestResultLines(t *testing.T) {
	assert.Nil(t, Result{}.Lines())
	assert.Equal(t, []string{"a", "", "b"}, Result{Stdout: "a\n\nb\n"}.Lines())
}

func TestDryRunRunner(t *testing.T) {
	var buf bytes.Buffer
	r := NewDryRunRunner(zerolog.New(&buf))

	res, err := r.Run(context.Background(), Command{Name: "apt", Args: []string{"update"}, Sudo: true})
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	require.Len(t, r.Commands(), 1)
	assert.Equal(t, "apt", r.Commands()[0].Name)
	assert.Contains(t, buf.String(), "sudo apt update")
}
