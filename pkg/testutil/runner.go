package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/runner"
	"github.com/stretchr/testify/mock"
)

// Response scripts the outcome of commands matching a prefix
type Response struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Do runs before the response is returned, e.g. to create a clone target
	Do func(cmd runner.Command) error
}

// FakeRunner is a runner.Runner that never starts processes
type FakeRunner struct {
	Calls []runner.Command

	prefixes  []string
	responses map[string]Response
}

// NewFakeRunner returns a runner where every command succeeds silently
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On scripts the response for commands whose line starts with prefix.
// The longest matching prefix wins.
func (f *FakeRunner) On(prefix string, resp Response) *FakeRunner {
	if _, ok := f.responses[prefix]; !ok {
		f.prefixes = append(f.prefixes, prefix)
	}
	f.responses[prefix] = resp
	return f
}

// Run records the command and returns the scripted response
func (f *FakeRunner) Run(_ context.Context, c runner.Command) (runner.Result, error) {
	f.Calls = append(f.Calls, c)

	resp := f.match(Line(c))
	if resp.Do != nil {
		if err := resp.Do(c); err != nil {
			return runner.Result{ExitCode: -1}, err
		}
	}

	res := runner.Result{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}
	if resp.ExitCode != 0 {
		return res, errors.CommandFailed(fmt.Errorf("exit status %d", resp.ExitCode), c.Name, c.Args, resp.ExitCode, resp.Stderr)
	}
	return res, nil
}

// Lines returns the recorded commands as "name arg..." strings
func (f *FakeRunner) Lines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, Line(c))
	}
	return lines
}

func (f *FakeRunner) match(line string) Response {
	best := ""
	found := false
	for _, p := range f.prefixes {
		if strings.HasPrefix(line, p) && len(p) >= len(best) {
			best = p
			found = true
		}
	}
	if !found {
		return Response{}
	}
	return f.responses[best]
}

// Line renders a command without sudo, as matched by FakeRunner.On
func Line(c runner.Command) string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// MockRunner is a testify mock of runner.Runner
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, c runner.Command) (runner.Result, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(runner.Result), args.Error(1)
}

var (
	_ runner.Runner = (*FakeRunner)(nil)
	_ runner.Runner = (*MockRunner)(nil)
)
