package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFakeRunner_LongestPrefixWins(t *testing.T) {
	f := NewFakeRunner().
		On("apt", Response{Stdout: "generic"}).
		On("apt list", Response{Stdout: "listing"})

	res, err := f.Run(context.Background(), runner.Command{Name: "apt", Args: []string{"list", "--upgradable"}})
	require.NoError(t, err)
	assert.Equal(t, "listing", res.Stdout)

	res, err = f.Run(context.Background(), runner.Command{Name: "apt", Args: []string{"update"}, Sudo: true})
	require.NoError(t, err)
	assert.Equal(t, "generic", res.Stdout)

	assert.Equal(t, []string{"apt list --upgradable", "apt update"}, f.Lines())
}

func TestFakeRunner_Failure(t *testing.T) {
	f := NewFakeRunner().On("git clone", Response{ExitCode: 128, Stderr: "fatal: repository not found"})

	res, err := f.Run(context.Background(), runner.Command{Name: "git", Args: []string{"clone", "x", "y"}})
	require.Error(t, err)
	assert.Equal(t, 128, res.ExitCode)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
	assert.Equal(t, 128, errors.ExitCode(err))
}

func TestFakeRunner_Do(t *testing.T) {
	called := false
	f := NewFakeRunner().On("true", Response{Do: func(runner.Command) error {
		called = true
		return nil
	}})

	_, err := f.Run(context.Background(), runner.Command{Name: "true"})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestMockRunner(t *testing.T) {
	m := &MockRunner{}
	cmd := runner.Command{Name: "apt", Args: []string{"update"}}
	m.On("Run", mock.Anything, cmd).Return(runner.Result{Stdout: "ok"}, nil)

	res, err := m.Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Stdout)
	m.AssertExpectations(t)
}

func TestWriteAndReadTree(t *testing.T) {
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"a.conf":     "a",
		"sub/b.conf": "b",
		"empty/":     "",
	})
	require.NoError(t, os.Symlink("a.conf", filepath.Join(root, "link")))

	assert.Equal(t, map[string]string{
		"a.conf":     "a",
		"sub/":       "",
		"sub/b.conf": "b",
		"empty/":     "",
		"link":       "-> a.conf",
	}, ReadTree(t, root))
}
