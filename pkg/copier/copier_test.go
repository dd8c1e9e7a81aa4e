package copier

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCopier() *Copier {
	return New(filesystem.NewOS(), zerolog.Nop())
}

func TestCopy_ExistingSubdirSkippedFileAdded(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"a.conf":     "from source",
		"sub/x.conf": "source x",
		"sub/y.conf": "source y",
	})
	testutil.WriteTree(t, dst, map[string]string{
		"sub/x.conf":     "mine",
		"sub/local.conf": "local only",
	})

	stats, err := newCopier().Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, Stats{FilesCopied: 1, DirsSkipped: 1}, stats)

	assert.Equal(t, map[string]string{
		"a.conf":         "from source",
		"sub/":           "",
		"sub/x.conf":     "mine",
		"sub/local.conf": "local only",
	}, testutil.ReadTree(t, dst))
}

func TestCopy_ExistingFileOverwritten(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{"a.conf": "new"})
	testutil.WriteTree(t, dst, map[string]string{"a.conf": "old", "other": "kept"})

	stats, err := newCopier().Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesCopied)
	assert.Equal(t, map[string]string{"a.conf": "new", "other": "kept"}, testutil.ReadTree(t, dst))
}

func TestCopy_NewDirectoryCopiedRecursively(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "fonts")
	testutil.WriteTree(t, src, map[string]string{
		"nerd/regular.ttf":   "r",
		"nerd/bold/bold.ttf": "b",
		"nerd/empty/":        "",
		"README":             "fonts",
	})

	stats, err := newCopier().Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, Stats{FilesCopied: 1, DirsCopied: 1}, stats)
	assert.Equal(t, testutil.ReadTree(t, src), testutil.ReadTree(t, dst))
}

func TestCopy_MissingSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "config")
	dst := filepath.Join(t.TempDir(), "out")

	_, err := newCopier().Copy(src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.NoDirExists(t, dst)
}

func TestCopy_SourceIsFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	_, err := newCopier().Copy(src, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestCopy_PreservesModes(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"run.sh":        "#!/bin/sh",
		"bin/helper.sh": "#!/bin/sh",
	})
	require.NoError(t, os.Chmod(filepath.Join(src, "run.sh"), 0755))
	require.NoError(t, os.Chmod(filepath.Join(src, "bin", "helper.sh"), 0700))
	// Existing file with a different mode is updated too
	testutil.WriteTree(t, dst, map[string]string{"run.sh": "old"})
	require.NoError(t, os.Chmod(filepath.Join(dst, "run.sh"), 0600))

	_, err := newCopier().Copy(src, dst)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dst, "bin", "helper.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestCopy_Symlinks(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"real.conf":      "real",
		"theme/base.css": "css",
	})
	require.NoError(t, os.Symlink("real.conf", filepath.Join(src, "alias.conf")))
	require.NoError(t, os.Symlink("base.css", filepath.Join(src, "theme", "current.css")))
	// An existing regular file is replaced by the link
	testutil.WriteTree(t, dst, map[string]string{"alias.conf": "stale"})

	stats, err := newCopier().Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, Stats{FilesCopied: 2, DirsCopied: 1}, stats)

	tree := testutil.ReadTree(t, dst)
	assert.Equal(t, "-> real.conf", tree["alias.conf"])
	assert.Equal(t, "-> base.css", tree["theme/current.css"])
}

func TestCopy_FileOverDirectoryFails(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{"conflict": "file"})
	testutil.WriteTree(t, dst, map[string]string{"conflict/": ""})

	_, err := newCopier().Copy(src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}

func TestCopy_ContinuesPastFailedEntry(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"a.conf": "a",
		"z.conf": "z",
	})
	testutil.WriteTree(t, dst, map[string]string{"a.conf/": ""})

	stats, err := newCopier().Copy(src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.Equal(t, 1, stats.FilesCopied)

	tree := testutil.ReadTree(t, dst)
	assert.Equal(t, "z", tree["z.conf"])
	assert.Contains(t, tree, "a.conf/")
}

func TestCopy_JoinsMultipleFailures(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"a.conf": "a",
		"b.conf": "b",
		"c.conf": "c",
	})
	testutil.WriteTree(t, dst, map[string]string{
		"a.conf/": "",
		"b.conf/": "",
	})

	stats, err := newCopier().Copy(src, dst)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.Contains(t, err.Error(), "2 entries failed to copy")
	assert.Contains(t, err.Error(), filepath.Join(dst, "a.conf"))
	assert.Contains(t, err.Error(), filepath.Join(dst, "b.conf"))
	assert.Equal(t, 2, errors.GetErrorDetails(err)["failed"])
	assert.Equal(t, 1, stats.FilesCopied)
}

func TestCopy_LogsSkippedDirectory(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{"sub/a": "a"})
	testutil.WriteTree(t, dst, map[string]string{"sub/": ""})

	var logs bytes.Buffer
	_, err := New(filesystem.NewOS(), zerolog.New(&logs)).Copy(src, dst)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "already exists, skipping")
}
