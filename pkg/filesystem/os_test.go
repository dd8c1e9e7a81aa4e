package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.Chmod(testFile, 0600))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	subDir := filepath.Join(tmpDir, "sub", "dir")
	err = fs.MkdirAll(subDir, 0755)
	require.NoError(t, err)

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	err = fs.Remove(testFile)
	require.NoError(t, err)
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestSymlinkRoundTrip(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "link")

	require.NoError(t, fs.Symlink("target.txt", link))

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "target.txt", got)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestExists(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	ok, err := Exists(fs, tmpDir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(fs, filepath.Join(tmpDir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	// A dangling symlink still counts as an existing path.
	dangling := filepath.Join(tmpDir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "nowhere"), dangling))
	ok, err = Exists(fs, dangling)
	require.NoError(t, err)
	assert.True(t, ok)
}
