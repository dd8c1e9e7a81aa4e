package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// dryRunFS reads from the wrapped filesystem and logs writes instead of
// performing them
type dryRunFS struct {
	base   types.FS
	logger zerolog.Logger
}

// NewDryRun wraps base so that every mutating call is a logged no-op
func NewDryRun(base types.FS, logger zerolog.Logger) types.FS {
	return &dryRunFS{base: base, logger: logger}
}

func (d *dryRunFS) skip(op, path string) {
	d.logger.Debug().
		Str("op", op).
		Str("path", path).
		Msg("Dry run mode - filesystem change skipped")
}

func (d *dryRunFS) Stat(name string) (fs.FileInfo, error)  { return d.base.Stat(name) }
func (d *dryRunFS) Lstat(name string) (fs.FileInfo, error) { return d.base.Lstat(name) }
func (d *dryRunFS) ReadFile(name string) ([]byte, error)   { return d.base.ReadFile(name) }
func (d *dryRunFS) Readlink(name string) (string, error)   { return d.base.Readlink(name) }

func (d *dryRunFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return d.base.ReadDir(name)
}

func (d *dryRunFS) WriteFile(name string, _ []byte, _ fs.FileMode) error {
	d.skip("write", name)
	return nil
}

func (d *dryRunFS) Chmod(name string, _ fs.FileMode) error {
	d.skip("chmod", name)
	return nil
}

func (d *dryRunFS) MkdirAll(path string, _ fs.FileMode) error {
	d.skip("mkdir", path)
	return nil
}

func (d *dryRunFS) Symlink(_, newname string) error {
	d.skip("symlink", newname)
	return nil
}

func (d *dryRunFS) Remove(name string) error {
	d.skip("remove", name)
	return nil
}

func (d *dryRunFS) RemoveAll(path string) error {
	d.skip("remove_all", path)
	return nil
}
