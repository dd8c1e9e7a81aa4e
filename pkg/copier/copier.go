package copier

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// Stats counts what a Copy did with the top-level entries of the source
type Stats struct {
	FilesCopied int `json:"files_copied" yaml:"files_copied"`
	DirsCopied  int `json:"dirs_copied" yaml:"dirs_copied"`
	DirsSkipped int `json:"dirs_skipped" yaml:"dirs_skipped"`
}

// Copier copies directory trees through a types.FS
type Copier struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Copier
func New(fsys types.FS, logger zerolog.Logger) *Copier {
	return &Copier{fs: fsys, logger: logger}
}

// Copy copies the contents of src into dst, creating dst when absent. An
// entry that fails to copy is logged and the remaining entries are still
// copied; the failures are returned together.
func (c *Copier) Copy(src, dst string) (Stats, error) {
	var stats Stats

	info, err := c.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, errors.NotFound("source directory", src)
		}
		return stats, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", src).
			WithDetail("path", src)
	}
	if !info.IsDir() {
		return stats, errors.Newf(errors.ErrNotFound, "source is not a directory: %s", src).
			WithDetail("path", src)
	}

	if err := c.fs.MkdirAll(dst, 0755); err != nil {
		return stats, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst).
			WithDetail("path", dst)
	}

	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return stats, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", src).
			WithDetail("path", src)
	}

	logger := c.logger.With().Str("source", src).Str("destination", dst).Logger()
	var failed []error
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			exists, err := filesystem.Exists(c.fs, to)
			if err != nil {
				failed = append(failed, c.entryFailed(logger, to, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", to).
					WithDetail("path", to)))
				continue
			}
			if exists {
				logger.Warn().Str("path", to).Msg("Destination directory already exists, skipping")
				stats.DirsSkipped++
				continue
			}
			if err := c.copyTree(from, to); err != nil {
				failed = append(failed, c.entryFailed(logger, to, err))
				continue
			}
			logger.Debug().Str("path", to).Msg("Directory copied")
			stats.DirsCopied++
			continue
		}

		copied, err := c.copyEntry(from, to)
		if err != nil {
			failed = append(failed, c.entryFailed(logger, to, err))
			continue
		}
		if copied {
			logger.Debug().Str("path", to).Msg("File copied")
			stats.FilesCopied++
		}
	}

	logger.Info().
		Int("files", stats.FilesCopied).
		Int("dirs", stats.DirsCopied).
		Int("skipped", stats.DirsSkipped).
		Int("failed", len(failed)).
		Msg("Copy completed")

	switch len(failed) {
	case 0:
		return stats, nil
	case 1:
		return stats, failed[0]
	default:
		return stats, errors.Wrapf(stderrors.Join(failed...), errors.GetErrorCode(failed[0]),
			"%d entries failed to copy from %s", len(failed), src).
			WithDetail("path", src).
			WithDetail("failed", len(failed))
	}
}

func (c *Copier) entryFailed(logger zerolog.Logger, path string, err error) error {
	logger.Error().Err(err).Str("path", path).Msg("Failed to copy entry, continuing")
	return err
}

// copyTree copies a directory that does not exist at the destination yet
func (c *Copier) copyTree(src, dst string) error {
	info, err := c.fs.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", src).WithDetail("path", src)
	}
	if err := c.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst).WithDetail("path", dst)
	}

	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", src).WithDetail("path", src)
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			err = c.copyTree(from, to)
		} else {
			_, err = c.copyEntry(from, to)
		}
		if err != nil {
			return err
		}
	}

	// MkdirAll is subject to the umask
	if err := c.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", dst).WithDetail("path", dst)
	}
	return nil
}

// copyEntry copies a file or recreates a symlink, replacing whatever
// non-directory entry is at dst. Special files are skipped.
func (c *Copier) copyEntry(src, dst string) (bool, error) {
	info, err := c.fs.Lstat(src)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", src).WithDetail("path", src)
	}

	if existing, err := c.fs.Lstat(dst); err == nil {
		if existing.IsDir() {
			return false, errors.Newf(errors.ErrFileWrite, "cannot overwrite directory %s with a file", dst).
				WithDetail("path", dst)
		}
		// Symlinks are replaced rather than written through
		if existing.Mode()&fs.ModeSymlink != 0 || info.Mode()&fs.ModeSymlink != 0 {
			if err := c.fs.Remove(dst); err != nil {
				return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", dst).WithDetail("path", dst)
			}
		}
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := c.fs.Readlink(src)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", src).WithDetail("path", src)
		}
		if err := c.fs.Symlink(target, dst); err != nil {
			return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to create link %s", dst).WithDetail("path", dst)
		}
		return true, nil

	case info.Mode().IsRegular():
		data, err := c.fs.ReadFile(src)
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src).WithDetail("path", src)
		}
		if err := c.fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
			return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst).WithDetail("path", dst)
		}
		// WriteFile keeps the mode of an existing file
		if err := c.fs.Chmod(dst, info.Mode().Perm()); err != nil {
			return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", dst).WithDetail("path", dst)
		}
		return true, nil

	default:
		c.logger.Warn().Str("path", src).Str("mode", info.Mode().String()).Msg("Skipping special file")
		return false, nil
	}
}
