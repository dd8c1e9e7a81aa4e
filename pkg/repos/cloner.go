package repos

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/runner"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// Outcome tells whether a clone ran
type Outcome int

const (
	// Cloned means the repository was cloned into the target
	Cloned Outcome = iota
	// Skipped means the target already existed
	Skipped
)

func (o Outcome) String() string {
	if o == Skipped {
		return "skipped"
	}
	return "cloned"
}

// Cloner clones repositories with the git command line client
type Cloner struct {
	runner runner.Runner
	fs     types.FS
	logger zerolog.Logger
	git    config.Git
}

// NewCloner creates a Cloner using the git settings of cfg
func NewCloner(r runner.Runner, fsys types.FS, git config.Git, logger zerolog.Logger) *Cloner {
	if git.Command == "" {
		git.Command = "git"
	}
	return &Cloner{runner: r, fs: fsys, logger: logger, git: git}
}

// Target returns the directory a repository is cloned into
func Target(repo config.Repository) string {
	return filepath.Join(paths.ExpandPath(repo.Base), repo.Dir)
}

// Clone creates the base directory and clones repo into Base/Dir unless
// that path already exists.
func (c *Cloner) Clone(ctx context.Context, repo config.Repository) (Outcome, error) {
	if repo.URL == "" {
		return Cloned, errors.Newf(errors.ErrInvalidInput, "repository %q has no url", repo.Name).
			WithDetail("name", repo.Name)
	}
	if repo.Base == "" || repo.Dir == "" {
		return Cloned, errors.Newf(errors.ErrInvalidInput, "repository %q needs both base and dir", repo.Name).
			WithDetail("name", repo.Name)
	}

	base := paths.ExpandPath(repo.Base)
	target := Target(repo)
	logger := c.logger.With().
		Str("repository", repo.Name).
		Str("target", target).
		Logger()

	if err := c.fs.MkdirAll(base, 0755); err != nil {
		return Cloned, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", base).
			WithDetail("path", base)
	}

	exists, err := filesystem.Exists(c.fs, target)
	if err != nil {
		return Cloned, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", target).
			WithDetail("path", target)
	}
	if exists {
		logger.Info().Msg("Repository already installed, skipping")
		return Skipped, nil
	}

	args := []string{"clone"}
	if c.git.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(c.git.Depth))
	}
	args = append(args, repo.URL, target)

	logger.Info().Str("url", repo.URL).Msg("Cloning repository")
	_, err = c.runner.Run(ctx, runner.Command{
		Name:    c.git.Command,
		Args:    args,
		Stream:  true,
		Timeout: c.git.Timeout,
	})
	if err != nil {
		return Cloned, errors.Wrapf(err, errors.ErrClone, "failed to clone %s", repo.URL).
			WithDetail("url", repo.URL).
			WithDetail("target", target)
	}

	logger.Info().Msg("Repository cloned")
	return Cloned, nil
}
