package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for dotfiles location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for dotsetup-specific files
	AppDirName = "dotsetup"

	// ConfigFileName is the base name (without extension) of the user config
	ConfigFileName = "config"
)

// ConfigExtensions are the config file extensions searched, in order
var ConfigExtensions = []string{".toml", ".yaml", ".yml", ".jsonc", ".json"}

// Paths provides centralized path management for dotsetup
type Paths interface {
	DotfilesRoot() string
	UsedFallback() bool
	HomeDir() string
	ConfigDir() string
	StateDir() string
	ConfigFileCandidates() []string
	Resolve(path string) string
}

type paths struct {
	dotfilesRoot string
	homeDir      string
	xdgConfig    string
	xdgState     string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given dotfiles root.
// If dotfilesRoot is empty, it is determined from DOTFILES_ROOT, the
// enclosing git repository or the current directory, in that order.
func New(dotfilesRoot string) (Paths, error) {
	p := &paths{}

	home, err := HomeDirectory()
	if err != nil {
		return nil, err
	}
	p.homeDir = home

	if dotfilesRoot == "" {
		root, usedFallback, err := findDotfilesRoot()
		if err != nil {
			return nil, err
		}
		p.dotfilesRoot = root
		p.usedFallback = usedFallback
	} else {
		p.dotfilesRoot = ExpandHome(dotfilesRoot)
	}

	absRoot, err := filepath.Abs(p.dotfilesRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	p.dotfilesRoot = absRoot

	// Pick up XDG_* changes made after process start
	xdg.Reload()
	p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	p.xdgState = filepath.Join(xdg.StateHome, AppDirName)

	return p, nil
}

// findDotfilesRoot determines the dotfiles root using the following priority:
// 1. DOTFILES_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findDotfilesRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return ExpandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		// Not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// HomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func HomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands a leading ~ to the home directory.
// Paths of the form ~user are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := HomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	return ExpandHome(os.ExpandEnv(path))
}

func (p *paths) DotfilesRoot() string { return p.dotfilesRoot }

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool { return p.usedFallback }

func (p *paths) HomeDir() string { return p.homeDir }

// ConfigDir returns $XDG_CONFIG_HOME/dotsetup
func (p *paths) ConfigDir() string { return p.xdgConfig }

// StateDir returns $XDG_STATE_HOME/dotsetup
func (p *paths) StateDir() string { return p.xdgState }

// ConfigFileCandidates lists the user config files in lookup order
func (p *paths) ConfigFileCandidates() []string {
	candidates := make([]string, 0, len(ConfigExtensions))
	for _, ext := range ConfigExtensions {
		candidates = append(candidates, filepath.Join(p.xdgConfig, ConfigFileName+ext))
	}
	return candidates
}

// Resolve expands ~ and environment variables, then anchors relative
// paths at the dotfiles root.
func (p *paths) Resolve(path string) string {
	if path == "" {
		return path
	}
	expanded := ExpandPath(path)
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded)
	}
	return filepath.Join(p.dotfilesRoot, expanded)
}
