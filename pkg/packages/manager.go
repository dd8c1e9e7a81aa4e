package packages

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/runner"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// Manager runs package manager operations through a runner
type Manager struct {
	runner        runner.Runner
	fs            types.FS
	logger        zerolog.Logger
	pm            config.PackageManager
	markers       []string
	commentPrefix string
}

// NewManager creates a Manager for the given configuration
func NewManager(r runner.Runner, fsys types.FS, cfg *config.Config, logger zerolog.Logger) *Manager {
	return &Manager{
		runner:        r,
		fs:            fsys,
		logger:        logger,
		pm:            cfg.PackageManager,
		markers:       cfg.Kernel.Markers,
		commentPrefix: cfg.Requirements.CommentPrefix,
	}
}

// CheckKernelUpdates lists upgradable packages and returns the lines that
// mention a kernel marker. Each match is logged verbatim as a warning.
func (m *Manager) CheckKernelUpdates(ctx context.Context) ([]string, error) {
	res, err := m.runner.Run(ctx, m.ListCommand())
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, line := range res.Lines() {
		if m.isKernelLine(line) {
			matches = append(matches, line)
		}
	}

	if len(matches) == 0 {
		m.logger.Info().Msg("No kernel updates are available")
		return nil, nil
	}

	m.logger.Warn().Int("count", len(matches)).Msg("Kernel updates are available")
	for _, line := range matches {
		m.logger.Warn().Msg(line)
	}
	return matches, nil
}

func (m *Manager) isKernelLine(line string) bool {
	for _, marker := range m.markers {
		if marker != "" && strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// UpdateSystem runs update, upgrade, autoremove and autoclean. It stops at
// the first failing sub-step and returns its error.
func (m *Manager) UpdateSystem(ctx context.Context) error {
	for _, cmd := range m.UpdateCommands() {
		m.logger.Info().Str("command", cmd.String()).Msg("Running system update step")
		if _, err := m.runner.Run(ctx, cmd); err != nil {
			return err
		}
	}

	m.logger.Info().Msg("System update completed")
	return nil
}

// InstallRequirements installs every package listed in the file at path
// with a single install invocation. It returns the parsed package names.
func (m *Manager) InstallRequirements(ctx context.Context, path string) ([]string, error) {
	names, err := ReadRequirements(m.fs, path, m.commentPrefix)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		m.logger.Info().Str("path", path).Msg("No packages listed, nothing to install")
		return nil, nil
	}

	m.logger.Info().
		Str("path", path).
		Int("count", len(names)).
		Msg("Installing requirements")

	if _, err := m.runner.Run(ctx, m.InstallCommand(names)); err != nil {
		return names, err
	}

	m.logger.Info().Int("count", len(names)).Msg("Requirements installed")
	return names, nil
}

// ListCommand lists upgradable packages
func (m *Manager) ListCommand() runner.Command {
	return m.command(false, "list", "--upgradable")
}

// UpdateCommands are the system update sub-steps in execution order
func (m *Manager) UpdateCommands() []runner.Command {
	return []runner.Command{
		m.command(true, "update"),
		m.command(true, "upgrade", "-y"),
		m.command(true, "autoremove", "-y"),
		m.command(true, "autoclean"),
	}
}

// InstallCommand installs all names in one invocation
func (m *Manager) InstallCommand(names []string) runner.Command {
	return m.command(true, append([]string{"install", "-y"}, names...)...)
}

func (m *Manager) command(privileged bool, args ...string) runner.Command {
	return runner.Command{
		Name:    m.pm.Command,
		Args:    args,
		Env:     m.pm.Env,
		Sudo:    privileged && m.pm.Sudo,
		Stream:  privileged,
		Timeout: m.pm.Timeout,
	}
}
