package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/arthur-debert/dotsetup/pkg/runner"
	"github.com/arthur-debert/dotsetup/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     string
	strict     bool
	root       string

	// requirementsFile is the install command's argument
	requirementsFile string
}

// app is the per-invocation state shared by the commands
type app struct {
	opts     *globalOptions
	paths    paths.Paths
	cfg      *config.Config
	logger   *logging.Logger
	renderer ui.Renderer
	stderr   io.Writer
}

// newApp resolves paths, loads configuration and builds the logger and
// renderer. The caller must Close the app.
func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	a := &app{opts: opts, renderer: renderer, stderr: cmd.ErrOrStderr()}

	a.paths, a.cfg, err = loadConfig(opts, flagOverrides(cmd, opts))
	if err != nil {
		return a, err
	}

	a.logger = logging.New(logging.Options{
		Verbosity:   opts.verbosity,
		FilePath:    paths.ExpandPath(a.cfg.Log.File),
		DisableFile: a.cfg.Log.Disable,
		Console:     a.stderr,
		NoColor:     !isTerminal(a.stderr),
	})

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("dotfilesRoot", a.paths.DotfilesRoot()).
		Str("config", a.cfg.Describe()).
		Msg("Command started")
	if a.paths.UsedFallback() {
		a.logger.Warn().Str("dotfilesRoot", a.paths.DotfilesRoot()).Msg(MsgFallbackWarning)
	}
	return a, nil
}

// loadConfig resolves the dotfiles root and loads the layered configuration
func loadConfig(opts *globalOptions, overrides map[string]interface{}) (paths.Paths, *config.Config, error) {
	p, err := paths.New(opts.root)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrFileAccess, MsgErrInitPaths)
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: paths.ExpandPath(opts.configFile),
		Candidates: p.ConfigFileCandidates(),
		Overrides:  overrides,
	})
	if err != nil {
		return p, nil, err
	}
	return p, cfg, nil
}

// flagOverrides maps explicitly set flags onto config keys. They form the
// last configuration layer, above the file and DOTSETUP_* variables.
func flagOverrides(cmd *cobra.Command, opts *globalOptions) map[string]interface{} {
	overrides := make(map[string]interface{})
	if cmd.Flags().Changed("strict") {
		overrides["run.strict"] = opts.strict
	}
	if opts.requirementsFile != "" {
		overrides["requirements.file"] = opts.requirementsFile
	}
	return overrides
}

// Close flushes the log file
func (a *app) Close() {
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// pipeline builds the standard pipeline against real or dry-run
// collaborators
func (a *app) pipeline(dryRun bool) *provision.Pipeline {
	var (
		r    runner.Runner
		fsys = filesystem.NewOS()
	)
	if dryRun {
		r = runner.NewDryRunRunner(a.logger.Component("runner"))
		fsys = filesystem.NewDryRun(fsys, a.logger.Component("filesystem"))
	} else {
		r = runner.NewExecRunner(runner.Options{
			Logger:      a.logger.Component("runner"),
			SudoCommand: a.cfg.PackageManager.SudoCommand,
			// Live output goes to stderr so stdout stays machine readable
			Stdout: a.stderr,
			Stderr: a.stderr,
		})
	}

	return provision.Build(a.cfg, provision.Deps{
		Runner: r,
		FS:     fsys,
		Paths:  a.paths,
		Logger: a.logger.Logger,
		DryRun: dryRun,
	})
}

// selectSteps narrows the pipeline to names. With no names the configured
// run.skip list applies instead; explicit names always win over it.
func (a *app) selectSteps(p *provision.Pipeline, names []string) (*provision.Pipeline, error) {
	if len(names) > 0 {
		return p.Only(names...)
	}
	return p.Skip(a.cfg.Run.Skip...), nil
}

// runSteps runs the selected steps and renders the report
func runSteps(cmd *cobra.Command, opts *globalOptions, names []string) error {
	a, err := newApp(cmd, opts)
	if a != nil {
		defer a.Close()
	}
	if err != nil {
		return renderFailure(a, err)
	}

	p, err := a.selectSteps(a.pipeline(opts.dryRun), names)
	if err != nil {
		return renderFailure(a, err)
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := p.Run(ctx)
	if err := a.renderer.RenderReport(report); err != nil {
		return err
	}
	if a.logger.Path() != "" {
		a.logger.Debug().Str("path", a.logger.Path()).Msg("Log written")
	}

	if failed := report.Count(provision.StatusFailed); failed > 0 && a.cfg.Run.Strict {
		return errors.Newf(errors.ErrStepsFailed, MsgErrStepsFailed, failed).WithDetail("failed", failed)
	}
	return nil
}

// renderFailure reports err through the renderer when one exists and
// returns it so the process exits non-zero
func renderFailure(a *app, err error) error {
	if a != nil && a.renderer != nil {
		_ = a.renderer.RenderError(err)
		return errReported{err}
	}
	return err
}

// errReported marks an error that was already shown to the user
type errReported struct{ error }

func (e errReported) Unwrap() error { return e.error }

func configPath(a *app) string {
	return filepath.Join(a.paths.ConfigDir(), paths.ConfigFileName+".toml")
}

// contextOrBackground guards against commands executed without a context
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
