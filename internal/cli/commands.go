package cli

import (
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/dotsetup/internal/version"
	"github.com/arthur-debert/dotsetup/pkg/cobrax/topics"
	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/arthur-debert/dotsetup/pkg/ui"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// Execute runs the root command and returns the process exit code
func Execute(args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	return exitCode(rootCmd, rootCmd.Execute())
}

func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	var reported errReported
	if !stderrors.As(err, &reported) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return 1
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotsetup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(cmd, opts, nil)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	flags.BoolVar(&opts.strict, "strict", false, MsgFlagStrict)
	flags.StringVar(&opts.root, "root", "", MsgFlagRoot)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "steps", Title: "STEPS:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)

	rootCmd.AddCommand(newStepCmd(opts, provision.StepKernel, MsgKernelShort))
	rootCmd.AddCommand(newStepCmd(opts, provision.StepUpdate, MsgUpdateShort))
	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newGroupCmd(opts, provision.StepClone, MsgCloneShort, MsgCloneLong, repositoryNames))
	rootCmd.AddCommand(newGroupCmd(opts, provision.StepCopy, MsgCopyShort, MsgCopyLong, copyNames))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	// Topic-based help replaces cobra's help command
	sub, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		_ = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

// newStepCmd creates a command running a single fixed step
func newStepCmd(opts *globalOptions, step, short string) *cobra.Command {
	return &cobra.Command{
		Use:     step,
		Short:   short,
		Args:    cobra.NoArgs,
		GroupID: "steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(cmd, opts, []string{step})
		},
	}
}

func newInstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "install [requirements-file]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.requirementsFile = args[0]
			}
			return runSteps(cmd, opts, []string{provision.StepInstall})
		},
	}
}

// newGroupCmd creates a command running every step of a group, or the
// named members of it
func newGroupCmd(opts *globalOptions, group, short, long string, complete func(*config.Config) []string) *cobra.Command {
	return &cobra.Command{
		Use:     group + " [names...]",
		Short:   short,
		Long:    long,
		GroupID: "steps",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			_, cfg, err := loadConfig(opts, nil)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return complete(cfg), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{group}
			if len(args) > 0 {
				names = names[:0]
				for _, name := range args {
					names = append(names, group+":"+name)
				}
			}
			return runSteps(cmd, opts, names)
		},
	}
}

func repositoryNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Repositories))
	for _, r := range cfg.Repositories {
		names = append(names, r.Name)
	}
	return names
}

func copyNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Copies))
	for _, c := range cfg.Copies {
		names = append(names, c.Name)
	}
	return names
}

func newPlanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "plan [steps...]",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if a != nil {
				defer a.Close()
			}
			if err != nil {
				return renderFailure(a, err)
			}

			// Planning never executes anything
			p, err := a.selectSteps(a.pipeline(true), args)
			if err != nil {
				return renderFailure(a, err)
			}

			plan := p.SetDryRun(opts.dryRun).Plan()
			plan.DotfilesRoot = a.paths.DotfilesRoot()
			plan.ConfigSource = a.cfg.Source
			return a.renderer.RenderPlan(plan)
		},
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if a != nil {
				defer a.Close()
			}
			if err != nil {
				return renderFailure(a, err)
			}

			if write {
				path := configPath(a)
				if err := a.cfg.WriteTOML(path, force); err != nil {
					return renderFailure(a, err)
				}
				a.logger.Info().Str("path", path).Msg("Config file written")
				return a.renderer.RenderMessage(fmt.Sprintf(MsgConfigWritten, path))
			}

			var data []byte
			if format, _ := ui.ParseFormat(opts.format); format == ui.FormatYAML {
				data, err = a.cfg.ToYAML()
			} else {
				data, err = a.cfg.ToTOML()
			}
			if err != nil {
				return renderFailure(a, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    `Print detailed version information including commit hash and build date`,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersion, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgVersionCommit, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgVersionDate, version.Date)
			}
		},
	}
}
