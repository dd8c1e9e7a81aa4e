package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Provision a personal machine from a dotfiles repository"
	MsgKernelShort    = "Check for pending kernel updates"
	MsgUpdateShort    = "Update, upgrade and clean system packages"
	MsgInstallShort   = "Install the packages listed in a requirements file"
	MsgCloneShort     = "Clone configured git repositories"
	MsgCopyShort      = "Copy configured directories into the home directory"
	MsgPlanShort      = "Show the steps a run would perform"
	MsgGenConfigShort = "Print or write the effective configuration"
	MsgVersionShort   = "Print version information"

	// Status messages
	MsgConfigWritten = "Wrote configuration to %s"
	MsgVersion       = "dotsetup version %s\n"
	MsgVersionCommit = "Commit: %s\n"
	MsgVersionDate   = "Built:  %s\n"

	// Error messages
	MsgErrStepsFailed = "%d step(s) failed"
	MsgErrInitPaths   = "failed to initialize paths"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagDryRun  = "Log commands and changes without executing them"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/dotsetup/config.toml)"
	MsgFlagFormat  = "Output format: auto, term, text, json or yaml"
	MsgFlagStrict  = "Exit non-zero when any step failed"
	MsgFlagRoot    = "Dotfiles root (default $DOTFILES_ROOT, the git toplevel or the current directory)"
	MsgFlagWrite   = "Write the config file instead of printing it"
	MsgFlagForce   = "Overwrite an existing config file"

	// Warnings
	MsgFallbackWarning = "Not in a git repository and DOTFILES_ROOT not set, using current directory"
)

// Long messages
const (
	MsgInstallLong = `Install every package listed in the requirements file with a single
package manager invocation. Blank lines and lines starting with the
comment prefix (# by default) are ignored.

The file defaults to requirements.file from the configuration, resolved
against the dotfiles root.`

	MsgCloneLong = `Clone the configured repositories. A repository whose target directory
already exists is skipped and left untouched.

With no names, every configured repository is cloned.`

	MsgCopyLong = `Copy configured directories from the dotfiles root into the home directory.

For each top-level entry of the source: directories are copied only when
they do not exist at the destination yet; files are always copied and
replace existing ones.

With no names, every configured copy runs.`

	MsgPlanLong = `Show the steps a run would perform, with the commands each one runs.
Nothing is executed.`

	MsgGenConfigLong = `Print the effective configuration, defaults merged with your config file
and DOTSETUP_* environment variables. With -w the TOML form is written to
$XDG_CONFIG_HOME/dotsetup/config.toml.`

	MsgGenConfigExample = `  dotsetup gen-config                 # TOML to stdout
  dotsetup gen-config --format yaml   # YAML to stdout
  dotsetup gen-config -w              # write the user config file`

	MsgRootExample = `  # Run every step
  dotsetup

  # Preview without changing anything
  dotsetup --dry-run

  # Only refresh packages, failing the process on errors
  dotsetup update --strict`
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)
)
