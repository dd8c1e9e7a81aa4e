package config

import "time"

// PackageManager describes how the OS package manager is invoked
type PackageManager struct {
	Command     string        `koanf:"command" toml:"command" yaml:"command"`
	Sudo        bool          `koanf:"sudo" toml:"sudo" yaml:"sudo"`
	SudoCommand string        `koanf:"sudo_command" toml:"sudo_command" yaml:"sudo_command"`
	Env         []string      `koanf:"env" toml:"env" yaml:"env"`
	Timeout     time.Duration `koanf:"timeout" toml:"timeout" yaml:"timeout"`
}

// Kernel holds the substrings that identify kernel packages
type Kernel struct {
	Markers []string `koanf:"markers" toml:"markers" yaml:"markers"`
}

// Requirements locates and parses the requirements file
type Requirements struct {
	// File is resolved against the dotfiles root when relative
	File          string `koanf:"file" toml:"file" yaml:"file"`
	CommentPrefix string `koanf:"comment_prefix" toml:"comment_prefix" yaml:"comment_prefix"`
}

// Git configures the git client used by the cloner
type Git struct {
	Command string        `koanf:"command" toml:"command" yaml:"command"`
	Depth   int           `koanf:"depth" toml:"depth" yaml:"depth"`
	Timeout time.Duration `koanf:"timeout" toml:"timeout" yaml:"timeout"`
}

// Repository is a git repository cloned into Base/Dir
type Repository struct {
	Name string `koanf:"name" toml:"name" yaml:"name"`
	URL  string `koanf:"url" toml:"url" yaml:"url"`
	Base string `koanf:"base" toml:"base" yaml:"base"`
	Dir  string `koanf:"dir" toml:"dir" yaml:"dir"`
}

// Copy is a directory copied from the dotfiles root into the home directory
type Copy struct {
	Name        string `koanf:"name" toml:"name" yaml:"name"`
	Source      string `koanf:"source" toml:"source" yaml:"source"`
	Destination string `koanf:"destination" toml:"destination" yaml:"destination"`
}

// Log configures the log file sink
type Log struct {
	File    string `koanf:"file" toml:"file" yaml:"file"`
	Disable bool   `koanf:"disable" toml:"disable" yaml:"disable"`
}

// Run controls pipeline-wide behavior
type Run struct {
	// Strict makes the process exit non-zero when any step failed
	Strict bool     `koanf:"strict" toml:"strict" yaml:"strict"`
	Skip   []string `koanf:"skip" toml:"skip" yaml:"skip"`
}

// Config is the main configuration structure
type Config struct {
	PackageManager PackageManager `koanf:"package_manager" toml:"package_manager" yaml:"package_manager"`
	Kernel         Kernel         `koanf:"kernel" toml:"kernel" yaml:"kernel"`
	Requirements   Requirements   `koanf:"requirements" toml:"requirements" yaml:"requirements"`
	Git            Git            `koanf:"git" toml:"git" yaml:"git"`
	Repositories   []Repository   `koanf:"repositories" toml:"repositories" yaml:"repositories"`
	Copies         []Copy         `koanf:"copies" toml:"copies" yaml:"copies"`
	Log            Log            `koanf:"log" toml:"log" yaml:"log"`
	Run            Run            `koanf:"run" toml:"run" yaml:"run"`

	// Source is the user config file that was loaded, if any
	Source string `koanf:"-" toml:"-" yaml:"-"`
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserFile: true, SkipEnv: true})
	if err != nil {
		// The embedded file is covered by tests; reaching this is a build defect
		panic("invalid embedded defaults: " + err.Error())
	}
	return cfg
}
