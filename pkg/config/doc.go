// Package config handles configuration management for dotsetup.
// It layers the embedded defaults, an optional user config file (TOML, YAML
// or JSON with comments), DOTSETUP_* environment variables and command-line
// overrides, in that order, and decodes the result into a Config.
package config
