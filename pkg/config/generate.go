package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const generatedHeader = `# dotsetup configuration
# Generated from the effective configuration. Durations are written in
# nanoseconds; strings such as "5m" are accepted as well.

`

// ToTOML renders the configuration as a TOML document
func (c *Config) ToTOML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to encode configuration as TOML")
	}
	return buf.Bytes(), nil
}

// ToYAML renders the configuration as a YAML document
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to encode configuration as YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to encode configuration as YAML")
	}
	return buf.Bytes(), nil
}

// WriteTOML writes the configuration to path, creating parent directories.
// An existing file is only replaced when overwrite is set.
func (c *Config) WriteTOML(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.Newf(errors.ErrInvalidInput, "config file already exists: %s", path).
			WithDetail("path", path)
	}

	data, err := c.ToTOML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}
