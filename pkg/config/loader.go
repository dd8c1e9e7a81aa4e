package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys
const EnvPrefix = "DOTSETUP_"

// LoadOptions controls which layers Load reads
type LoadOptions struct {
	// ConfigFile is an explicit user config file; it must exist
	ConfigFile string
	// Candidates are searched in order when ConfigFile is empty
	Candidates []string
	// Overrides are applied last, keyed by dotted path (e.g. "run.strict")
	Overrides map[string]interface{}

	SkipUserFile bool
	SkipEnv      bool
}

// Load builds the configuration from defaults, user file, environment and
// overrides, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	knownKeys := scalarKeys(k)

	// 2. User config file
	var source string
	if !opts.SkipUserFile {
		path, err := findUserFile(opts)
		if err != nil {
			return nil, err
		}
		if path != "" {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			source = path
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKeyMapper(knownKeys)), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findUserFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			if os.IsNotExist(err) {
				return "", errors.NotFound("config file", opts.ConfigFile)
			}
			return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read config file %s", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}
	for _, candidate := range opts.Candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	case ".json", ".jsonc":
		return jsoncParser{}, nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// scalarKeys returns the leaf keys that can be set from a single env var.
// Arrays of tables (repositories, copies) are excluded.
func scalarKeys(k *koanf.Koanf) []string {
	var keys []string
	for _, key := range k.Keys() {
		if items, ok := k.Get(key).([]interface{}); ok && len(items) > 0 {
			if _, isMap := items[0].(map[string]interface{}); isMap {
				continue
			}
		}
		keys = append(keys, key)
	}
	return keys
}

// envKeyMapper maps DOTSETUP_PACKAGE_MANAGER_SUDO_COMMAND to
// package_manager.sudo_command by matching against known keys, since
// underscores appear both as separators and inside key names.
func envKeyMapper(known []string) func(string) string {
	lookup := make(map[string]string, len(known))
	for _, key := range known {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return func(s string) string {
		return lookup[strings.ToLower(strings.TrimPrefix(s, EnvPrefix))]
	}
}

// Describe reports where the configuration came from
func (c *Config) Describe() string {
	if c.Source == "" {
		return "built-in defaults"
	}
	return fmt.Sprintf("%s (over built-in defaults)", c.Source)
}
