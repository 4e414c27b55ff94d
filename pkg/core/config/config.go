package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

// EnvConfigPath names the environment variable that points at a config file
const EnvConfigPath = "MDWLOC_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General   GeneralConfig   `toml:"general" yaml:"general"`
	Generator GeneratorConfig `toml:"generator" yaml:"generator"`
	Runtime   RuntimeConfig   `toml:"runtime" yaml:"runtime"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// GeneratorConfig holds settings for "mdwloc generate"
type GeneratorConfig struct {
	InputDir   string   `toml:"input_dir" yaml:"input_dir"`
	OutputDir  string   `toml:"output_dir" yaml:"output_dir"` // empty: next to each document
	Package    string   `toml:"package" yaml:"package"`       // empty: derived from the namespace
	I18nImport string   `toml:"i18n_import" yaml:"i18n_import"`
	Workers    int      `toml:"workers" yaml:"workers"` // 0: one per CPU
	Debounce   Duration `toml:"debounce" yaml:"debounce"`
}

// RuntimeConfig holds settings for the runtime resolver
type RuntimeConfig struct {
	// ResourceDir loads language files from disk instead of the embedded set
	ResourceDir     string `toml:"resource_dir" yaml:"resource_dir"`
	Prefix          string `toml:"prefix" yaml:"prefix"`
	DefaultLanguage string `toml:"default_language" yaml:"default_language"`
	PreferencesPath string `toml:"preferences_path" yaml:"preferences_path"`
	PersistChoice   *bool  `toml:"persist_choice" yaml:"persist_choice"`
}

// Persist reports whether the selected language is stored across sessions
func (r RuntimeConfig) Persist() bool {
	return r.PersistChoice == nil || *r.PersistChoice
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError(err, "failed to read config", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, configError(err, "failed to parse config", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPaths returns the locations searched when MDWLOC_CONFIG is unset
func DefaultPaths() []string {
	paths := []string{
		"./configs/mdwloc.toml",
		"./mdwloc.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mdwloc", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads the file named by MDWLOC_CONFIG or the first existing
// default path. Without any file the defaults are returned. The second
// result is the path that was loaded, if any.
func LoadFromEnv() (*Config, string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}

	return Default(), "", nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "mdwloc"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
		if dir, err := os.UserConfigDir(); err == nil {
			c.General.DataDir = filepath.Join(dir, "mdwloc")
		}
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Generator
	if c.Generator.InputDir == "" {
		c.Generator.InputDir = "."
	}
	if c.Generator.Debounce.Duration == 0 {
		c.Generator.Debounce.Duration = 300 * time.Millisecond
	}

	// Runtime
	if c.Runtime.Prefix == "" {
		c.Runtime.Prefix = "lang_"
	}
	if c.Runtime.DefaultLanguage == "" {
		c.Runtime.DefaultLanguage = "en"
	}
	if c.Runtime.PreferencesPath == "" {
		c.Runtime.PreferencesPath = filepath.Join(c.General.DataDir, "preferences.db")
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Generator.InputDir = os.ExpandEnv(c.Generator.InputDir)
	c.Generator.OutputDir = os.ExpandEnv(c.Generator.OutputDir)
	c.Runtime.ResourceDir = os.ExpandEnv(c.Runtime.ResourceDir)
	c.Runtime.PreferencesPath = os.ExpandEnv(c.Runtime.PreferencesPath)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if c.Generator.Workers < 0 {
		return invalid("generator.workers", c.Generator.Workers)
	}
	if c.Generator.Debounce.Duration < 0 {
		return invalid("generator.debounce", c.Generator.Debounce.String())
	}
	return nil
}

func configError(err error, message, path string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeConfigError).
		WithOperation("config.Load").
		WithDetail("path", path)
}

func invalid(field string, value interface{}) error {
	return mdwerror.Newf("invalid value %v for %s", value, field).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("field", field)
}
