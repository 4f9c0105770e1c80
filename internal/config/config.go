package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harrison/fileset-compare/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is not given
const DefaultConfigFile = ".fileset-compare.yaml"

// Missing-directory policies
const (
	OnMissingFail = "fail"
	OnMissingWarn = "warn"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Formats lists the supported report formats
var Formats = []string{"text", "markdown", "html", "json", "yaml"}

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled records every comparison in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the SQLite history database
	DBPath string `yaml:"db_path"`
}

// Config represents fileset-compare configuration options
type Config struct {
	// Dirs are the directories to compare, in report order
	Dirs []string `yaml:"dirs"`

	// Rules are the normalization rules, applied in order
	Rules models.RuleList `yaml:"rules"`

	// Exclude lists substrings; matching paths are skipped
	Exclude []string `yaml:"exclude"`

	// Recursive walks subdirectories
	Recursive bool `yaml:"recursive"`

	// OnMissing decides what a missing or unreadable directory does (fail, warn)
	OnMissing string `yaml:"on_missing"`

	// Format is the report format (text, markdown, html, json, yaml)
	Format string `yaml:"format"`

	// Color controls colored text output (auto, always, never)
	Color string `yaml:"color"`

	// Output is the report file; empty writes to stdout
	Output string `yaml:"output"`

	// ShowCollisions adds the collision section to reports
	ShowCollisions bool `yaml:"show_collisions"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is where run logs are written; empty disables file logging
	LogDir string `yaml:"log_dir"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		OnMissing: OnMissingFail,
		Format:    "text",
		Color:     ColorAuto,
		LogLevel:  "warn",
		History: HistoryConfig{
			Enabled: false,
			DBPath:  filepath.Join(".fileset-compare", "history.db"),
		},
	}
}

type fileRule struct {
	Match   *string `yaml:"match" toml:"match"`
	Replace *string `yaml:"replace" toml:"replace"`
}

// fileConfig mirrors Config with pointer fields so that keys absent from
// the file leave the defaults alone.
type fileConfig struct {
	Dirs           []string   `yaml:"dirs" toml:"dirs"`
	Rules          []fileRule `yaml:"rules" toml:"rules"`
	Exclude        []string   `yaml:"exclude" toml:"exclude"`
	Recursive      *bool      `yaml:"recursive" toml:"recursive"`
	OnMissing      string     `yaml:"on_missing" toml:"on_missing"`
	Format         string     `yaml:"format" toml:"format"`
	Color          string     `yaml:"color" toml:"color"`
	Output         string     `yaml:"output" toml:"output"`
	ShowCollisions *bool      `yaml:"show_collisions" toml:"show_collisions"`
	LogLevel       string     `yaml:"log_level" toml:"log_level"`
	LogDir         *string    `yaml:"log_dir" toml:"log_dir"`
	History        *struct {
		Enabled *bool   `yaml:"enabled" toml:"enabled"`
		DBPath  *string `yaml:"db_path" toml:"db_path"`
	} `yaml:"history" toml:"history"`
}

// LoadConfig loads configuration from the specified file path.
// Files ending in .toml are parsed as TOML, anything else as YAML.
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(fileCfg.Dirs) > 0 {
		cfg.Dirs = fileCfg.Dirs
	}
	if len(fileCfg.Rules) > 0 {
		rules := make(models.RuleList, 0, len(fileCfg.Rules))
		for i, r := range fileCfg.Rules {
			if r.Match == nil {
				return nil, models.NewConfigError("rules", "", fmt.Sprintf("rule %d is missing its match", i+1))
			}
			if r.Replace == nil {
				return nil, models.NewConfigError("rules", *r.Match, fmt.Sprintf("rule %d is missing its replace", i+1))
			}
			rules = append(rules, models.Rule{Match: *r.Match, Replace: *r.Replace})
		}
		cfg.Rules = rules
	}
	if len(fileCfg.Exclude) > 0 {
		cfg.Exclude = fileCfg.Exclude
	}
	if fileCfg.Recursive != nil {
		cfg.Recursive = *fileCfg.Recursive
	}
	if fileCfg.OnMissing != "" {
		cfg.OnMissing = fileCfg.OnMissing
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.Color != "" {
		cfg.Color = fileCfg.Color
	}
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if fileCfg.ShowCollisions != nil {
		cfg.ShowCollisions = *fileCfg.ShowCollisions
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	// An explicit empty log_dir is kept: it disables file logging
	if fileCfg.LogDir != nil {
		cfg.LogDir = *fileCfg.LogDir
	}
	if fileCfg.History != nil {
		if fileCfg.History.Enabled != nil {
			cfg.History.Enabled = *fileCfg.History.Enabled
		}
		if fileCfg.History.DBPath != nil {
			cfg.History.DBPath = *fileCfg.History.DBPath
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .fileset-compare.yaml in the specified directory
// If the file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigFile))
}

// FlagOverrides carries CLI flag values. Nil pointers and empty slices leave
// the configuration untouched; list flags replace the configured list.
type FlagOverrides struct {
	Dirs           []string
	Rules          models.RuleList
	Exclude        []string
	Recursive      *bool
	OnMissing      *string
	Format         *string
	Color          *string
	Output         *string
	ShowCollisions *bool
	LogLevel       *string
	LogDir         *string
	HistoryDB      *string
}

// MergeWithFlags merges CLI flags into the configuration
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(f FlagOverrides) {
	if len(f.Dirs) > 0 {
		c.Dirs = f.Dirs
	}
	if len(f.Rules) > 0 {
		c.Rules = f.Rules
	}
	if len(f.Exclude) > 0 {
		c.Exclude = f.Exclude
	}
	if f.Recursive != nil {
		c.Recursive = *f.Recursive
	}
	if f.OnMissing != nil {
		c.OnMissing = *f.OnMissing
	}
	if f.Format != nil {
		c.Format = *f.Format
	}
	if f.Color != nil {
		c.Color = *f.Color
	}
	if f.Output != nil {
		c.Output = *f.Output
	}
	if f.ShowCollisions != nil {
		c.ShowCollisions = *f.ShowCollisions
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.HistoryDB != nil {
		c.History.Enabled = true
		c.History.DBPath = *f.HistoryDB
	}
}

// Validate validates the configuration values.
// Every failure is a *models.ConfigError naming the flag to fix.
func (c *Config) Validate() error {
	if len(c.Dirs) < 2 {
		return models.NewConfigError("--dir", "", "at least 2 directories must be specified")
	}

	seen := make(map[string]bool, len(c.Dirs))
	for _, dir := range c.Dirs {
		if dir == "" {
			return models.NewConfigError("--dir", "", "directory path must not be empty")
		}
		clean := filepath.Clean(dir)
		if seen[clean] {
			return models.NewConfigError("--dir", dir, "directory specified more than once")
		}
		seen[clean] = true
	}

	if err := c.Rules.Validate(); err != nil {
		return err
	}

	for _, pattern := range c.Exclude {
		if pattern == "" {
			return models.NewConfigError("--exclude", "", "exclusion pattern must not be empty")
		}
	}

	if c.OnMissing != OnMissingFail && c.OnMissing != OnMissingWarn {
		return models.NewConfigError("--on-missing", c.OnMissing, "must be one of: fail, warn")
	}
	if !contains(Formats, c.Format) {
		return models.NewConfigError("--format", c.Format, "must be one of: "+strings.Join(Formats, ", "))
	}
	if c.Color != ColorAuto && c.Color != ColorAlways && c.Color != ColorNever {
		return models.NewConfigError("--color", c.Color, "must be one of: auto, always, never")
	}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return models.NewConfigError("--log-level", c.LogLevel, "must be one of: "+strings.Join(validLogLevels, ", "))
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return models.NewConfigError("history.db_path", "", "cannot be empty when history is enabled")
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
