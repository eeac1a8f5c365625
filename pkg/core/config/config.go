// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     config
// Description: TOML and YAML configuration of the tabwerk tools
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned by LoadFromEnv when no config file exists
var ErrNoConfig = errors.New("no config file found")

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Format  FormatConfig  `toml:"format" yaml:"format"`
	Index   IndexConfig   `toml:"index" yaml:"index"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// FormatConfig holds the dumper settings
type FormatConfig struct {
	PreferredSeparator string `toml:"preferred_separator" yaml:"preferred_separator"`
	LineEnding         string `toml:"line_ending" yaml:"line_ending"`
	Placeholder        string `toml:"placeholder" yaml:"placeholder"`
	Normalize          bool   `toml:"normalize" yaml:"normalize"`
	WrapAfter          int    `toml:"wrap_after" yaml:"wrap_after"`
}

// IndexConfig holds the section index settings
type IndexConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// WatchConfig holds the watch mode settings
type WatchConfig struct {
	Debounce   Duration `toml:"debounce" yaml:"debounce"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
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
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file, or from a YAML file when
// the path ends in .yaml or .yml
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the TABWERK_CONFIG environment
// variable or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("TABWERK_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./tabwerk.toml",
			"./configs/tabwerk.toml",
			"./tabwerk.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/tabwerk/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, fmt.Errorf("%w, set TABWERK_CONFIG or create tabwerk.toml", ErrNoConfig)
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Format
	if c.Format.PreferredSeparator == "" {
		c.Format.PreferredSeparator = "    "
	}
	if c.Format.Placeholder == "" {
		c.Format.Placeholder = `\`
	}

	// Index
	if c.Index.Path == "" {
		c.Index.Path = filepath.Join(c.General.DataDir, "index.db")
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 500 * time.Millisecond
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".robot", ".txt", ".tsv"}
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Index.Path = os.ExpandEnv(c.Index.Path)
}

// LineEnding returns the configured line terminator with the escapes
// "\n" and "\r\n" resolved
func (c *Config) LineEnding() string {
	switch strings.ToLower(c.Format.LineEnding) {
	case `\n`, "lf":
		return "\n"
	case `\r\n`, "crlf":
		return "\r\n"
	default:
		return c.Format.LineEnding
	}
}
