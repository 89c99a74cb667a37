package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the scanned root
const FileName = ".utf8check.yaml"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents utf8check configuration options
type Config struct {
	// LogLevel sets the stderr logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Color controls ANSI colors in the report (auto, always, never)
	Color string `yaml:"color"`

	// ReportFile, when set, receives a plain-text copy of the report
	ReportFile string `yaml:"report_file"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		Color:      ColorAuto,
		ReportFile: "",
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults without error; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-empty values from file (merging with defaults)
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Color != "" {
		cfg.Color = fileCfg.Color
	}
	if fileCfg.ReportFile != "" {
		cfg.ReportFile = fileCfg.ReportFile
		// Relative report paths are anchored at the config file
		if !filepath.IsAbs(cfg.ReportFile) {
			cfg.ReportFile = filepath.Join(filepath.Dir(path), cfg.ReportFile)
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .utf8check.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(logLevel *string, color *string, reportFile *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if color != nil {
		c.Color = *color
	}
	if reportFile != nil {
		c.ReportFile = *reportFile
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	return nil
}
