// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the dfmreport configuration file and builds the
// logger it describes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = ".dfmreport/config.yaml"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all dfmreport settings.
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
	Batch   BatchConfig   `yaml:"batch"`
}

// ReportConfig names the files written by an export.
type ReportConfig struct {
	FileName        string `yaml:"file_name"`
	SummaryFileName string `yaml:"summary_file_name"`
	UnfoldedSuffix  string `yaml:"unfolded_suffix"`
	// Summary enables summary.md without the --summary flag.
	Summary bool `yaml:"summary"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console, json
}

// BatchConfig configures batch runs.
type BatchConfig struct {
	StateDir string `yaml:"state_dir"`
	// Parallel is the number of conversions run at once.
	Parallel int `yaml:"parallel"`
	// WatchDebounce is how long a model file must stay unchanged before
	// batch watch converts it.
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			FileName:        "process_data.json",
			SummaryFileName: "summary.md",
			UnfoldedSuffix:  "_unfolded",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Batch: BatchConfig{
			StateDir:      ".dfmreport/run",
			Parallel:      1,
			WatchDebounce: 500 * time.Millisecond,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults. DFMREPORT_LOG_LEVEL overrides logging.level.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("DFMREPORT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate rejects unusable settings.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.encoding %q (expected console or json)", ErrInvalid, c.Logging.Encoding)
	}
	for key, name := range map[string]string{
		"report.file_name":         c.Report.FileName,
		"report.summary_file_name": c.Report.SummaryFileName,
	} {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: %s %q must be a plain file name", ErrInvalid, key, name)
		}
	}
	if c.Batch.StateDir == "" {
		return fmt.Errorf("%w: batch.state_dir is empty", ErrInvalid)
	}
	if c.Batch.Parallel < 1 {
		return fmt.Errorf("%w: batch.parallel %d must be at least 1", ErrInvalid, c.Batch.Parallel)
	}
	if c.Batch.WatchDebounce <= 0 {
		return fmt.Errorf("%w: batch.watch_debounce must be positive", ErrInvalid)
	}
	return nil
}

// NewLogger builds a logger writing to stderr. verbose forces debug level.
func (c *Config) NewLogger(verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = c.Logging.Encoding
	zc.DisableStacktrace = !verbose
	zc.Sampling = nil
	if c.Logging.Encoding == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Version returns the build version from DFMREPORT_VERSION.
func Version() string {
	if v := os.Getenv("DFMREPORT_VERSION"); v != "" {
		return v
	}
	return "0.0.0-dev"
}
