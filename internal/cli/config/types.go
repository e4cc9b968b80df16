// Package config provides configuration management for the dsfetch CLI.
//
// Values are layered with koanf: built-in defaults, then dsfetch.yaml, then
// DSFETCH_* environment variables, then explicitly set command-line flags.
package config

import (
	"log/slog"
	"time"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/kaggle"
)

// Config holds all CLI configuration options.
type Config struct {
	Root        string        `koanf:"root"`
	CatalogFile string        `koanf:"catalog_file"`
	Output      string        `koanf:"output"`
	Verbose     bool          `koanf:"verbose"`
	LogLevel    slog.Level    `koanf:"log_level"`
	Strict      bool          `koanf:"strict"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`
	Kaggle      KaggleConfig  `koanf:"kaggle"`
}

// KaggleConfig controls access to the Kaggle API.
type KaggleConfig struct {
	// Enabled false treats the client as not installed: gated datasets
	// always fall back to manual instructions.
	Enabled bool `koanf:"enabled"`

	// ConfigDir is searched for kaggle.json before KAGGLE_CONFIG_DIR and
	// ~/.kaggle.
	ConfigDir string `koanf:"config_dir"`

	BaseURL string `koanf:"base_url"`
}

// Default configuration values
const (
	DefaultRoot        = catalog.DefaultRoot
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=plain
	DefaultLogLevel    = "warn"
	DefaultHTTPTimeout = time.Hour
	DefaultBaseURL     = kaggle.DefaultBaseURL
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Root:        DefaultRoot,
		Output:      DefaultOutput,
		LogLevel:    slog.LevelWarn,
		HTTPTimeout: DefaultHTTPTimeout,
		Kaggle: KaggleConfig{
			Enabled: true,
			BaseURL: DefaultBaseURL,
		},
	}
}

// Level returns the effective log level. Verbose forces debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return c.LogLevel
}
