// Package config loads hireboard's YAML configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/hireboard/internal/config/colors"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database"`
	Daemon      DaemonConfig       `yaml:"daemon"`
	Logging     LoggingConfig      `yaml:"logging"`
	Pipeline    PipelineConfig     `yaml:"pipeline"`
	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// DatabaseConfig locates the SQLite file
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DaemonConfig locates the realtime hub
type DaemonConfig struct {
	SocketPath string `yaml:"socket_path"`
	Enabled    bool   `yaml:"enabled"`
}

// LoggingConfig locates the log file
type LoggingConfig struct {
	Path string `yaml:"path"`
}

// PipelineConfig tunes the optimistic move pipeline
type PipelineConfig struct {
	JobID                  string        `yaml:"job_id"` // Board shown by default; empty = every job
	MovedBy                string        `yaml:"moved_by"`
	ReconcileTimeout       time.Duration `yaml:"reconcile_timeout"`
	UndoWindow             time.Duration `yaml:"undo_window"`
	RefreshOnFailure       *bool         `yaml:"refresh_on_failure"`
	UndoTriggersAutomation bool          `yaml:"undo_triggers_automation"`

	// FaultRate injects random transient failures into reconciliation.
	// Only useful for demos.
	FaultRate float64 `yaml:"fault_rate"`
}

// Defaults
const (
	DefaultReconcileTimeout = 10 * time.Second
	DefaultUndoWindow       = 7 * time.Second
	DefaultMovedBy          = "user:local"
)

// JobEnv selects the current job for a shell session
const JobEnv = "HIREBOARD_JOB"

// Default returns a fully defaulted configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file. A missing file yields defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		applyEnv(cfg)
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads one config file. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	loadThemeFile(&cfg)
	applyEnv(&cfg)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values no default can repair
func (c *Config) Validate() error {
	if c.Pipeline.ReconcileTimeout < 0 {
		return fmt.Errorf("pipeline.reconcile_timeout must not be negative")
	}
	if c.Pipeline.UndoWindow < 0 {
		return fmt.Errorf("pipeline.undo_window must not be negative")
	}
	if c.Pipeline.FaultRate < 0 || c.Pipeline.FaultRate > 1 {
		return fmt.Errorf("pipeline.fault_rate must be between 0 and 1, got %v", c.Pipeline.FaultRate)
	}
	return nil
}

// RefreshEnabled reports the effective refresh_on_failure flag (default true)
func (p PipelineConfig) RefreshEnabled() bool {
	return p.RefreshOnFailure == nil || *p.RefreshOnFailure
}

// Path returns the config file location:
// $HIREBOARD_CONFIG, else $XDG_CONFIG_HOME/hireboard/config.yaml,
// else ~/.config/hireboard/config.yaml
func Path() (string, error) {
	if p := os.Getenv("HIREBOARD_CONFIG"); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "hireboard", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "hireboard", "config.yaml"), nil
}

// DataDir returns ~/.hireboard
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hireboard"), nil
}

// loadThemeFile merges a theme from HIREBOARD_THEME_FILE if set
func loadThemeFile(cfg *Config) {
	themeFile := os.Getenv("HIREBOARD_THEME_FILE")
	if themeFile == "" {
		return
	}
	data, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}
	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(data, &themeConfig) == nil {
		cfg.ColorScheme = themeConfig.Theme
	}
}

func applyEnv(cfg *Config) {
	if p := os.Getenv("HIREBOARD_DB_PATH"); p != "" {
		cfg.Database.Path = p
	}
	if p := os.Getenv("HIREBOARD_SOCKET_PATH"); p != "" {
		cfg.Daemon.SocketPath = p
	}
	if job := os.Getenv(JobEnv); job != "" {
		cfg.Pipeline.JobID = job
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if dir, err := DataDir(); err == nil {
		if c.Database.Path == "" {
			c.Database.Path = filepath.Join(dir, "hireboard.db")
		}
		if c.Daemon.SocketPath == "" {
			c.Daemon.SocketPath = filepath.Join(dir, "hireboard.sock")
		}
		if c.Logging.Path == "" {
			c.Logging.Path = filepath.Join(dir, "logs", "hireboard.log")
		}
	}
	if c.Pipeline.ReconcileTimeout == 0 {
		c.Pipeline.ReconcileTimeout = DefaultReconcileTimeout
	}
	if c.Pipeline.UndoWindow == 0 {
		c.Pipeline.UndoWindow = DefaultUndoWindow
	}
	if c.Pipeline.MovedBy == "" {
		c.Pipeline.MovedBy = DefaultMovedBy
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
