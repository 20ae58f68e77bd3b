// Package config loads Aperture's layered configuration: defaults, then the
// YAML file, then APERTURE_* environment variables. Command-line flags are
// applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/aperture/internal/evaluation"
	"github.com/abhisek/aperture/internal/llm"
	"github.com/abhisek/aperture/internal/progress"
)

// Config is the complete application configuration.
type Config struct {
	// DB is the SQLite database path. Empty resolves to the default data dir.
	DB string `yaml:"db"`

	LLM        llm.Config        `yaml:"llm"`
	Evaluation evaluation.Config `yaml:"evaluation"`
	Progress   ProgressConfig    `yaml:"progress"`
	Log        LogConfig         `yaml:"log"`
}

// ProgressConfig selects where lesson progress is persisted.
type ProgressConfig struct {
	// Engine is "sqlite" (default) or "json".
	Engine string `yaml:"engine"`
	// Path is the JSON document path, used by the json engine.
	Path string `yaml:"path"`
}

// LogConfig configures the application log.
type LogConfig struct {
	Level string `yaml:"level"`
	// Path overrides the log file used by the TUI.
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM:        llm.DefaultConfig(),
		Evaluation: evaluation.DefaultConfig(),
		Progress:   ProgressConfig{Engine: progress.EngineSQLite},
		Log:        LogConfig{Level: "info"},
	}
}

// Validate checks the settings that do not depend on an API key.
func (c *Config) Validate() error {
	switch c.Progress.Engine {
	case progress.EngineSQLite, progress.EngineJSON:
	default:
		return fmt.Errorf("unknown progress engine %q", c.Progress.Engine)
	}
	if c.Evaluation.MaxTokens <= 0 {
		return fmt.Errorf("evaluation.max_tokens must be positive")
	}
	if c.Evaluation.Temperature < 0 || c.Evaluation.Temperature > 1 {
		return fmt.Errorf("evaluation.temperature must be between 0 and 1")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// LoadFromFile reads a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays APERTURE_* environment variables.
func (c *Config) ApplyEnv() {
	c.LLM.ApplyEnv()
	if v := os.Getenv("APERTURE_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("APERTURE_PROGRESS_ENGINE"); v != "" {
		c.Progress.Engine = v
	}
	if v := os.Getenv("APERTURE_PROGRESS_FILE"); v != "" {
		c.Progress.Path = v
	}
	if v := os.Getenv("APERTURE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/aperture/config.yaml, falling back
// to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "aperture", "config.yaml")
}

// DefaultProgressFile is the json engine's document when none is configured.
func DefaultProgressFile() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "aperture-progress.json"
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "aperture", "progress.json")
}

// DefaultLogPath is where the TUI writes its log.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "aperture", "aperture.log")
}

// isNotExist reports whether err came from a missing file.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
