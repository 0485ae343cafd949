// Package config loads and persists Final-Trace configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Final-Trace configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// Attempt persistence
	Store StoreConfig `yaml:"store"`

	// Analytics collector
	Analysis AnalysisConfig `yaml:"analysis"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	WatchConfig     bool   `yaml:"watch_config"` // Hot-reload log level from the config file
}

// StoreConfig configures attempt persistence.
type StoreConfig struct {
	Backend string `yaml:"backend"` // sqlite or memory
	Path    string `yaml:"path"`
}

// AnalysisConfig configures the sample collector.
type AnalysisConfig struct {
	PerPuzzle   int `yaml:"per_puzzle"`
	Parallelism int `yaml:"parallelism"`
}

// LoggingConfig configures category file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Dir        string          `yaml:"dir"`
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the built-in defaults. The status name is the one
// the original expedition service reported.
func DefaultConfig() *Config {
	return &Config{
		Name:    "Final-Trace Expedition 33",
		Version: "1.0.0",

		Server: ServerConfig{
			Addr:            "127.0.0.1:5000",
			ReadTimeout:     "10s",
			ShutdownTimeout: "5s",
			WatchConfig:     false,
		},

		Store: StoreConfig{
			Backend: "sqlite",
			Path:    "data/finaltrace.db",
		},

		Analysis: AnalysisConfig{
			PerPuzzle:   4,
			Parallelism: 4,
		},

		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
			Dir:       "data/logs",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("TRACE_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path := os.Getenv("TRACE_DB"); path != "" {
		c.Store.Backend = "sqlite"
		c.Store.Path = path
	}
	if lvl := os.Getenv("TRACE_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if os.Getenv("TRACE_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// ReadTimeoutDuration parses the configured read timeout, falling back to
// 10s on bad input.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return parseDuration(s.ReadTimeout, 10*time.Second)
}

// ShutdownTimeoutDuration parses the configured shutdown timeout, falling
// back to 5s on bad input.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(s.ShutdownTimeout, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
