// Package config provides configuration management for credwatch.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file
// 3. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("watching: %s\n", cfg.Target)
package config

import (
	"path/filepath"
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - Target must be a non-empty path
// - Monitor.Interval must be > 0
// - Monitor.Strategy must be "metadata" or "content"
// - Logging level and format must be recognized values.
type Config struct {
	// Target is the credentials file to monitor.
	Target string `yaml:"target"`

	// Monitor settings
	Monitor MonitorConfig `yaml:"monitor"`

	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// MonitorConfig contains change-detection settings.
type MonitorConfig struct {
	// How often to poll the target for changes
	Interval time.Duration `yaml:"interval"`

	// Fingerprint strategy: "metadata" (size+mtime) or "content" (SHA-256)
	Strategy string `yaml:"strategy"`
}

// StorageConfig contains storage-related settings.
type StorageConfig struct {
	// Path to the BoltDB account database
	DBPath string `yaml:"db_path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Thread-safety: This method is read-only and thread-safe.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}
	if !filepath.IsAbs(c.Target) {
		return ErrRelativeTarget
	}

	if c.Monitor.Interval <= 0 {
		return ErrInvalidInterval
	}

	validStrategies := map[string]bool{
		"metadata": true,
		"content":  true,
	}
	if !validStrategies[c.Monitor.Strategy] {
		return ErrInvalidStrategy
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Target: defaultTarget(),
		Monitor: MonitorConfig{
			Interval: 3 * time.Second,
			Strategy: "metadata",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}
