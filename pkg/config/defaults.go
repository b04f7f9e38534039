package config

import (
	"os"
	"path/filepath"
)

// defaultTarget returns the default credentials file to monitor.
//
// Returns: ~/.aws/credentials.
func defaultTarget() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return string(filepath.Separator) + filepath.Join("etc", "credwatch", "credentials")
	}

	return filepath.Join(homeDir, ".aws", "credentials")
}

// defaultDBPath returns the default account database file path.
//
// Returns: ~/.config/credwatch/accounts.db.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./accounts.db"
	}

	return filepath.Join(homeDir, ".config", "credwatch", "accounts.db")
}

// DefaultPath returns the default configuration file path.
//
// Returns: ~/.config/credwatch/config.yaml.
func DefaultPath() string {
	return defaultConfigPath()
}

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/credwatch/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "credwatch", "config.yaml")
}
