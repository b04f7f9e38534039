package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nataliegryphon/credwatch/pkg/account"
	"github.com/nataliegryphon/credwatch/pkg/config"
	"github.com/nataliegryphon/credwatch/pkg/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "credwatch",
	Short: "Credentials file change monitor",
	Long: `credwatch watches a credentials file and reloads stored account
settings when the file content changes, after confirmation.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file")
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the effective configuration, honoring --config.
func loadConfig() (*config.Config, error) {
	return config.NewLoader(cfgFile).Load()
}

// newLogger builds the application logger from configuration.
func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
		Format: cfg.Logging.Format,
	})
}

// openStore opens the account database named by the configuration,
// creating its parent directory if needed.
func openStore(cfg *config.Config) (account.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0700); err != nil {
		return nil, err
	}
	return account.OpenBoltStore(cfg.Storage.DBPath)
}
