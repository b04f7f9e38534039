package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nataliegryphon/credwatch/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage credwatch configuration",
}

var configShowFormat string

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var data []byte
		switch configShowFormat {
		case "json":
			data, err = json.MarshalIndent(cfg, "", "  ")
		default:
			data, err = yaml.Marshal(cfg)
		}
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configInitPath
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Save(config.Default(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "yaml", "output format (yaml, json)")
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "output path (default: ~/.config/credwatch/config.yaml)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
