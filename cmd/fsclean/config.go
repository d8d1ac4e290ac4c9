package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/fsclean/pkg/fsclean/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage fsclean configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/fsclean/config.yaml (if set)
  2. ~/.config/fsclean/config.yaml

Environment variables can override config file settings using the FSCLEAN_
prefix:
  FSCLEAN_DRY_RUN=true
  FSCLEAN_OPERATIONS=empties,duplicates
  FSCLEAN_CACHE_ENABLED=false`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow prints the effective configuration as YAML.
func runConfigShow(cmd *cobra.Command, args []string) error {
	settings := viper.AllSettings()
	delete(settings, "config")

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Print(string(data))
	return nil
}

// runConfigPath prints where the config file lives (or would live).
func runConfigPath(cmd *cobra.Command, args []string) error {
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Println(used)
		return nil
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, "config.yaml") + " (not created)")
	return nil
}
