package main

import (
	"fmt"
	"os"

	"github.com/jamesainslie/fsclean/pkg/fsclean/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "fsclean [flags] <path>...",
		Short: "Clean up duplicate files, empty files, and messy filenames",
		Long: `fsclean performs three independent cleanup operations over target
directory trees: removing byte-identical duplicate files, removing empty
files and directories, and normalizing inconsistent filenames.

Every attempted change is recorded in a changelog that can be written as a
JSON report. Use --dry-run to preview exactly what would happen without
touching a single file.

Examples:
  fsclean -o duplicates ~/Downloads            # Remove duplicate files
  fsclean -o duplicates -d -r ~/Photos         # Recursive dry-run preview
  fsclean -o empties,duplicates -c report.json /data
  fsclean -o naming -s lowercase -S _ ./inbox  # Normalize filenames
  fsclean config show                          # Show configuration
  fsclean cache clear                          # Drop the digest cache`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClean,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/fsclean/config.yaml)")
	rootCmd.PersistentFlags().StringP("op", "o", "", "operations to perform, comma-separated (naming, empties, duplicates)")
	rootCmd.PersistentFlags().StringP("changelog", "c", "", "path for the JSON changelog report")
	rootCmd.PersistentFlags().Lookup("changelog").NoOptDefVal = config.DefaultChangelogName
	rootCmd.PersistentFlags().BoolP("dry-run", "d", false, "don't modify files, only record what would happen")
	rootCmd.PersistentFlags().BoolP("recursive", "r", false, "recursively enter subdirectories")
	rootCmd.PersistentFlags().StringP("style", "s", "", "naming style for the naming operation (capitalized, titlecase, lowercase, uppercase)")
	rootCmd.PersistentFlags().StringP("space", "S", "", "replace filename spaces with this character during the naming operation")
	rootCmd.PersistentFlags().String("output", "", "summary format (pretty, plain, json)")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "fingerprint worker count (0=auto)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the digest cache")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("operations", rootCmd.PersistentFlags().Lookup("op"))
	_ = viper.BindPFlag("changelog", rootCmd.PersistentFlags().Lookup("changelog"))
	_ = viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
	_ = viper.BindPFlag("recursive", rootCmd.PersistentFlags().Lookup("recursive"))
	_ = viper.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	_ = viper.BindPFlag("space_char", rootCmd.PersistentFlags().Lookup("space"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("no_cache", rootCmd.PersistentFlags().Lookup("no-cache"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and environment variables. A broken
// config file is a configuration error: reported, then the run continues
// on defaults and flags.
func initConfig() {
	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
