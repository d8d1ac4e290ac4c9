package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// CacheConfig configures the digest cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config represents the application configuration.
type Config struct {
	Operations string `mapstructure:"operations"`
	Changelog  string `mapstructure:"changelog"`
	DryRun     bool   `mapstructure:"dry_run"`
	Recursive  bool   `mapstructure:"recursive"`
	Style      string `mapstructure:"style"`
	SpaceChar  string `mapstructure:"space_char"`
	Output     string `mapstructure:"output"`
	Workers    int    `mapstructure:"workers"`
	NoCache    bool   `mapstructure:"no_cache"`
	LogLevel   string `mapstructure:"log_level"`

	Cache CacheConfig `mapstructure:"cache"`
}

// Init configures v to load fsclean configuration: an explicit config
// file when cfgFile is given, otherwise the standard search path
// ($XDG_CONFIG_HOME/fsclean/config.yaml, then ~/.config/fsclean), plus
// FSCLEAN_-prefixed environment variables and the defaults. A missing
// config file is fine; an unreadable or malformed one is an error.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, "fsclean"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "fsclean"))
		}
	}

	v.SetEnvPrefix("FSCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}
	return nil
}

// Load unmarshals the effective configuration out of v, expanding a
// ~-prefixed cache path. v must already carry defaults, environment, and
// any config file or flag values (see Init).
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Cache.Path != "" {
		expanded, err := ExpandPath(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		cfg.Cache.Path = expanded
	}

	return &cfg, nil
}

// SetDefaults registers the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("operations", DefaultOperations)
	v.SetDefault("changelog", "")
	v.SetDefault("dry_run", false)
	v.SetDefault("recursive", false)
	v.SetDefault("style", "")
	v.SetDefault("space_char", "")
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("no_cache", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", DefaultCacheDir())
}

// DefaultCacheDir returns the XDG cache directory for digest storage.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "fsclean", "digests")
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "fsclean"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "fsclean"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~/")), nil
}
