package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/fsclean/pkg/fsclean/config"
	"github.com/jamesainslie/fsclean/pkg/fsclean/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the digest cache",
	Long: `Commands for managing the fsclean digest cache.

The cache stores content fingerprints keyed by path, size, and mtime so
that unchanged files are not re-hashed on repeat duplicate searches.
Cache data is stored in the XDG cache directory (typically
~/.cache/fsclean/digests).`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all cached digests",
	Long:  `Removes all cached digests. The next duplicate search will re-hash every candidate file.`,
	RunE:  runCacheClear,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Long:  `Displays the cache location and its on-disk size.`,
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

// cachePath resolves the configured digest cache location.
func cachePath() string {
	path := viper.GetString("cache.path")
	if path == "" {
		return config.DefaultCacheDir()
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		return expanded
	}
	return path
}

// runCacheClear removes the cache directory wholesale.
func runCacheClear(cmd *cobra.Command, args []string) error {
	path := cachePath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Cache is already empty.")
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Println("Cache cleared.")
	return nil
}

// runCacheStats reports the cache location and size.
func runCacheStats(cmd *cobra.Command, args []string) error {
	path := cachePath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Cache: empty")
		fmt.Printf("Cache location: %s\n", path)
		return nil
	}

	var size int64
	var fileCount int
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			size += info.Size()
			fileCount++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to measure cache: %w", err)
	}

	fmt.Printf("Cache location: %s\n", path)
	fmt.Printf("Cache size: %s (%d files)\n", types.FormatSize(size), fileCount)
	return nil
}
