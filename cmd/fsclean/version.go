package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
)

// Build-time variables set by goreleaser or go build -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Display the version, commit hash, and build date of this fsclean
binary, along with the changelog report format version it writes.

Include this output when reporting unexpected cleanup behavior, and check
the report version when parsing changelog.json files produced by
different fsclean releases.`,
	Run: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// runVersion prints version information.
func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("fsclean %s\n", version)
	fmt.Printf("  commit:  %s\n", commit)
	fmt.Printf("  built:   %s\n", date)
	fmt.Printf("  report:  v%d\n", changelog.FormatVersion)
	fmt.Printf("  go:      %s\n", runtime.Version())
	fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
