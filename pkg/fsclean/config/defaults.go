// Package config provides configuration management for fsclean.
package config

// Default configuration values for fsclean.
const (
	// DefaultOperations are the operations run when none are requested.
	DefaultOperations = "duplicates"

	// DefaultOutput is the default summary formatter.
	DefaultOutput = "pretty"

	// DefaultChangelogName is the report filename used when --changelog
	// is given without a value.
	DefaultChangelogName = "changelog.json"

	// DefaultLogLevel is the default diagnostic log level.
	DefaultLogLevel = "info"

	// DefaultWorkers is the fingerprint worker count; zero means one
	// worker per CPU.
	DefaultWorkers = 0
)
