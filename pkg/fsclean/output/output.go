// Package output provides formatters for displaying fsclean run
// summaries in various formats (pretty, plain, json).
//
// The package uses a registry pattern so formatter implementations can
// be selected at runtime by name.
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
)

// Result is the run summary handed to formatters.
type Result struct {
	// RunID is the ledger's run identifier.
	RunID string

	// Targets are the directory roots that were processed.
	Targets []string

	// Operations are the operation names that ran, in execution order.
	Operations []string

	// DryRun reports whether mutation was suppressed.
	DryRun bool

	// Changes are the recorded ledger entries in append order.
	Changes []changelog.Entry

	// BytesFreed is the total reclaimed by confirmed deletions.
	BytesFreed int64

	// Duration is the total run time.
	Duration time.Duration

	// ChangelogPath is where the report was persisted, empty when no
	// report was requested.
	ChangelogPath string
}

// Executed counts entries whose mutation was actually carried out.
func (r *Result) Executed() int {
	n := 0
	for _, c := range r.Changes {
		if c.Executed {
			n++
		}
	}
	return n
}

// Failed counts entries that carry an error message.
func (r *Result) Failed() int {
	n := 0
	for _, c := range r.Changes {
		if !c.Executed && c.Message != "" {
			n++
		}
	}
	return n
}

// Formatter renders a Result into a buffer.
type Formatter interface {
	Format(w *bytes.Buffer, r *Result) error
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Formatter)
)

// Register adds a formatter under a name, replacing any previous one.
func Register(name string, f Formatter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Get returns the formatter registered under name.
func Get(name string) (Formatter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", name, namesLocked())
	}
	return f, nil
}

// Names returns the registered formatter names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("pretty", &PrettyFormatter{})
	Register("plain", &PlainFormatter{})
	Register("json", &JSONFormatter{})
}
