// Package changelog provides the append-only change ledger shared by all
// fsclean operations and its persisted JSON report format.
package changelog

import (
	"errors"
	"syscall"
	"time"
)

// FormatVersion is the version tag written into persisted reports. It is
// incremented when the report format changes.
const FormatVersion = 2

// Entry records a single attempted filesystem mutation. Entries are
// immutable once appended; the ledger assigns the ID.
type Entry struct {
	// ID is a monotonic sequence number assigned on append.
	ID int `json:"id"`

	// Operation names the subsystem that produced the entry.
	Operation string `json:"operation"`

	// Executed reports whether the mutation was actually carried out.
	// False under dry-run or when the mutation failed.
	Executed bool `json:"executed"`

	// Path is the file or directory the mutation targeted.
	Path string `json:"path,omitempty"`

	// Original is the surviving file a removed duplicate pointed at.
	Original string `json:"original,omitempty"`

	// Src and Dest describe a rename.
	Src  string `json:"src,omitempty"`
	Dest string `json:"dest,omitempty"`

	// Size is the byte size reclaimed by a confirmed deletion.
	Size int64 `json:"size,omitempty"`

	// Message carries the error text for failed or skipped mutations.
	Message string `json:"message,omitempty"`

	// Errno is the underlying OS error number, when one exists.
	Errno int `json:"errno,omitempty"`
}

// Report is the root object of the persisted changelog document.
type Report struct {
	Version    int       `json:"version"`
	RunID      string    `json:"run_id"`
	Start      time.Time `json:"start"`
	DurationMS float64   `json:"duration_ms"`
	BytesFreed int64     `json:"bytes_freed"`
	Changes    []Entry   `json:"changes"`
}

// Errno extracts the OS error number from an error chain, or 0 when the
// error carries none.
func Errno(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}
