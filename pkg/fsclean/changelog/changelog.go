package changelog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Log is the append-only in-memory change ledger for one run. It is safe
// for concurrent use; entries cannot be modified or removed once appended.
type Log struct {
	mu         sync.Mutex
	runID      uuid.UUID
	start      time.Time
	entries    []Entry
	bytesFreed int64
}

// New creates an empty ledger stamped with a fresh run ID and the current
// UTC time.
func New() *Log {
	return &Log{
		runID: uuid.New(),
		start: time.Now().UTC(),
	}
}

// Append records an entry, assigning the next sequence ID. The caller's ID
// field is ignored. The assigned ID is returned.
func (l *Log) Append(e Entry) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.ID = len(l.entries)
	l.entries = append(l.entries, e)
	return e.ID
}

// AddBytesFreed adds n to the running freed-byte total. Call only after a
// confirmed deletion.
func (l *Log) AddBytesFreed(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bytesFreed += n
}

// BytesFreed returns the total bytes reclaimed so far.
func (l *Log) BytesFreed() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bytesFreed
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RunID returns the run identifier stamped into the persisted report.
func (l *Log) RunID() string {
	return l.runID.String()
}

// Start returns the ledger creation time.
func (l *Log) Start() time.Time {
	return l.start
}

// Entries returns a copy of all recorded entries in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Report builds the persisted document for the current ledger state.
func (l *Log) Report() Report {
	l.mu.Lock()
	defer l.mu.Unlock()

	changes := make([]Entry, len(l.entries))
	copy(changes, l.entries)

	return Report{
		Version:    FormatVersion,
		RunID:      l.runID.String(),
		Start:      l.start,
		DurationMS: float64(time.Since(l.start)) / float64(time.Millisecond),
		BytesFreed: l.bytesFreed,
		Changes:    changes,
	}
}

// Save writes the report as indented JSON to path. The write is atomic:
// a temp file in the same directory is renamed over the target.
func (l *Log) Save(path string) error {
	report := l.Report()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal changelog: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write changelog: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename changelog into place: %w", err)
	}

	return nil
}
