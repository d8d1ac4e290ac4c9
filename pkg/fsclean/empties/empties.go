// Package empties removes zero-byte files and empty directories. It is
// a plain deterministic tree walk; it shares the walker and the change
// ledger with the other operations but no duplicate-engine logic.
package empties

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/types"
	"github.com/jamesainslie/fsclean/pkg/fsclean/walker"
)

// Options configures the empties pass.
type Options struct {
	Recursive bool
	DryRun    bool
}

// Remover removes empty files and directories under a target root.
type Remover struct {
	opts Options
	log  *log.Logger
}

// New creates a Remover.
func New(opts Options, logger *log.Logger) *Remover {
	return &Remover{opts: opts, log: logger}
}

// Run processes one target root. Per-item failures are logged and
// recorded; only a root-level traversal failure is returned.
func (r *Remover) Run(root string, cl *changelog.Log) error {
	wopts := walker.Options{
		Recursive: r.opts.Recursive,
		OnError: func(dir string, err error) {
			r.log.Error("failed to enumerate directory", "dir", dir, "error", err)
		},
	}

	return walker.Walk(root, wopts, func(b walker.Batch) error {
		for _, name := range b.Files {
			r.removeEmptyFile(filepath.Join(b.Dir, name), cl)
		}
		for _, name := range b.Dirs {
			r.removeEmptyDir(filepath.Join(b.Dir, name), cl)
		}
		return nil
	})
}

// removeEmptyFile deletes path when it is a zero-byte regular file.
func (r *Remover) removeEmptyFile(path string, cl *changelog.Log) {
	op := string(types.OpEmpties)

	info, err := os.Lstat(path)
	if err != nil {
		r.log.Warn("cannot stat file", "path", path, "error", err)
		return
	}
	if !info.Mode().IsRegular() || info.Size() != 0 {
		return
	}

	r.log.Info("remove empty file", "path", path)

	if r.opts.DryRun {
		cl.Append(changelog.Entry{Operation: op, Executed: false, Path: path})
		return
	}

	if err := os.Remove(path); err != nil {
		r.log.Error("failed to remove empty file", "path", path, "error", err)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Path:      path,
			Message:   err.Error(),
			Errno:     changelog.Errno(err),
		})
		return
	}

	cl.Append(changelog.Entry{Operation: op, Executed: true, Path: path})
}

// removeEmptyDir deletes path when it is a directory with no entries.
func (r *Remover) removeEmptyDir(path string, cl *changelog.Log) {
	op := string(types.OpEmpties)

	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		r.log.Error("failed to list directory", "path", path, "error", err)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Path:      path,
			Message:   err.Error(),
			Errno:     changelog.Errno(err),
		})
		return
	}
	if len(entries) != 0 {
		return
	}

	r.log.Info("remove empty directory", "path", path)

	if r.opts.DryRun {
		cl.Append(changelog.Entry{Operation: op, Executed: false, Path: path})
		return
	}

	if err := os.Remove(path); err != nil {
		r.log.Error("failed to remove empty directory", "path", path, "error", err)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Path:      path,
			Message:   err.Error(),
			Errno:     changelog.Errno(err),
		})
		return
	}

	cl.Append(changelog.Entry{Operation: op, Executed: true, Path: path})
}
