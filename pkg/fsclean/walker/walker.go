// Package walker enumerates directory trees as per-directory batches.
// All three fsclean operations share it, supplying their own per-batch
// callbacks.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Batch lists the immediate contents of one visited directory. Names are
// sorted (os.ReadDir order) so repeat runs over the same tree visit
// entries deterministically.
type Batch struct {
	// Dir is the absolute or caller-relative path of the directory.
	Dir string

	// Files holds the names of non-directory entries. Symlinks are not
	// included; the walker never follows or acts through links.
	Files []string

	// Dirs holds the names of immediate subdirectories.
	Dirs []string
}

// Options configures a walk.
type Options struct {
	// Recursive enables descent into subdirectories. When false only the
	// root batch is produced.
	Recursive bool

	// OnError receives per-directory enumeration failures. The failed
	// subtree is skipped; the walk continues with its siblings. A nil
	// callback drops the errors.
	OnError func(dir string, err error)
}

// Fn is invoked once per visited directory, depth-first. Returning an
// error stops the walk and propagates the error to the caller.
type Fn func(Batch) error

// Walk produces batches for the tree rooted at root. A failure to read
// the root itself is returned as an error; failures below the root go to
// opts.OnError. Directories that vanish mid-walk (removed by another pass
// or process) are skipped silently.
func Walk(root string, opts Options, fn Fn) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %q", root)
	}

	return walk(root, opts, fn, true)
}

func walk(dir string, opts Options, fn Fn, isRoot bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if isRoot {
			return fmt.Errorf("cannot enumerate %q: %w", dir, err)
		}
		if !os.IsNotExist(err) && opts.OnError != nil {
			opts.OnError(dir, err)
		}
		return nil
	}

	batch := Batch{Dir: dir}
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			batch.Dirs = append(batch.Dirs, entry.Name())
		case entry.Type()&fs.ModeSymlink != 0:
			// Never act through symlinks; following one could escape
			// the target tree or form a cycle.
		default:
			batch.Files = append(batch.Files, entry.Name())
		}
	}

	if err := fn(batch); err != nil {
		return err
	}

	if !opts.Recursive {
		return nil
	}

	for _, sub := range batch.Dirs {
		if err := walk(filepath.Join(dir, sub), opts, fn, false); err != nil {
			return err
		}
	}
	return nil
}
