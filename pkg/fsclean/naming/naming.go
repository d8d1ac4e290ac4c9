// Package naming normalizes inconsistent filenames: stray padding,
// extraneous spaces, uppercase extensions, junk characters around the
// extension dot, and optional casing conventions.
package naming

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/types"
	"github.com/jamesainslie/fsclean/pkg/fsclean/walker"
)

// strippingChars are trimmed from both ends of a filename stem.
const strippingChars = " _-"

// adjacentPeriodPattern matches non-alphanumeric, non-bracket characters
// hugging the extension dot; they are collapsed into the dot itself.
var adjacentPeriodPattern = regexp.MustCompile(`(?i)([^A-Z\d)\]])?\.([^A-Z\d(\[])?`)

// Normalize returns the corrected form of a filename. A name that is
// already consistent comes back unchanged.
func Normalize(filename string, style Style, spaceChar string) string {
	name, ext := splitName(filename)

	if name != "" {
		name = strings.Trim(name, strippingChars)
		name = strings.Join(strings.Fields(name), " ")
		name = style.apply(name)
		if spaceChar != "" {
			name = strings.ReplaceAll(name, " ", spaceChar)
		}
	}

	ext = strings.ReplaceAll(ext, " ", "")
	ext = strings.ToLower(ext)

	return adjacentPeriodPattern.ReplaceAllString(name+ext, ".")
}

// splitName separates a filename into stem and extension. A leading-dot
// name with no further dot ("`.bashrc`") is all stem, no extension.
func splitName(filename string) (name, ext string) {
	ext = filepath.Ext(filename)
	if ext == filename {
		return filename, ""
	}
	return strings.TrimSuffix(filename, ext), ext
}

// Options configures the rename pass.
type Options struct {
	Recursive bool
	DryRun    bool
	Style     Style
	SpaceChar string
}

// Renamer applies filename normalization under a target root.
type Renamer struct {
	opts Options
	log  *log.Logger
}

// New creates a Renamer.
func New(opts Options, logger *log.Logger) *Renamer {
	return &Renamer{opts: opts, log: logger}
}

// Run processes one target root. Rename failures and occupied
// destinations become non-executed ledger entries; only a root-level
// traversal failure is returned.
func (r *Renamer) Run(root string, cl *changelog.Log) error {
	wopts := walker.Options{
		Recursive: r.opts.Recursive,
		OnError: func(dir string, err error) {
			r.log.Error("failed to enumerate directory", "dir", dir, "error", err)
		},
	}

	return walker.Walk(root, wopts, func(b walker.Batch) error {
		r.log.Info("working in directory",
			"dir", b.Dir, "files", len(b.Files), "subdirs", len(b.Dirs))

		for _, name := range b.Files {
			newName := Normalize(name, r.opts.Style, r.opts.SpaceChar)
			if newName == name || newName == "" {
				r.log.Debug("no change", "name", name)
				continue
			}
			r.rename(filepath.Join(b.Dir, name), filepath.Join(b.Dir, newName), cl)
		}
		return nil
	})
}

// rename moves src to dest, refusing to overwrite an existing file.
func (r *Renamer) rename(src, dest string, cl *changelog.Log) {
	op := string(types.OpNaming)

	r.log.Info("rename", "src", src, "dest", dest)

	if r.opts.DryRun {
		cl.Append(changelog.Entry{Operation: op, Executed: false, Src: src, Dest: dest})
		return
	}

	if _, err := os.Lstat(dest); err == nil {
		r.log.Warn("destination already exists", "src", src, "dest", dest)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Src:       src,
			Dest:      dest,
			Message:   "destination already exists",
		})
		return
	}

	if err := os.Rename(src, dest); err != nil {
		r.log.Error("failed to rename", "src", src, "error", err)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Src:       src,
			Dest:      dest,
			Message:   err.Error(),
			Errno:     changelog.Errno(err),
		})
		return
	}

	cl.Append(changelog.Entry{Operation: op, Executed: true, Src: src, Dest: dest})
}
