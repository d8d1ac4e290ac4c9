// Package duplicates implements the duplicate-file detection and
// resolution engine: content fingerprinting, grouping, deterministic
// survivor selection, and removal.
package duplicates

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/fsclean/pkg/fsclean/cache"
	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/fingerprint"
	"github.com/jamesainslie/fsclean/pkg/fsclean/types"
	"github.com/jamesainslie/fsclean/pkg/fsclean/walker"
)

// Options configures the duplicate engine.
type Options struct {
	// Recursive enables descent into subdirectories. Duplicate grouping
	// accumulates across the whole tree, so cross-subdirectory
	// duplicates are detected.
	Recursive bool

	// DryRun suppresses deletion; ledger entries are still recorded.
	DryRun bool

	// Workers bounds concurrent fingerprinting. Zero or negative means
	// one worker per CPU.
	Workers int

	// Cache is an optional digest cache. Nil disables caching.
	Cache *cache.Cache
}

// Engine finds and removes whole-file exact duplicates under a target
// root.
type Engine struct {
	opts Options
	log  *log.Logger
}

// New creates an Engine. The logger is required; pass logging.Nop() to
// silence it.
func New(opts Options, logger *log.Logger) *Engine {
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	return &Engine{opts: opts, log: logger}
}

// Run processes one target root: walk, fingerprint, group, resolve.
// Every attempted removal lands in the ledger; the returned total counts
// only confirmed deletions. Per-file failures are logged and skipped;
// only a root-level traversal failure is returned as an error.
func (e *Engine) Run(ctx context.Context, root string, cl *changelog.Log) (int64, error) {
	candidates, err := e.collect(root)
	if err != nil {
		return 0, err
	}

	toHash := sizeBuckets(candidates)
	if len(toHash) == 0 {
		return 0, nil
	}

	digests, hashed, err := e.fingerprintAll(ctx, candidates, toHash)
	if err != nil {
		return 0, err
	}

	grouper := NewGrouper()
	for _, i := range toHash {
		if hashed[i] {
			grouper.Add(digests[i], candidates[i])
		}
	}

	return e.resolve(grouper.Groups(), cl), nil
}

// collect walks the tree and gathers regular, non-empty files. Zero-byte
// files are excluded here: the empties operation claims them, and a set
// of empty files must never be reported as duplicates.
func (e *Engine) collect(root string) ([]Candidate, error) {
	var candidates []Candidate

	opts := walker.Options{
		Recursive: e.opts.Recursive,
		OnError: func(dir string, err error) {
			e.log.Error("failed to enumerate directory", "dir", dir, "error", err)
		},
	}

	err := walker.Walk(root, opts, func(b walker.Batch) error {
		for _, name := range b.Files {
			path := filepath.Join(b.Dir, name)
			info, err := os.Lstat(path)
			if err != nil {
				e.log.Warn("cannot stat file", "path", path, "error", err)
				continue
			}
			if !info.Mode().IsRegular() || info.Size() == 0 {
				continue
			}
			candidates = append(candidates, Candidate{
				Path:  path,
				Size:  info.Size(),
				Mtime: info.ModTime().UnixNano(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// sizeBuckets returns the indices of candidates whose byte size is shared
// by at least one other candidate, in walk order. Files with a unique
// size cannot have a duplicate, so hashing them is skipped.
func sizeBuckets(candidates []Candidate) []int {
	counts := make(map[int64]int, len(candidates))
	for _, c := range candidates {
		counts[c.Size]++
	}

	var toHash []int
	for i, c := range candidates {
		if counts[c.Size] >= 2 {
			toHash = append(toHash, i)
		}
	}
	return toHash
}

// fingerprintAll digests the selected candidates with a bounded worker
// pool, consulting the cache first. It returns only after every worker
// finishes, so grouping always observes a complete fingerprint set.
func (e *Engine) fingerprintAll(ctx context.Context, candidates []Candidate, toHash []int) ([]fingerprint.Digest, []bool, error) {
	digests := make([]fingerprint.Digest, len(candidates))
	hashed := make([]bool, len(candidates))

	var (
		mu         sync.Mutex
		newDigests map[string]*cache.CachedDigest
	)
	if e.opts.Cache != nil {
		newDigests = make(map[string]*cache.CachedDigest)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	for _, i := range toHash {
		if ctx.Err() != nil {
			break
		}
		c := candidates[i]
		idx := i
		g.Go(func() error {
			if e.opts.Cache != nil {
				if digest, ok := e.opts.Cache.Lookup(c.Path, c.Size, c.Mtime); ok {
					digests[idx] = digest
					hashed[idx] = true
					return nil
				}
			}

			rec, err := fingerprint.File(c.Path)
			if err != nil {
				// Unreadable files drop out of duplicate consideration.
				e.log.Warn("cannot fingerprint file", "path", c.Path, "error", err)
				return nil
			}
			digests[idx] = rec.Digest
			hashed[idx] = true

			if newDigests != nil {
				mu.Lock()
				newDigests[c.Path] = &cache.CachedDigest{
					Size:   c.Size,
					Mtime:  c.Mtime,
					Digest: rec.Digest,
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if e.opts.Cache != nil {
		if err := e.opts.Cache.Update(newDigests); err != nil {
			// Cache trouble never aborts the run.
			e.log.Warn("failed to update digest cache", "error", err)
		}
	}

	return digests, hashed, nil
}

// resolve picks a survivor per group and removes (or, under dry-run,
// records) the rest. Removal stays serialized so the existence check,
// deletion, and ledger write cannot race each other.
func (e *Engine) resolve(groups [][]Candidate, cl *changelog.Log) int64 {
	var freed int64

	for _, group := range groups {
		survivor, removals := Select(group)
		e.log.Info("duplicates found", "survivor", survivor.Path, "count", len(removals))

		for _, dup := range removals {
			freed += e.remove(dup, survivor, cl)
		}
	}
	return freed
}

// remove deletes one scheduled duplicate and records the outcome. It
// returns the bytes reclaimed, zero unless the deletion was confirmed.
func (e *Engine) remove(dup, survivor Candidate, cl *changelog.Log) int64 {
	op := string(types.OpDuplicates)

	if e.opts.DryRun {
		e.log.Info("would remove duplicate", "path", dup.Path, "survivor", survivor.Path)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Path:      dup.Path,
			Original:  survivor.Path,
		})
		return 0
	}

	// Another process may have removed the file since the walk.
	info, err := os.Lstat(dup.Path)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Error("duplicate no longer exists", "path", dup.Path)
			cl.Append(changelog.Entry{
				Operation: op,
				Executed:  false,
				Path:      dup.Path,
				Original:  survivor.Path,
				Message:   "duplicate no longer exists",
			})
			return 0
		}
		e.log.Error("cannot stat duplicate", "path", dup.Path, "error", err)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Path:      dup.Path,
			Original:  survivor.Path,
			Message:   err.Error(),
			Errno:     changelog.Errno(err),
		})
		return 0
	}

	if err := os.Remove(dup.Path); err != nil {
		e.log.Error("failed to remove duplicate", "path", dup.Path, "error", err)
		cl.Append(changelog.Entry{
			Operation: op,
			Executed:  false,
			Path:      dup.Path,
			Original:  survivor.Path,
			Message:   err.Error(),
			Errno:     changelog.Errno(err),
		})
		return 0
	}

	e.log.Info("removed duplicate", "path", dup.Path, "survivor", survivor.Path)
	cl.AddBytesFreed(info.Size())
	cl.Append(changelog.Entry{
		Operation: op,
		Executed:  true,
		Path:      dup.Path,
		Original:  survivor.Path,
		Size:      info.Size(),
	})
	return info.Size()
}
