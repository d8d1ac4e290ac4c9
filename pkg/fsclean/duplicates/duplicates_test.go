package duplicates

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/fsclean/pkg/fsclean/cache"
	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestEngine(opts Options) *Engine {
	return New(opts, logging.Nop())
}

func TestRunRemovesDuplicates(t *testing.T) {
	dir := t.TempDir()
	survivor := writeFile(t, dir, "report.txt", "same content")
	dup1 := writeFile(t, dir, "report_final.txt", "same content")
	dup2 := writeFile(t, dir, "report (copy).txt", "same content")
	unique := writeFile(t, dir, "other.txt", "different body")

	cl := changelog.New()
	engine := newTestEngine(Options{})

	freed, err := engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)

	assert.FileExists(t, survivor)
	assert.NoFileExists(t, dup1)
	assert.NoFileExists(t, dup2)
	assert.FileExists(t, unique)

	assert.Equal(t, int64(2*len("same content")), freed)
	assert.Equal(t, freed, cl.BytesFreed())
	require.Equal(t, 2, cl.Len())
	for _, e := range cl.Entries() {
		assert.True(t, e.Executed)
		assert.Equal(t, survivor, e.Original)
		assert.Equal(t, int64(len("same content")), e.Size)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "payload")
	dup := writeFile(t, dir, "a_copy.txt", "payload")

	cl := changelog.New()
	engine := newTestEngine(Options{DryRun: true})

	freed, err := engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)

	assert.Zero(t, freed)
	assert.Zero(t, cl.BytesFreed())
	assert.FileExists(t, dup)

	require.Equal(t, 1, cl.Len())
	entry := cl.Entries()[0]
	assert.False(t, entry.Executed)
	assert.Equal(t, dup, entry.Path)
	assert.Equal(t, filepath.Join(dir, "a.txt"), entry.Original)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.txt", "body")
	writeFile(t, dir, "x_old.txt", "body")

	engine := newTestEngine(Options{})

	freed, err := engine.Run(context.Background(), dir, changelog.New())
	require.NoError(t, err)
	assert.Positive(t, freed)

	// A second pass over the cleaned tree finds nothing to do.
	cl := changelog.New()
	freed, err = engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)
	assert.Zero(t, freed)
	assert.Zero(t, cl.Len())
}

func TestRunIgnoresEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty1", "")
	writeFile(t, dir, "empty2", "")

	cl := changelog.New()
	engine := newTestEngine(Options{})

	freed, err := engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)

	// Zero-byte files all share content but are never duplicates.
	assert.Zero(t, freed)
	assert.Zero(t, cl.Len())
	assert.FileExists(t, filepath.Join(dir, "empty1"))
	assert.FileExists(t, filepath.Join(dir, "empty2"))
}

func TestRunIgnoresSameSizeDifferentContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.bin", "aaaa")
	writeFile(t, dir, "b.bin", "bbbb")

	cl := changelog.New()
	engine := newTestEngine(Options{})

	freed, err := engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)
	assert.Zero(t, freed)
	assert.Zero(t, cl.Len())
}

func TestRunRecursiveCrossDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	top := writeFile(t, dir, "doc.txt", "shared")
	writeFile(t, sub, "doc_backup.txt", "shared")

	cl := changelog.New()
	engine := newTestEngine(Options{Recursive: true})

	_, err := engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)

	assert.FileExists(t, top)
	assert.NoFileExists(t, filepath.Join(sub, "doc_backup.txt"))
}

func TestRunNonRecursiveSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	writeFile(t, dir, "doc.txt", "shared")
	nested := writeFile(t, sub, "doc_backup.txt", "shared")

	cl := changelog.New()
	engine := newTestEngine(Options{})

	freed, err := engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)
	assert.Zero(t, freed)
	assert.FileExists(t, nested)
}

func TestRunMissingRoot(t *testing.T) {
	engine := newTestEngine(Options{})
	_, err := engine.Run(context.Background(), filepath.Join(t.TempDir(), "gone"), changelog.New())
	assert.Error(t, err)
}

func TestRunWithCacheIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "cached content")
	writeFile(t, dir, "two.txt", "cached content")

	c, err := cache.Open(filepath.Join(t.TempDir(), "digests"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	engine := newTestEngine(Options{DryRun: true, Cache: c})

	first := changelog.New()
	_, err = engine.Run(context.Background(), dir, first)
	require.NoError(t, err)

	// The second run hits the cache; the ledger comes out identical.
	second := changelog.New()
	_, err = engine.Run(context.Background(), dir, second)
	require.NoError(t, err)

	require.Equal(t, first.Len(), second.Len())
	for i, e := range first.Entries() {
		assert.Equal(t, e.Path, second.Entries()[i].Path)
		assert.Equal(t, e.Original, second.Entries()[i].Original)
	}
}

func TestResolveVanishedDuplicate(t *testing.T) {
	dir := t.TempDir()
	survivor := writeFile(t, dir, "a.txt", "body")
	gone := filepath.Join(dir, "gone_copy.txt")

	cl := changelog.New()
	engine := newTestEngine(Options{})

	// The duplicate was removed between grouping and resolution.
	freed := engine.resolve([][]Candidate{{
		{Path: survivor, Size: 4},
		{Path: gone, Size: 4},
	}}, cl)

	assert.Zero(t, freed)
	assert.Zero(t, cl.BytesFreed())
	require.Equal(t, 1, cl.Len())
	entry := cl.Entries()[0]
	assert.False(t, entry.Executed)
	assert.Equal(t, gone, entry.Path)
	assert.Equal(t, survivor, entry.Original)
	assert.Equal(t, "duplicate no longer exists", entry.Message)
	assert.FileExists(t, survivor)
}

func TestResolveRemovalFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions cannot block removal when running as root")
	}

	dir := t.TempDir()
	survivor := writeFile(t, dir, "a.txt", "body")

	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	dup := writeFile(t, locked, "a_backup.txt", "body")
	require.NoError(t, os.Chmod(locked, 0o555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	cl := changelog.New()
	engine := newTestEngine(Options{})

	freed := engine.resolve([][]Candidate{{
		{Path: survivor, Size: 4},
		{Path: dup, Size: 4},
	}}, cl)

	// The failed removal frees nothing and lands in the ledger with the
	// OS error attached; the run is not aborted.
	assert.Zero(t, freed)
	assert.Zero(t, cl.BytesFreed())
	require.Equal(t, 1, cl.Len())
	entry := cl.Entries()[0]
	assert.False(t, entry.Executed)
	assert.Equal(t, dup, entry.Path)
	assert.Equal(t, survivor, entry.Original)
	assert.NotEmpty(t, entry.Message)
	assert.Equal(t, int(syscall.EACCES), entry.Errno)
	assert.FileExists(t, dup)
}

func TestRunSurvivorMtimeTieBreak(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "aaaa.txt", "tie")
	recent := writeFile(t, dir, "bbbb.txt", "tie")

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	cl := changelog.New()
	engine := newTestEngine(Options{})

	_, err := engine.Run(context.Background(), dir, cl)
	require.NoError(t, err)

	assert.FileExists(t, recent)
	assert.NoFileExists(t, old)
}
