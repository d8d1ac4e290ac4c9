package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/fsclean/pkg/fsclean/cache"
	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/config"
	"github.com/jamesainslie/fsclean/pkg/fsclean/duplicates"
	"github.com/jamesainslie/fsclean/pkg/fsclean/empties"
	"github.com/jamesainslie/fsclean/pkg/fsclean/logging"
	"github.com/jamesainslie/fsclean/pkg/fsclean/naming"
	"github.com/jamesainslie/fsclean/pkg/fsclean/output"
	"github.com/jamesainslie/fsclean/pkg/fsclean/types"
)

// errChangelogWrite marks the one fatal per-run condition: the changelog
// report could not be persisted. main maps it to a distinct exit status.
var errChangelogWrite = errors.New("failed to persist changelog")

// runConfig carries the validated invocation into the operation loop.
type runConfig struct {
	cfg     *config.Config
	ops     []types.Operation
	targets []string
	style   naming.Style
}

// runClean is the main command handler: validate the invocation, run the
// requested operations over the valid targets, print the summary, and
// persist the changelog.
func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	rc := runConfig{cfg: cfg}
	if cfg.DryRun {
		logger.Info("dry run enabled")
	}
	if cfg.Recursive {
		logger.Info("recursive search enabled")
	}

	// Unknown operation names are configuration errors: warn and skip.
	var opErrs []error
	rc.ops, opErrs = types.ParseOperations(cfg.Operations)
	for _, e := range opErrs {
		logger.Warn("ignoring operation", "error", e)
	}
	if len(rc.ops) == 0 {
		return errors.New("no valid operations requested")
	}

	rc.style, err = naming.ParseStyle(cfg.Style)
	if err != nil {
		logger.Warn("ignoring style", "error", err)
		rc.style = naming.StyleNone
	}

	if len([]rune(cfg.SpaceChar)) > 1 {
		return errors.New("space character argument cannot be more than one character")
	}

	// Invalid targets are skipped; the run continues with the rest.
	for _, arg := range args {
		target, err := resolveTarget(arg)
		if err != nil {
			logger.Error("invalid target", "target", arg, "error", err)
			continue
		}
		rc.targets = append(rc.targets, target)
	}
	if len(rc.targets) == 0 {
		return errors.New("no valid target directories")
	}

	cl := changelog.New()
	logger.Info("starting run", "run_id", cl.RunID())

	runOperations(cmd, cl, logger, rc)

	duration := time.Since(cl.Start())
	logger.Info("finished", "changes", cl.Len(), "duration", duration)

	if err := printSummary(cl, rc, duration); err != nil {
		return err
	}

	return saveChangelog(cl, logger, cfg.Changelog)
}

// resolveTarget expands and absolutizes a target argument and verifies it
// is a directory.
func resolveTarget(arg string) (string, error) {
	expanded, err := config.ExpandPath(arg)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

// runOperations executes the requested operations in the fixed order
// (duplicates, empties, naming), each across all targets before the next
// begins. Per-target failures are logged; the loop never aborts.
func runOperations(cmd *cobra.Command, cl *changelog.Log, logger *charmlog.Logger, rc runConfig) {
	requested := make(map[types.Operation]bool, len(rc.ops))
	for _, op := range rc.ops {
		requested[op] = true
	}

	for _, op := range types.OperationOrder {
		if !requested[op] {
			continue
		}

		switch op {
		case types.OpDuplicates:
			logger.Info("operation: duplicate search")
			runDuplicates(cmd, cl, logger, rc)
		case types.OpEmpties:
			logger.Info("operation: empty files and directories")
			remover := empties.New(empties.Options{
				Recursive: rc.cfg.Recursive,
				DryRun:    rc.cfg.DryRun,
			}, logging.Component(logger, "empties"))
			for _, target := range rc.targets {
				if err := remover.Run(target, cl); err != nil {
					logger.Error("empties pass failed", "target", target, "error", err)
				}
			}
		case types.OpNaming:
			logger.Info("operation: filename consistency")
			renamer := naming.New(naming.Options{
				Recursive: rc.cfg.Recursive,
				DryRun:    rc.cfg.DryRun,
				Style:     rc.style,
				SpaceChar: rc.cfg.SpaceChar,
			}, logging.Component(logger, "naming"))
			for _, target := range rc.targets {
				if err := renamer.Run(target, cl); err != nil {
					logger.Error("naming pass failed", "target", target, "error", err)
				}
			}
		}
	}
}

// runDuplicates runs the duplicate engine over all targets, with the
// digest cache attached when enabled. Cache trouble degrades to plain
// hashing.
func runDuplicates(cmd *cobra.Command, cl *changelog.Log, logger *charmlog.Logger, rc runConfig) {
	var digestCache *cache.Cache
	if rc.cfg.Cache.Enabled && !rc.cfg.NoCache {
		cachePath := rc.cfg.Cache.Path
		if cachePath == "" {
			cachePath = config.DefaultCacheDir()
		}

		c, err := cache.Open(cachePath)
		if err != nil {
			logger.Warn("digest cache unavailable", "path", cachePath, "error", err)
		} else {
			digestCache = c
			defer func() {
				if err := c.Close(); err != nil {
					logger.Warn("failed to close digest cache", "error", err)
				}
			}()
		}
	}

	engine := duplicates.New(duplicates.Options{
		Recursive: rc.cfg.Recursive,
		DryRun:    rc.cfg.DryRun,
		Workers:   rc.cfg.Workers,
		Cache:     digestCache,
	}, logging.Component(logger, "duplicates"))

	for _, target := range rc.targets {
		freed, err := engine.Run(cmd.Context(), target, cl)
		if err != nil {
			logger.Error("duplicate search failed", "target", target, "error", err)
			continue
		}
		logger.Info("target done", "target", target, "freed", types.FormatSize(freed))
	}
}

// printSummary renders the run summary to stdout with the configured
// formatter.
func printSummary(cl *changelog.Log, rc runConfig, duration time.Duration) error {
	formatter, err := output.Get(rc.cfg.Output)
	if err != nil {
		return err
	}

	opNames := make([]string, 0, len(rc.ops))
	for _, op := range types.OperationOrder {
		for _, requested := range rc.ops {
			if op == requested {
				opNames = append(opNames, string(op))
			}
		}
	}

	result := output.Result{
		RunID:         cl.RunID(),
		Targets:       rc.targets,
		Operations:    opNames,
		DryRun:        rc.cfg.DryRun,
		Changes:       cl.Entries(),
		BytesFreed:    cl.BytesFreed(),
		Duration:      duration,
		ChangelogPath: rc.cfg.Changelog,
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, &result); err != nil {
		return err
	}
	fmt.Print(buf.String())
	return nil
}

// saveChangelog persists the report. A missing path is a configuration
// note, not an error; a failed write is fatal for the whole run.
func saveChangelog(cl *changelog.Log, logger *charmlog.Logger, path string) error {
	if path == "" {
		logger.Info("no changelog path configured; report not persisted")
		return nil
	}

	if err := cl.Save(path); err != nil {
		logger.Error("could not write changelog", "path", path, "error", err)
		return fmt.Errorf("%w: %v", errChangelogWrite, err)
	}

	logger.Info("changelog written", "path", path)
	return nil
}
