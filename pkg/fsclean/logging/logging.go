// Package logging builds configured charmbracelet/log loggers for fsclean.
//
// There is deliberately no package-level logger: components take a
// *log.Logger in their constructors so tests can capture output and run
// components in isolation.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing human-readable diagnostics to w at the
// given level ("debug", "info", "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           lvl,
	})
	return logger, nil
}

// Component derives a sub-logger labeled with a component name.
func Component(logger *log.Logger, name string) *log.Logger {
	return logger.WithPrefix(name)
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() *log.Logger {
	logger := log.New(io.Discard)
	logger.SetLevel(log.FatalLevel)
	return logger
}
