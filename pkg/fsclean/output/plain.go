package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/types"
)

// PlainFormatter produces unstyled text output suitable for piping.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Result) error {
	fmt.Fprintf(w, "run %s\n", r.RunID)
	fmt.Fprintf(w, "targets: %s\n", strings.Join(r.Targets, ", "))
	fmt.Fprintf(w, "operations: %s\n", strings.Join(r.Operations, ", "))
	if r.DryRun {
		fmt.Fprintln(w, "dry run: no files were modified")
	}
	fmt.Fprintln(w)

	for _, c := range r.Changes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Operation, f.status(c), f.describe(c))
	}

	fmt.Fprintf(w, "\n%d changes (%d executed, %d failed), %s freed in %s\n",
		len(r.Changes), r.Executed(), r.Failed(),
		types.FormatSize(r.BytesFreed), formatDuration(r.Duration))
	if r.ChangelogPath != "" {
		fmt.Fprintf(w, "changelog: %s\n", r.ChangelogPath)
	}
	return nil
}

func (f *PlainFormatter) status(c changelog.Entry) string {
	switch {
	case c.Executed:
		return "executed"
	case c.Message != "":
		return "failed"
	default:
		return "skipped"
	}
}

func (f *PlainFormatter) describe(c changelog.Entry) string {
	var sb strings.Builder
	if c.Src != "" {
		sb.WriteString(c.Src)
		sb.WriteString(" -> ")
		sb.WriteString(c.Dest)
	} else {
		sb.WriteString(c.Path)
	}
	if c.Original != "" {
		sb.WriteString(" (kept ")
		sb.WriteString(c.Original)
		sb.WriteString(")")
	}
	if c.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(c.Message)
	}
	return sb.String()
}
