package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/types"
)

// PrettyFormatter formats output with colors and styling using lipgloss.
// It produces a visually appealing summary suitable for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Result) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")
	w.WriteString(f.formatChanges(r))
	w.WriteString(f.formatFooter(r))
	w.WriteString("\n")
	return nil
}

// formatHeader builds the header box with run metadata.
func (f *PrettyFormatter) formatHeader(r *Result) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Run:"),
		ValueStyle.Render(r.RunID)))

	lines = append(lines, fmt.Sprintf("%s %s  %s %s",
		LabelStyle.Render("Targets:"),
		ValueStyle.Render(strings.Join(r.Targets, ", ")),
		LabelStyle.Render("Operations:"),
		ValueStyle.Render(strings.Join(r.Operations, ", "))))

	if r.DryRun {
		lines = append(lines, WarningStyle.Bold(true).Render("Dry run: no files were modified"))
	}

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatChanges lists every recorded change with a status marker.
func (f *PrettyFormatter) formatChanges(r *Result) string {
	if len(r.Changes) == 0 {
		return MutedStyle.Render("  No changes\n")
	}

	var sb strings.Builder
	for _, c := range r.Changes {
		sb.WriteString("  ")
		sb.WriteString(f.marker(c, r.DryRun))
		sb.WriteString(" ")
		sb.WriteString(MutedStyle.Render(fmt.Sprintf("%-10s", c.Operation)))
		sb.WriteString(" ")
		sb.WriteString(f.describe(c))
		sb.WriteString("\n")
	}
	return sb.String()
}

// marker returns a styled status symbol for one change.
func (f *PrettyFormatter) marker(c changelog.Entry, dryRun bool) string {
	switch {
	case c.Executed:
		return SuccessStyle.Render("✓")
	case c.Message != "":
		return ErrorStyle.Render("✗")
	case dryRun:
		return WarningStyle.Render("~")
	default:
		return MutedStyle.Render("-")
	}
}

// describe renders the paths and context of one change.
func (f *PrettyFormatter) describe(c changelog.Entry) string {
	var sb strings.Builder

	switch {
	case c.Src != "":
		sb.WriteString(ValueStyle.Render(c.Src))
		sb.WriteString(MutedStyle.Render(" -> "))
		sb.WriteString(ValueStyle.Render(c.Dest))
	default:
		sb.WriteString(ValueStyle.Render(c.Path))
	}

	if c.Original != "" {
		sb.WriteString(MutedStyle.Render(" (kept " + c.Original + ")"))
	}
	if c.Message != "" {
		sb.WriteString(ErrorStyle.Render(" " + c.Message))
	}
	return sb.String()
}

// formatFooter builds the footer box with summary totals.
func (f *PrettyFormatter) formatFooter(r *Result) string {
	parts := []string{
		fmt.Sprintf("%s %s",
			LabelStyle.Render("Changes:"),
			ValueStyle.Render(fmt.Sprintf("%d (%d executed, %d failed)",
				len(r.Changes), r.Executed(), r.Failed()))),
		fmt.Sprintf("%s %s",
			LabelStyle.Render("Freed:"),
			SuccessStyle.Render(types.FormatSize(r.BytesFreed))),
		fmt.Sprintf("%s %s",
			LabelStyle.Render("Duration:"),
			ValueStyle.Render(formatDuration(r.Duration))),
	}

	if r.ChangelogPath != "" {
		parts = append(parts, fmt.Sprintf("%s %s",
			LabelStyle.Render("Changelog:"),
			ValueStyle.Render(r.ChangelogPath)))
	}

	return FooterBox.Render(strings.Join(parts, "  "))
}

// formatDuration renders a duration compactly (ms under a second,
// seconds under a minute, minutes beyond).
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	}
}
