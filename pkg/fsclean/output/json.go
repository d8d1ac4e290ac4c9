package output

import (
	"bytes"
	"encoding/json"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
)

// jsonOutput represents the full JSON summary structure.
type jsonOutput struct {
	RunID      string            `json:"run_id"`
	Targets    []string          `json:"targets"`
	Operations []string          `json:"operations"`
	DryRun     bool              `json:"dry_run"`
	Changelog  string            `json:"changelog,omitempty"`
	Changes    []changelog.Entry `json:"changes"`
	Stats      jsonStats         `json:"stats"`
}

// jsonStats represents run statistics in JSON output.
type jsonStats struct {
	Changes    int    `json:"changes"`
	Executed   int    `json:"executed"`
	Failed     int    `json:"failed"`
	BytesFreed int64  `json:"bytes_freed"`
	Duration   string `json:"duration"`
}

// JSONFormatter formats the summary as a single indented JSON object.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Result) error {
	changes := r.Changes
	if changes == nil {
		changes = []changelog.Entry{}
	}

	out := jsonOutput{
		RunID:      r.RunID,
		Targets:    r.Targets,
		Operations: r.Operations,
		DryRun:     r.DryRun,
		Changelog:  r.ChangelogPath,
		Changes:    changes,
		Stats: jsonStats{
			Changes:    len(r.Changes),
			Executed:   r.Executed(),
			Failed:     r.Failed(),
			BytesFreed: r.BytesFreed,
			Duration:   r.Duration.String(),
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
