// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recase

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docx-recase/pkg/types"
)

// WriteResults writes the text of every successful result followed by a
// blank line, in order. Failed results are skipped.
func WriteResults(w io.Writer, results []Result) error {
	for _, r := range results {
		if !r.OK() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", r.Text); err != nil {
			return err
		}
	}
	return nil
}

// NewReport builds the run report for results.
func NewReport(runID, input, model string, results []Result) types.RunReport {
	s := Summarize(results)
	report := types.RunReport{
		RunID:      runID,
		Input:      input,
		Model:      model,
		Total:      s.Total,
		Succeeded:  s.Succeeded,
		Cached:     s.Cached,
		Failed:     s.Failed,
		Paragraphs: make([]types.ParagraphReport, 0, len(results)),
	}
	for _, r := range results {
		pr := types.ParagraphReport{Number: r.Number(), Status: types.StatusOK}
		switch {
		case r.Err != nil:
			pr.Status = types.StatusFailed
			pr.Error = r.Err.Error()
		case r.Cached:
			pr.Status = types.StatusCached
		}
		report.Paragraphs = append(report.Paragraphs, pr)
	}
	return report
}

// WriteReport marshals the report to a YAML file.
func WriteReport(path string, report types.RunReport) error {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
