// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ParagraphStatus is the outcome of recasing one paragraph.
type ParagraphStatus string

const (
	StatusOK     ParagraphStatus = "ok"
	StatusCached ParagraphStatus = "cached"
	StatusFailed ParagraphStatus = "failed"
)

// ParagraphReport records the outcome for one paragraph in a run report.
type ParagraphReport struct {
	// Number is the 1-based paragraph position in the source document.
	Number int             `json:"number" yaml:"number"`
	Status ParagraphStatus `json:"status" yaml:"status"`
	Error  string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport summarises one process-doc run.
type RunReport struct {
	RunID      string            `json:"run_id" yaml:"run_id"`
	Input      string            `json:"input" yaml:"input"`
	Model      string            `json:"model" yaml:"model"`
	Total      int               `json:"total" yaml:"total"`
	Succeeded  int               `json:"succeeded" yaml:"succeeded"`
	Cached     int               `json:"cached" yaml:"cached"`
	Failed     int               `json:"failed" yaml:"failed"`
	Paragraphs []ParagraphReport `json:"paragraphs" yaml:"paragraphs"`
}
