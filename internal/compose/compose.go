// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose turns plain text into a formatted Word document.
// Paragraphs are separated by blank lines; short paragraphs that do not end
// with a period are rendered as bold headings.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/docx-recase/internal/docx"
	"github.com/pdiddy/docx-recase/pkg/types"
)

// SplitParagraphs splits content on blank-line separators. Windows line
// endings are normalized first. Each paragraph is trimmed and empty ones
// are dropped.
func SplitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var paragraphs []string
	for _, p := range strings.Split(content, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// IsHeading reports whether text looks like a heading: at most maxWords
// whitespace-separated words and no trailing period.
func IsHeading(text string, maxWords int) bool {
	return len(strings.Fields(text)) <= maxWords && !strings.HasSuffix(text, ".")
}

// DefaultOutputPath replaces the extension of input with ".docx".
// Leading dots of the basename (".notes", "..notes") never start an
// extension.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(strings.TrimLeft(filepath.Base(input), "."))
	if ext == "" {
		return input + ".docx"
	}
	return strings.TrimSuffix(input, ext) + ".docx"
}

// Builder converts text files to Word documents with a fixed layout.
type Builder struct {
	layout types.LayoutConfig
	log    *zap.SugaredLogger
}

// NewBuilder returns a Builder. Zero-valued layout fields fall back to
// the defaults in types.DefaultLayoutConfig.
func NewBuilder(layout types.LayoutConfig, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Builder{layout: withDefaults(layout), log: log}
}

func withDefaults(l types.LayoutConfig) types.LayoutConfig {
	d := types.DefaultLayoutConfig()
	if l.FontName == "" {
		l.FontName = d.FontName
	}
	if l.FontSize <= 0 {
		l.FontSize = d.FontSize
	}
	if l.SpaceAfter <= 0 {
		l.SpaceAfter = d.SpaceAfter
	}
	if l.HeadingSpaceBefore <= 0 {
		l.HeadingSpaceBefore = d.HeadingSpaceBefore
	}
	if l.LineSpacing <= 0 {
		l.LineSpacing = d.LineSpacing
	}
	if l.Margin <= 0 {
		l.Margin = d.Margin
	}
	if l.HeadingMaxWords <= 0 {
		l.HeadingMaxWords = d.HeadingMaxWords
	}
	return l
}

// Compose lays out paragraphs into a new document titled title.
func (b *Builder) Compose(title string, paragraphs []string) *docx.Document {
	doc := docx.NewDocument(docx.Style{
		FontName: b.layout.FontName,
		FontSize: b.layout.FontSize,
		Margin:   b.layout.Margin,
	})
	doc.SetTitle(title)

	for _, text := range paragraphs {
		f := docx.ParagraphFormat{
			SpaceAfter:  b.layout.SpaceAfter,
			LineSpacing: b.layout.LineSpacing,
		}
		if IsHeading(text, b.layout.HeadingMaxWords) {
			f.Bold = true
			f.SpaceBefore = b.layout.HeadingSpaceBefore
		}
		doc.AddParagraph(text, f)
	}
	return doc
}

// Build converts the text file at textPath into a Word document at outPath
// and returns the path written. An empty outPath uses DefaultOutputPath.
func (b *Builder) Build(textPath, outPath string) (string, error) {
	if _, err := os.Stat(textPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: the file %s does not exist", docx.ErrNotFound, textPath)
		}
		return "", fmt.Errorf("stat %s: %w", textPath, err)
	}
	if outPath == "" {
		outPath = DefaultOutputPath(textPath)
	}

	content, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", textPath, err)
	}

	paragraphs := SplitParagraphs(string(content))
	b.log.Debugw("composing document", "input", textPath, "paragraphs", len(paragraphs))

	doc := b.Compose(filepath.Base(textPath), paragraphs)
	if err := doc.Save(outPath); err != nil {
		return "", fmt.Errorf("saving Word document: %w", err)
	}

	b.log.Infof("Successfully created Word document: %s", outPath)
	return outPath, nil
}
