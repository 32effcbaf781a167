// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads paragraph text from, and writes simple formatted,
// Word (Office Open XML) documents.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFound is wrapped into errors for input files that do not exist.
var ErrNotFound = errors.New("file not found")

// ReadParagraphs opens the DOCX file at path and returns the text of each
// top-level body paragraph, in document order. Paragraphs whose text is
// empty or whitespace-only are dropped; the rest are returned untrimmed.
func ReadParagraphs(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: the file %s does not exist", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive %s: %w", path, err)
	}
	defer zr.Close()

	return paragraphsFromZip(&zr.Reader)
}

// ParseParagraphs is ReadParagraphs for an in-memory or already open package.
func ParseParagraphs(r io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return paragraphsFromZip(zr)
}

func paragraphsFromZip(zr *zip.Reader) ([]string, error) {
	data, err := readPart(zr, partDocument)
	if err != nil {
		return nil, err
	}

	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", partDocument, err)
	}

	var paragraphs []string
	for _, p := range doc.Body.Paragraphs {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		paragraphs = append(paragraphs, p.Text)
	}
	return paragraphs, nil
}

// readPart returns the content of a named part of the ZIP container.
func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing required part: %s", name)
}
