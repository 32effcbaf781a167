// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"
	"time"
)

// Unit conversions used by WordprocessingML.
const (
	twipsPerPoint = 20
	twipsPerInch  = 1440
	lineUnit      = 240 // w:line value for single spacing with lineRule="auto"

	letterWidth  = 12240
	letterHeight = 15840
)

// Style is the document-wide formatting applied through the Normal style and
// the section properties.
type Style struct {
	FontName string
	FontSize float64 // points
	Margin   float64 // inches, all four edges
}

// ParagraphFormat controls the layout of one paragraph.
type ParagraphFormat struct {
	Bold        bool
	SpaceBefore float64 // points
	SpaceAfter  float64 // points
	LineSpacing float64 // multiple of single spacing; 0 leaves it unset
}

// Document is a Word document under construction.
type Document struct {
	style      Style
	title      string
	creator    string
	created    time.Time
	paragraphs []wParagraph
}

// NewDocument returns an empty document using style.
func NewDocument(style Style) *Document {
	return &Document{
		style:   style,
		creator: "docx-recase",
		created: time.Now().UTC(),
	}
}

// SetTitle sets the dc:title core property.
func (d *Document) SetTitle(title string) { d.title = title }

// Len returns the number of paragraphs added so far.
func (d *Document) Len() int { return len(d.paragraphs) }

// AddParagraph appends a paragraph containing text as a single run.
// Newlines in text become line breaks and tabs become tab characters.
func (d *Document) AddParagraph(text string, f ParagraphFormat) {
	run := wRun{Content: runItems(text)}
	if f.Bold {
		run.Props = &wRunProps{Bold: &struct{}{}}
	}

	spacing := wSpacing{
		Before: toTwips(f.SpaceBefore),
		After:  toTwips(f.SpaceAfter),
	}
	if f.LineSpacing > 0 {
		spacing.Line = int(math.Round(f.LineSpacing * lineUnit))
		spacing.LineRule = "auto"
	}

	d.paragraphs = append(d.paragraphs, wParagraph{
		Props: wParagraphProps{Spacing: spacing},
		Runs:  []wRun{run},
	})
}

// runItems splits text into ordered w:t, w:br, and w:tab children.
func runItems(text string) []wRunItem {
	var items []wRunItem
	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		items = append(items, wRunItem{XMLName: xml.Name{Local: "w:t"}, Space: "preserve", Text: buf.String()})
		buf.Reset()
	}
	for _, r := range text {
		switch r {
		case '\n':
			flush()
			items = append(items, wRunItem{XMLName: xml.Name{Local: "w:br"}})
		case '\t':
			flush()
			items = append(items, wRunItem{XMLName: xml.Name{Local: "w:tab"}})
		case '\r':
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return items
}

func toTwips(points float64) int {
	return int(math.Round(points * twipsPerPoint))
}

// Save writes the document package to path, replacing any existing file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteTo writes the document package to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	body, err := d.documentXML()
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		tmpl *template.Template
	}{
		{partContentTypes, contentTypesTmpl},
		{partRootRels, rootRelsTmpl},
		{partDocumentRels, documentRelsTmpl},
		{partStyles, stylesTmpl},
		{partCore, coreTmpl},
	}
	for _, p := range parts {
		pw, err := zw.Create(p.name)
		if err != nil {
			return 0, fmt.Errorf("creating part %s: %w", p.name, err)
		}
		if err := p.tmpl.Execute(pw, d.templateData()); err != nil {
			return 0, fmt.Errorf("rendering part %s: %w", p.name, err)
		}
	}

	pw, err := zw.Create(partDocument)
	if err != nil {
		return 0, fmt.Errorf("creating part %s: %w", partDocument, err)
	}
	if _, err := pw.Write(body); err != nil {
		return 0, fmt.Errorf("writing part %s: %w", partDocument, err)
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.WriteTo(w)
}

func (d *Document) documentXML() ([]byte, error) {
	margin := int(math.Round(d.style.Margin * twipsPerInch))
	doc := wDocument{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body: wBody{
			Paragraphs: d.paragraphs,
			Section: wSection{
				PageSize: wPageSize{W: letterWidth, H: letterHeight},
				Margins: wPageMargins{
					Top: margin, Right: margin, Bottom: margin, Left: margin,
					Header: 720, Footer: 720,
				},
			},
		},
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", partDocument, err)
	}
	return append([]byte(xml.Header), out...), nil
}

type templateData struct {
	FontName  string
	HalfPts   int
	Title     string
	Creator   string
	Created   string
	NSW, NSCP string
	NSDC      string
}

func (d *Document) templateData() templateData {
	return templateData{
		FontName: d.style.FontName,
		HalfPts:  int(math.Round(d.style.FontSize * 2)),
		Title:    d.title,
		Creator:  d.creator,
		Created:  d.created.Format(time.RFC3339),
		NSW:      nsW,
		NSCP:     nsCP,
		NSDC:     nsDC,
	}
}

var tmplFuncs = template.FuncMap{
	"esc": func(s string) string {
		var b strings.Builder
		xml.EscapeText(&b, []byte(s))
		return b.String()
	},
}

func mustPart(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(tmplFuncs).Parse(xml.Header + text))
}

var contentTypesTmpl = mustPart("content-types", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`)

var rootRelsTmpl = mustPart("root-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`)

var documentRelsTmpl = mustPart("document-rels", `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`)

var stylesTmpl = mustPart("styles", `<w:styles xmlns:w="{{.NSW}}">
<w:docDefaults><w:rPrDefault><w:rPr>
<w:rFonts w:ascii="{{esc .FontName}}" w:hAnsi="{{esc .FontName}}" w:eastAsia="{{esc .FontName}}" w:cs="{{esc .FontName}}"/>
<w:sz w:val="{{.HalfPts}}"/><w:szCs w:val="{{.HalfPts}}"/>
</w:rPr></w:rPrDefault><w:pPrDefault/></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal">
<w:name w:val="Normal"/><w:qFormat/>
<w:rPr><w:rFonts w:ascii="{{esc .FontName}}" w:hAnsi="{{esc .FontName}}" w:eastAsia="{{esc .FontName}}" w:cs="{{esc .FontName}}"/><w:sz w:val="{{.HalfPts}}"/><w:szCs w:val="{{.HalfPts}}"/></w:rPr>
</w:style>
</w:styles>`)

var coreTmpl = mustPart("core", `<cp:coreProperties xmlns:cp="{{.NSCP}}" xmlns:dc="{{.NSDC}}" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
<dc:title>{{esc .Title}}</dc:title>
<dc:creator>{{esc .Creator}}</dc:creator>
<dcterms:created xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:created>
</cp:coreProperties>`)
