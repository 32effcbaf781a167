// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import "encoding/xml"

// XML namespaces used in the package parts.
const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCP = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC = "http://purl.org/dc/elements/1.1/"
)

// Part names inside the ZIP container.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partCore         = "docProps/core.xml"
)

// --- reading ---

// documentXML is the subset of word/document.xml needed to recover text.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML holds the top-level body paragraphs. Paragraphs nested in tables
// or content controls are not collected.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML is a <w:p> reduced to its visible text.
type paragraphXML struct {
	Text string
}

// skippedInParagraph lists paragraph children whose subtrees carry no body
// text: properties (tab stops would otherwise read as tabs), deleted
// revisions, and drawing containers holding their own text boxes.
var skippedInParagraph = map[string]bool{
	"pPr":              true,
	"rPr":              true,
	"del":              true,
	"drawing":          true,
	"pict":             true,
	"AlternateContent": true,
}

// UnmarshalXML walks the paragraph's runs in order, concatenating <w:t>
// text and mapping <w:tab> to a tab and <w:br>/<w:cr> to a newline.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text []byte
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch name := t.Name.Local; {
			case skippedInParagraph[name]:
				if err := d.Skip(); err != nil {
					return err
				}
			case name == "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				text = append(text, s...)
			case name == "tab":
				text = append(text, '\t')
				if err := d.Skip(); err != nil {
					return err
				}
			case name == "cr" || name == "br" && isLineBreak(t):
				text = append(text, '\n')
				if err := d.Skip(); err != nil {
					return err
				}
			case name == "br":
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				p.Text = string(text)
				return nil
			}
			depth--
		}
	}
}

// isLineBreak reports whether a <w:br> is a text-wrapping break. Page and
// column breaks carry no text.
func isLineBreak(br xml.StartElement) bool {
	for _, a := range br.Attr {
		if a.Name.Local == "type" {
			return a.Value == "textWrapping"
		}
	}
	return true
}

// --- writing ---

// wDocument is the root of word/document.xml as written.
type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	Section    wSection     `xml:"w:sectPr"`
}

type wParagraph struct {
	Props wParagraphProps `xml:"w:pPr"`
	Runs  []wRun          `xml:"w:r"`
}

type wParagraphProps struct {
	Spacing wSpacing `xml:"w:spacing"`
}

type wSpacing struct {
	Before   int    `xml:"w:before,attr,omitempty"`
	After    int    `xml:"w:after,attr,omitempty"`
	Line     int    `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type wRun struct {
	Props   *wRunProps `xml:"w:rPr,omitempty"`
	Content []wRunItem
}

type wRunProps struct {
	Bold *struct{} `xml:"w:b,omitempty"`
}

// wRunItem is one ordered child of a run: w:t, w:tab, or w:br.
type wRunItem struct {
	XMLName xml.Name
	Space   string `xml:"xml:space,attr,omitempty"`
	Text    string `xml:",chardata"`
}

type wSection struct {
	PageSize wPageSize    `xml:"w:pgSz"`
	Margins  wPageMargins `xml:"w:pgMar"`
}

type wPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}
