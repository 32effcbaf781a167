package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStyle() Style {
	return Style{FontName: "Calibri", FontSize: 11, Margin: 1}
}

// partsOf renders doc and returns its parts by name.
func partsOf(t *testing.T, doc *Document) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = string(data)
	}
	return parts
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := NewDocument(testStyle())
	doc.AddParagraph("Chapter One", ParagraphFormat{Bold: true, SpaceBefore: 12, SpaceAfter: 10, LineSpacing: 1.15})
	doc.AddParagraph("It was a dark night.", ParagraphFormat{SpaceAfter: 10, LineSpacing: 1.15})
	doc.AddParagraph("line one\nline two\tafter tab", ParagraphFormat{})
	assert.Equal(t, 3, doc.Len())

	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, doc.Save(path))

	got, err := ReadParagraphs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Chapter One",
		"It was a dark night.",
		"line one\nline two\tafter tab",
	}, got)
}

func TestDocument_ContainsAllParts(t *testing.T) {
	parts := partsOf(t, NewDocument(testStyle()))
	for _, name := range []string{partContentTypes, partRootRels, partDocument, partDocumentRels, partStyles, partCore} {
		assert.Contains(t, parts, name)
	}
}

func TestDocument_ParagraphFormatting(t *testing.T) {
	doc := NewDocument(testStyle())
	doc.AddParagraph("Heading", ParagraphFormat{Bold: true, SpaceBefore: 12, SpaceAfter: 10, LineSpacing: 1.15})
	doc.AddParagraph("Body text.", ParagraphFormat{SpaceAfter: 10, LineSpacing: 1.15})

	body := partsOf(t, doc)[partDocument]

	assert.Contains(t, body, `<w:spacing w:before="240" w:after="200" w:line="276" w:lineRule="auto">`)
	assert.Contains(t, body, `<w:spacing w:after="200" w:line="276" w:lineRule="auto">`)
	assert.Contains(t, body, `<w:rPr><w:b></w:b></w:rPr>`)
	assert.Equal(t, 1, bytes.Count([]byte(body), []byte("<w:b>")), "only the heading run is bold")
	assert.Contains(t, body, `<w:t xml:space="preserve">Body text.</w:t>`)
}

func TestDocument_PageSetup(t *testing.T) {
	body := partsOf(t, NewDocument(testStyle()))[partDocument]
	assert.Contains(t, body, `<w:pgSz w:w="12240" w:h="15840">`)
	assert.Contains(t, body, `w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"`)
}

func TestDocument_NormalStyle(t *testing.T) {
	styles := partsOf(t, NewDocument(Style{FontName: "Calibri", FontSize: 11, Margin: 1}))[partStyles]
	assert.Contains(t, styles, `w:styleId="Normal"`)
	assert.Contains(t, styles, `w:ascii="Calibri"`)
	assert.Contains(t, styles, `<w:sz w:val="22"/>`)
}

func TestDocument_TitleIsEscaped(t *testing.T) {
	doc := NewDocument(testStyle())
	doc.SetTitle("notes & <drafts>.txt")
	core := partsOf(t, doc)[partCore]
	assert.Contains(t, core, `<dc:title>notes &amp; &lt;drafts&gt;.txt</dc:title>`)
}

func TestDocument_TextIsEscaped(t *testing.T) {
	doc := NewDocument(testStyle())
	doc.AddParagraph(`He said "A < B & C".`, ParagraphFormat{})

	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ParseParagraphs(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, []string{`He said "A < B & C".`}, got)
}

func TestRunItems(t *testing.T) {
	items := runItems("a\r\nb\tc")
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.XMLName.Local
	}
	assert.Equal(t, []string{"w:t", "w:br", "w:t", "w:tab", "w:t"}, names)
	assert.Equal(t, "a", items[0].Text)
	assert.Equal(t, "c", items[4].Text)
}
