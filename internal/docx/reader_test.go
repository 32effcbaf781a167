package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDOCX writes a minimal DOCX whose body contains the given XML.
func createTestDOCX(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	writeZipPart(t, zw, partContentTypes, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`)
	writeZipPart(t, zw, partDocument, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>`+body+`</w:body>
</w:document>`)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

func writeZipPart(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
}

func TestReadParagraphs(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "single paragraph",
			body: `<w:p><w:r><w:t>Hello world</w:t></w:r></w:p>`,
			want: []string{"Hello world"},
		},
		{
			name: "runs are concatenated",
			body: `<w:p><w:r><w:t xml:space="preserve">THE QUICK </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>BROWN FOX</w:t></w:r></w:p>`,
			want: []string{"THE QUICK BROWN FOX"},
		},
		{
			name: "blank paragraphs are dropped",
			body: `<w:p><w:r><w:t>one</w:t></w:r></w:p>
				<w:p></w:p>
				<w:p><w:r><w:t xml:space="preserve">   </w:t></w:r></w:p>
				<w:p><w:r><w:t>two</w:t></w:r></w:p>`,
			want: []string{"one", "two"},
		},
		{
			name: "text is kept untrimmed",
			body: `<w:p><w:r><w:t xml:space="preserve">  padded  </w:t></w:r></w:p>`,
			want: []string{"  padded  "},
		},
		{
			name: "tabs and breaks",
			body: `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>`,
			want: []string{"a\tb\nc"},
		},
		{
			name: "page and column breaks carry no text",
			body: `<w:p><w:r><w:t>a</w:t><w:br w:type="page"/><w:t>b</w:t><w:br w:type="column"/><w:t>c</w:t><w:br w:type="textWrapping"/><w:t>d</w:t></w:r></w:p>`,
			want: []string{"abc\nd"},
		},
		{
			name: "break-only paragraph is blank",
			body: `<w:p><w:r><w:br w:type="page"/></w:r></w:p><w:p><w:r><w:t>next</w:t></w:r></w:p>`,
			want: []string{"next"},
		},
		{
			name: "tab stops in paragraph properties are ignored",
			body: `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>text</w:t></w:r></w:p>`,
			want: []string{"text"},
		},
		{
			name: "hyperlink runs are included",
			body: `<w:p><w:r><w:t xml:space="preserve">see </w:t></w:r><w:hyperlink><w:r><w:t>HERE</w:t></w:r></w:hyperlink></w:p>`,
			want: []string{"see HERE"},
		},
		{
			name: "deleted revisions are excluded",
			body: `<w:p><w:r><w:t>kept</w:t></w:r><w:del><w:r><w:delText>gone</w:delText></w:r></w:del></w:p>`,
			want: []string{"kept"},
		},
		{
			name: "table paragraphs are not top-level",
			body: `<w:p><w:r><w:t>before</w:t></w:r></w:p>
				<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
				<w:p><w:r><w:t>after</w:t></w:r></w:p>`,
			want: []string{"before", "after"},
		},
		{
			name: "empty body",
			body: ``,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTestDOCX(t, tt.body)
			got, err := ReadParagraphs(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadParagraphs_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.docx")
	_, err := ReadParagraphs(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "the file "+path+" does not exist")
}

func TestReadParagraphs_NotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ReadParagraphs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening ZIP archive")
}

func TestReadParagraphs_MissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	writeZipPart(t, zw, partContentTypes, `<Types/>`)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ReadParagraphs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required part: word/document.xml")
}
