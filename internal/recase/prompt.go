// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recase

import (
	"bytes"
	"text/template"
)

// recasePromptTmpl is sent to the model for each paragraph. The model must
// change capitalization only and answer with the rewritten text alone.
var recasePromptTmpl = template.Must(template.New("recase").Parse(`
Please reformat the following text according to these rules:

1. Convert to standard sentence case (First letter of sentences capitalized)
2. Properly capitalize proper nouns, names, and titles
3. Maintain appropriate capitalization for acronyms and initialisms
4. Format dialogue and quotations correctly

Important: Preserve all original formatting, spacing, and paragraph structure.
Only modify capitalization - do not change any words or punctuation.
Do not provide any additional commentary.

Text to process: {{.Text}}

Formatted text:
`))

// renderPrompt executes the recase prompt template for one paragraph.
func renderPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := recasePromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
