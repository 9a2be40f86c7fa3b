package format

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/document"

	"github.com/ZaguanLabs/doctrans"
)

// DOCX extracts the paragraphs of a Word document, one per line. Body
// paragraphs come first, followed by the paragraphs of each table.
type DOCX struct{}

// Extension implements Extractor.
func (DOCX) Extension() string { return "docx" }

// Extract implements Extractor.
func (DOCX) Extract(data []byte) (*doctrans.Document, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &doctrans.ExtractionError{Format: "docx", Message: "open document", Cause: err}
	}

	paragraphs := doc.Paragraphs()
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		var line strings.Builder
		for _, r := range p.Runs() {
			line.WriteString(r.Text())
		}
		lines = append(lines, line.String())
	}

	return doctrans.NewTextDocument(strings.Join(lines, "\n")), nil
}
