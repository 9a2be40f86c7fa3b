package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ZaguanLabs/doctrans"
)

// PDF extracts the plain text of every page, each followed by "\n".
type PDF struct{}

// Extension implements Extractor.
func (PDF) Extension() string { return "pdf" }

// Extract implements Extractor.
func (PDF) Extract(data []byte) (doc *doctrans.Document, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, &doctrans.ExtractionError{Format: "pdf", Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &doctrans.ExtractionError{Format: "pdf", Message: "open document", Cause: err}
	}

	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &doctrans.ExtractionError{Format: "pdf", Message: fmt.Sprintf("read page %d", i), Cause: err}
		}
		text.WriteString(content)
		text.WriteByte('\n')
	}

	return doctrans.NewTextDocument(text.String()), nil
}
