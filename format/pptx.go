package format

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/dml"

	"github.com/ZaguanLabs/doctrans"
)

// PPTX extracts the text of every top-level shape on every slide, in the
// presentation's slide order. Each shape contributes its paragraphs joined
// by "\n" followed by a trailing "\n".
type PPTX struct{}

// Extension implements Extractor.
func (PPTX) Extension() string { return "pptx" }

// Extract implements Extractor.
func (PPTX) Extract(data []byte) (*doctrans.Document, error) {
	pres, err := presentation.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &doctrans.ExtractionError{Format: "pptx", Message: "open presentation", Cause: err}
	}

	var text strings.Builder
	for _, slide := range pres.Slides() {
		sld := slide.X()
		if sld == nil || sld.CSld == nil || sld.CSld.SpTree == nil {
			continue
		}
		for _, choice := range sld.CSld.SpTree.Choice {
			for _, sp := range choice.Sp {
				var paragraphs []string
				if sp.TxBody != nil {
					for _, p := range sp.TxBody.P {
						paragraphs = append(paragraphs, paragraphText(p))
					}
				}
				text.WriteString(strings.Join(paragraphs, "\n"))
				text.WriteByte('\n')
			}
		}
	}

	return doctrans.NewTextDocument(text.String()), nil
}

// paragraphText joins the runs of a drawing paragraph. Line breaks become
// "\n"; fields contribute their cached text.
func paragraphText(p *dml.CT_TextParagraph) string {
	var b strings.Builder
	for _, run := range p.EG_TextRun {
		switch {
		case run.R != nil:
			b.WriteString(run.R.T)
		case run.Br != nil:
			b.WriteByte('\n')
		case run.Fld != nil && run.Fld.T != nil:
			b.WriteString(*run.Fld.T)
		}
	}
	return b.String()
}
