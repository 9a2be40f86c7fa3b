package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildZip packs the given parts into an in-memory zip archive. The parts
// are written in argument order (name, content, name, content, ...).
func buildZip(t *testing.T, parts ...string) []byte {
	t.Helper()
	require.Zero(t, len(parts)%2, "parts must be name/content pairs")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i < len(parts); i += 2 {
		w, err := zw.Create(parts[i])
		require.NoError(t, err)
		_, err = w.Write([]byte(parts[i+1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const (
	relsType    = "application/vnd.openxmlformats-package.relationships+xml"
	officeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	slideRel    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	nsRels      = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes     = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelations = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

func contentTypes(overrides ...string) string {
	s := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="` + nsTypes + `">` +
		`<Default Extension="rels" ContentType="` + relsType + `"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>`
	for i := 0; i < len(overrides); i += 2 {
		s += `<Override PartName="` + overrides[i] + `" ContentType="` + overrides[i+1] + `"/>`
	}
	return s + `</Types>`
}

// relationships renders a .rels part from id, type, target triples.
func relationships(rels ...string) string {
	s := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="` + nsRels + `">`
	for i := 0; i < len(rels); i += 3 {
		s += `<Relationship Id="` + rels[i] + `" Type="` + rels[i+1] + `" Target="` + rels[i+2] + `"/>`
	}
	return s + `</Relationships>`
}

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body +
		`</w:body></w:document>`
	return buildZip(t,
		"[Content_Types].xml", contentTypes(
			"/word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml",
		),
		"_rels/.rels", relationships("rId1", officeDoc, "word/document.xml"),
		"word/document.xml", doc,
	)
}

// buildPPTX packs slides into a presentation. Slide i is stored as
// ppt/slides/slide<i+1>.xml; order lists the slide indexes in the order the
// presentation shows them.
func buildPPTX(t *testing.T, slides []string, order ...int) []byte {
	t.Helper()

	overrides := []string{"/ppt/presentation.xml", "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"}
	var rels []string
	ids := ""
	for n, i := range order {
		rid := fmt.Sprintf("rId%d", n+1)
		target := fmt.Sprintf("slides/slide%d.xml", i+1)
		rels = append(rels, rid, slideRel, target)
		ids += fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, 256+n, rid)
	}
	for i := range slides {
		overrides = append(overrides, fmt.Sprintf("/ppt/slides/slide%d.xml", i+1), "application/vnd.openxmlformats-officedocument.presentationml.slide+xml")
	}

	pres := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="` + nsRelations + `" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:sldIdLst>` + ids + `</p:sldIdLst>` +
		`<p:sldSz cx="9144000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`

	parts := []string{
		"[Content_Types].xml", contentTypes(overrides...),
		"_rels/.rels", relationships("rId1", officeDoc, "ppt/presentation.xml"),
		"ppt/presentation.xml", pres,
		"ppt/_rels/presentation.xml.rels", relationships(rels...),
	}
	for i, s := range slides {
		parts = append(parts, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), s)
	}
	return buildZip(t, parts...)
}

func buildSlide(shapes string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		shapes + `</p:spTree></p:cSld></p:sld>`
}

func textShape(paragraphs ...string) string {
	s := `<p:sp><p:nvSpPr><p:cNvPr id="2" name="Text"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/>`
	for _, p := range paragraphs {
		s += `<a:p><a:r><a:t>` + p + `</a:t></a:r></a:p>`
	}
	return s + `</p:txBody></p:sp>`
}

func buildXLSX(t *testing.T, sheets map[string][][]string, order ...string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, v))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	for _, text := range pages {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 14)
		pdf.Cell(40, 10, text)
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}
