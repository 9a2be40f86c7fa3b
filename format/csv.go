package format

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/ZaguanLabs/doctrans"
)

// CSVSheetName is the name of the single sheet a CSV file produces.
const CSVSheetName = "Sheet1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV extracts a comma-separated file as a single sheet named Sheet1.
// The first record is the header. Non UTF-8 input is transcoded using the
// detected charset.
type CSV struct{}

// Extension implements Extractor.
func (CSV) Extension() string { return "csv" }

// Extract implements Extractor.
func (CSV) Extract(data []byte) (*doctrans.Document, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, &doctrans.ExtractionError{Format: "csv", Message: "decode text", Cause: err}
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &doctrans.ExtractionError{Format: "csv", Message: "parse records", Cause: err}
	}

	return doctrans.NewTableDocument(sheetFromRecords(CSVSheetName, records)), nil
}

func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	enc, _, _ := charset.DetermineEncoding(data, "text/csv")
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
}

func writeCSV(s doctrans.Sheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(s.Columns) > 0 {
		if err := w.Write(s.Columns); err != nil {
			return nil, err
		}
	}
	// WriteAll flushes and reports the writer error.
	if err := w.WriteAll(s.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
