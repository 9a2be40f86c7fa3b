package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/doctrans"
)

// Media types of serialized artifacts.
const (
	CSVMediaType  = "text/csv"
	TextMediaType = "text/plain; charset=utf-8"
)

// Output is a serialized, downloadable artifact.
type Output struct {
	Data      []byte
	FileName  string
	MediaType string
}

// Serialize renders doc as a downloadable artifact named after originalName:
//
//   - a table extracted from CSV becomes translated_<base>.csv
//   - any other table becomes translated_<base>.xlsx, sheets in order
//   - text becomes translated_<base>.txt
//
// Failures are *doctrans.SerializationError; doc is never modified.
func Serialize(doc *doctrans.Document, originalName string) (*Output, error) {
	if doc == nil {
		return nil, &doctrans.SerializationError{Message: "no document"}
	}
	base := OutputBase(originalName)

	switch doc.Kind {
	case doctrans.KindText:
		return &Output{
			Data:      []byte(doc.Text),
			FileName:  base + ".txt",
			MediaType: TextMediaType,
		}, nil

	case doctrans.KindTable:
		if doc.Format == "csv" && len(doc.Sheets) == 1 {
			data, err := writeCSV(doc.Sheets[0])
			if err != nil {
				return nil, &doctrans.SerializationError{Format: "csv", Message: "write records", Cause: err}
			}
			return &Output{Data: data, FileName: base + ".csv", MediaType: CSVMediaType}, nil
		}

		data, err := writeXLSX(doc)
		if err != nil {
			return nil, &doctrans.SerializationError{Format: "xlsx", Message: "write workbook", Cause: err}
		}
		return &Output{Data: data, FileName: base + ".xlsx", MediaType: XLSXMediaType}, nil
	}

	return nil, &doctrans.SerializationError{Message: fmt.Sprintf("invalid document kind %q", doc.Kind)}
}

// OutputBase returns "translated_" followed by the original name without
// directory or extension.
func OutputBase(originalName string) string {
	name := filepath.Base(originalName)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}
	return "translated_" + name
}
