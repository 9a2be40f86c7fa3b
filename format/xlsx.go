package format

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/ZaguanLabs/doctrans"
)

// XLSXMediaType is the media type of Excel workbooks.
const XLSXMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// XLSX extracts every worksheet of a workbook as a sheet. The first row of
// each worksheet is its header.
type XLSX struct{}

// Extension implements Extractor.
func (XLSX) Extension() string { return "xlsx" }

// Extract implements Extractor.
func (XLSX) Extract(data []byte) (*doctrans.Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &doctrans.ExtractionError{Format: "xlsx", Message: "open workbook", Cause: err}
	}
	defer f.Close()

	var sheets []doctrans.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, &doctrans.ExtractionError{Format: "xlsx", Message: "read sheet " + name, Cause: err}
		}
		sheets = append(sheets, sheetFromRecords(name, rows))
	}

	return doctrans.NewTableDocument(sheets...), nil
}

func sheetFromRecords(name string, records [][]string) doctrans.Sheet {
	if len(records) == 0 {
		return doctrans.NewSheet(name, nil, nil)
	}
	return doctrans.NewSheet(name, records[0], records[1:])
}

func writeXLSX(doc *doctrans.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"

	for i, s := range doc.Sheets {
		if i == 0 {
			if s.Name != defaultSheet {
				if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
					return nil, err
				}
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, err
		}

		if err := writeRows(f, s); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, s doctrans.Sheet) error {
	write := func(row int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		vals := make([]any, len(values))
		for i, v := range values {
			vals[i] = v
		}
		return f.SetSheetRow(s.Name, cell, &vals)
	}

	if len(s.Columns) > 0 {
		if err := write(1, s.Columns); err != nil {
			return err
		}
	}
	for i, row := range s.Rows {
		if err := write(i+2, row); err != nil {
			return err
		}
	}
	return nil
}
