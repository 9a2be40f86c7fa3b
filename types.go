package doctrans

import (
	"fmt"
	"slices"
)

// Kind identifies which of the two document shapes is populated.
type Kind string

const (
	// KindText is a flat run of text (docx, pdf, pptx).
	KindText Kind = "text"
	// KindTable is an ordered set of sheets (xlsx, csv).
	KindTable Kind = "table"
)

// Document is the extracted content of an uploaded file.
// Exactly one of Text or Sheets is meaningful, selected by Kind.
type Document struct {
	Kind   Kind    `json:"kind"`
	Text   string  `json:"text,omitempty"`
	Sheets []Sheet `json:"sheets,omitempty"`
	Source string  `json:"source,omitempty"` // Original file name
	Format string  `json:"format,omitempty"` // Extension it was extracted from, e.g. "xlsx"
}

// Sheet is one named grid of a table document.
// Columns is the header row; it is structure and is never translated.
type Sheet struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTextDocument returns a plain text document.
func NewTextDocument(text string) *Document {
	return &Document{Kind: KindText, Text: text}
}

// NewTableDocument returns a table document with the given sheets in order.
func NewTableDocument(sheets ...Sheet) *Document {
	return &Document{Kind: KindTable, Sheets: sheets}
}

// NewSheet builds a rectangular sheet. Short rows and a short header are
// padded with empty cells up to the widest row.
func NewSheet(name string, columns []string, rows [][]string) Sheet {
	width := len(columns)
	for _, row := range rows {
		width = max(width, len(row))
	}

	header := make([]string, width)
	copy(header, columns)

	grid := make([][]string, len(rows))
	for i, row := range rows {
		grid[i] = make([]string, width)
		copy(grid[i], row)
	}

	return Sheet{Name: name, Columns: header, Rows: grid}
}

// Width returns the number of columns in the sheet.
func (s Sheet) Width() int {
	return len(s.Columns)
}

// ColumnIndex returns the index of the named column, or -1.
func (s Sheet) ColumnIndex(name string) int {
	return slices.Index(s.Columns, name)
}

// Sheet returns the sheet with the given name.
func (d *Document) Sheet(name string) (Sheet, bool) {
	for _, s := range d.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// SheetNames returns the sheet names in document order.
func (d *Document) SheetNames() []string {
	names := make([]string, len(d.Sheets))
	for i, s := range d.Sheets {
		names[i] = s.Name
	}
	return names
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	if d.Sheets != nil {
		out.Sheets = make([]Sheet, len(d.Sheets))
		for i, s := range d.Sheets {
			rows := make([][]string, len(s.Rows))
			for j, row := range s.Rows {
				rows[j] = slices.Clone(row)
			}
			out.Sheets[i] = Sheet{Name: s.Name, Columns: slices.Clone(s.Columns), Rows: rows}
		}
	}
	return &out
}

// Units returns the number of translatable units in the document.
func (d *Document) Units() int {
	if d.Kind == KindText {
		return 1
	}
	n := 0
	for _, s := range d.Sheets {
		n += len(s.Rows) * s.Width()
	}
	return n
}

// Shape describes the structure of a document independent of its content.
type Shape struct {
	Kind   Kind
	Sheets []SheetShape
}

// SheetShape is the structure of one sheet.
type SheetShape struct {
	Name    string
	Columns []string
	Rows    int
	Cells   []int // Cell count per row
}

// Shape returns the structure of the document.
func (d *Document) Shape() Shape {
	shape := Shape{Kind: d.Kind}
	for _, s := range d.Sheets {
		cells := make([]int, len(s.Rows))
		for i, row := range s.Rows {
			cells[i] = len(row)
		}
		shape.Sheets = append(shape.Sheets, SheetShape{
			Name:    s.Name,
			Columns: slices.Clone(s.Columns),
			Rows:    len(s.Rows),
			Cells:   cells,
		})
	}
	return shape
}

// Equal reports whether two shapes are identical.
func (s Shape) Equal(other Shape) bool {
	return s.Kind == other.Kind && slices.EqualFunc(s.Sheets, other.Sheets, func(a, b SheetShape) bool {
		return a.Name == b.Name &&
			a.Rows == b.Rows &&
			slices.Equal(a.Columns, b.Columns) &&
			slices.Equal(a.Cells, b.Cells)
	})
}

// Position locates a unit inside a document.
// For text documents Row and Column are -1.
type Position struct {
	Sheet  string `json:"sheet,omitempty"`
	Row    int    `json:"row"`    // Zero-based data row, header excluded
	Column int    `json:"column"` // Zero-based column
}

func (p Position) String() string {
	if p.Row < 0 {
		return "text"
	}
	return fmt.Sprintf("%s[row %d, col %d]", p.Sheet, p.Row, p.Column)
}

// Failure records a unit whose translation failed.
// Its position in the output document holds InlineError(Err).
type Failure struct {
	Position
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Stats summarizes a translation run.
type Stats struct {
	Units      int `json:"units"`      // Units visited in selected sheets
	Translated int `json:"translated"` // Units translated successfully
	Failed     int `json:"failed"`     // Units replaced by an inline error
	Skipped    int `json:"skipped"`    // Blank units, normalized without a provider call
}

// Result is the completed output of a translation run.
type Result struct {
	Document *Document `json:"document"`
	Failures []Failure `json:"failures,omitempty"`
	Stats    Stats     `json:"stats"`
}

// HasFailures reports whether any unit failed.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}
