package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ZaguanLabs/doctrans"
)

func TestXLSX_Extract(t *testing.T) {
	data := buildXLSX(t, map[string][][]string{
		"Responses": {
			{"ID", "Comments", "Score"},
			{"1", "Muy bueno"},
			{"2", "Regular", "3"},
		},
		"Empty": nil,
	}, "Responses", "Empty")

	doc, err := XLSX{}.Extract(data)
	require.NoError(t, err)

	require.Equal(t, doctrans.KindTable, doc.Kind)
	require.Equal(t, []string{"Responses", "Empty"}, doc.SheetNames())

	responses := doc.Sheets[0]
	assert.Equal(t, []string{"ID", "Comments", "Score"}, responses.Columns)
	assert.Equal(t, [][]string{{"1", "Muy bueno", ""}, {"2", "Regular", "3"}}, responses.Rows)

	assert.Empty(t, doc.Sheets[1].Columns)
	assert.Empty(t, doc.Sheets[1].Rows)
}

func TestXLSX_ExtractCorrupt(t *testing.T) {
	_, err := XLSX{}.Extract(buildZip(t, "hello.txt", "not a workbook"))

	var eerr *doctrans.ExtractionError
	require.True(t, errors.As(err, &eerr), "expected ExtractionError, got %v", err)
	assert.Equal(t, "xlsx", eerr.Format)
}

func TestXLSX_RoundTrip(t *testing.T) {
	doc := doctrans.NewTableDocument(
		doctrans.NewSheet("Survey", []string{"Q", "Answer"}, [][]string{
			{"1", "Hello"},
			{"2", "Error: quota exceeded"},
		}),
		doctrans.NewSheet("Sheet1", []string{"Note"}, [][]string{{"=not a formula"}}),
		doctrans.NewSheet("Meta", []string{"Key", "Value"}, [][]string{{"lang", "es"}}),
	)
	doc.Format = "xlsx"

	out, err := Serialize(doc, "survey.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "translated_survey.xlsx", out.FileName)
	assert.Equal(t, XLSXMediaType, out.MediaType)

	back, err := DefaultRegistry().Extract(out.FileName, out.Data)
	require.NoError(t, err)

	assert.True(t, back.Shape().Equal(doc.Shape()), "shape changed:\n%+v\n%+v", back.Shape(), doc.Shape())
	assert.Equal(t, doc.Sheets[0].Rows, back.Sheets[0].Rows)
	assert.Equal(t, "=not a formula", back.Sheets[1].Rows[0][0])
}

func TestCSV_Extract(t *testing.T) {
	data := []byte("\xEF\xBB\xBFID,Comment\n1,\"Hola, mundo\"\n2\n3,\"multi\nline\",extra\n")

	doc, err := CSV{}.Extract(data)
	require.NoError(t, err)

	require.Len(t, doc.Sheets, 1)
	s := doc.Sheets[0]
	assert.Equal(t, CSVSheetName, s.Name)
	assert.Equal(t, []string{"ID", "Comment", ""}, s.Columns, "BOM stripped and header padded")
	assert.Equal(t, [][]string{
		{"1", "Hola, mundo", ""},
		{"2", "", ""},
		{"3", "multi\nline", "extra"},
	}, s.Rows)
}

func TestCSV_ExtractLatin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String("Nombre,Comentario\nJosé,Está bien\n")
	require.NoError(t, err)

	doc, err := CSV{}.Extract([]byte(latin1))
	require.NoError(t, err)
	assert.Equal(t, "José", doc.Sheets[0].Rows[0][0])
	assert.Equal(t, "Está bien", doc.Sheets[0].Rows[0][1])
}

func TestCSV_ExtractEmpty(t *testing.T) {
	doc, err := DefaultRegistry().Extract("empty.csv", nil)
	require.NoError(t, err)
	require.Len(t, doc.Sheets, 1)
	assert.Empty(t, doc.Sheets[0].Rows)
}

func TestCSV_RoundTrip(t *testing.T) {
	in := []byte("ID,Comment\n1,\"Hello, world\"\n2,\"He said \"\"hi\"\"\"\n")

	doc, err := DefaultRegistry().Extract("feedback.csv", in)
	require.NoError(t, err)

	out, err := Serialize(doc, doc.Source)
	require.NoError(t, err)
	assert.Equal(t, "translated_feedback.csv", out.FileName)
	assert.Equal(t, CSVMediaType, out.MediaType)
	assert.Equal(t, string(in), string(out.Data))

	back, err := DefaultRegistry().Extract(out.FileName, out.Data)
	require.NoError(t, err)
	assert.True(t, back.Shape().Equal(doc.Shape()))
}
