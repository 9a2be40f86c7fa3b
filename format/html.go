package format

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ZaguanLabs/doctrans"
)

// ignoredSelector matches elements whose content is never visible text.
const ignoredSelector = "head, script, style, noscript, template, svg, iframe, [data-no-translate]"

// blockTags start a new line in the flattened text.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "caption": true, "dd": true, "div": true, "dl": true,
	"dt": true, "figcaption": true, "footer": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"hr": true, "li": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// HTML extracts the visible text of a web page, one block element per line.
// Scripts, styles, the head and anything marked data-no-translate are
// dropped.
type HTML struct{}

// Extension implements Extractor.
func (HTML) Extension() string { return "html" }

// Extract implements Extractor.
func (HTML) Extract(data []byte) (*doctrans.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &doctrans.ExtractionError{Format: "html", Message: "parse document", Cause: err}
	}
	doc.Find(ignoredSelector).Remove()

	var (
		lines   []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current = append(current, strings.Fields(n.Data)...)
			return
		case html.ElementNode:
			if blockTags[n.Data] {
				flush()
				defer flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Selection.Nodes {
		walk(n)
	}
	flush()

	return doctrans.NewTextDocument(strings.Join(lines, "\n")), nil
}
