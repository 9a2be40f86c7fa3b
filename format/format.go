// Package format extracts documents from uploaded files and serializes
// translated documents back into downloadable artifacts.
//
// Supported inputs are .xlsx and .csv (tables) and .docx, .pptx, .pdf and
// .html (flat text). Each extractor is registered by extension; content is sniffed
// before extraction so a renamed file is rejected instead of half-parsed.
package format

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ZaguanLabs/doctrans"
)

// Extractor turns raw file bytes into a Document.
type Extractor interface {
	// Extension returns the lowercase extension handled, without the dot.
	Extension() string
	// Extract parses data. Parse failures are *doctrans.ExtractionError.
	Extract(data []byte) (*doctrans.Document, error)
}

// Registry maps file extensions to extractors. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// DefaultRegistry returns a registry with every built-in extractor.
func DefaultRegistry() *Registry {
	return NewRegistry(XLSX{}, CSV{}, DOCX{}, PPTX{}, PDF{}, HTML{})
}

// Register adds or replaces the extractor for e.Extension().
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[e.Extension()] = e
}

// Lookup returns the extractor for ext ("xlsx", ".XLSX" and "report.xlsx"
// are all accepted).
func (r *Registry) Lookup(ext string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.extractors[Ext(ext)]
	return e, ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Extract dispatches on the extension of name, checks the content matches
// it and extracts the document. Unknown extensions and mismatched content
// are *doctrans.UnsupportedFormatError; no extraction is attempted.
func (r *Registry) Extract(name string, data []byte) (*doctrans.Document, error) {
	ext := Ext(name)
	e, ok := r.Lookup(ext)
	if !ok {
		return nil, &doctrans.UnsupportedFormatError{Extension: "." + ext}
	}

	if err := Sniff(ext, data); err != nil {
		return nil, err
	}

	doc, err := e.Extract(data)
	if err != nil {
		return nil, err
	}
	doc.Source = filepath.Base(name)
	doc.Format = ext
	return doc, nil
}

// Ext normalizes a file name or extension to a lowercase extension without
// the leading dot.
func Ext(name string) string {
	if !strings.Contains(name, ".") {
		return strings.ToLower(name)
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
