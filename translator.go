package doctrans

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ZaguanLabs/doctrans/normalize"
)

// DefaultTargetLang is the language every unit is translated into unless
// WithTargetLang says otherwise.
const DefaultTargetLang = "en"

// Translator walks a Document and translates and normalizes every unit.
// A Translator is safe for concurrent use; each Run is sequential.
type Translator struct {
	provider       Provider
	targetLang     string
	pipeline       *normalize.Pipeline
	requiredColumn string
	log            *log.Logger
}

// Provider is the interface for translation backends.
type Provider interface {
	// Translate returns the translation of a single unit.
	Translate(ctx context.Context, req TranslateRequest) (string, error)
	// Capabilities describes what the backend supports.
	Capabilities() Capabilities
}

// TranslateRequest contains the parameters for a single-unit translation.
type TranslateRequest struct {
	Text       string
	SourceLang Language // Auto when the provider should detect it
	TargetLang string
	Position   Position // Where the unit sits in its document
}

// Capabilities describes a provider.
type Capabilities struct {
	Name       string
	AutoDetect bool // Whether Auto is accepted as a source language
}

// TranslateFunc is a bare translation function.
type TranslateFunc func(ctx context.Context, req TranslateRequest) (string, error)

type funcProvider struct {
	caps Capabilities
	fn   TranslateFunc
}

// NewFuncProvider adapts fn to the Provider interface.
func NewFuncProvider(name string, autoDetect bool, fn TranslateFunc) Provider {
	return &funcProvider{caps: Capabilities{Name: name, AutoDetect: autoDetect}, fn: fn}
}

func (p *funcProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return p.fn(ctx, req)
}

func (p *funcProvider) Capabilities() Capabilities {
	return p.caps
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithTargetLang sets the target language code.
func WithTargetLang(lang string) TranslatorOption {
	return func(t *Translator) {
		t.targetLang = lang
	}
}

// WithPipeline sets the normalization pipeline applied to every translation.
func WithPipeline(p *normalize.Pipeline) TranslatorOption {
	return func(t *Translator) {
		t.pipeline = p
	}
}

// WithRequiredColumn restricts table translation to the named column.
// Runs fail with a ConfigurationError when a selected sheet lacks it.
func WithRequiredColumn(name string) TranslatorOption {
	return func(t *Translator) {
		t.requiredColumn = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) TranslatorOption {
	return func(t *Translator) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTranslator creates a new Translator backed by provider.
func NewTranslator(provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider:   provider,
		targetLang: DefaultTargetLang,
		pipeline:   normalize.New(),
		log:        log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TargetLang returns the target language.
func (t *Translator) TargetLang() string {
	return t.targetLang
}

// Capabilities reports what the underlying provider supports. A translator
// without a provider reports none.
func (t *Translator) Capabilities() Capabilities {
	if t.provider == nil {
		return Capabilities{}
	}
	return t.provider.Capabilities()
}

// RequiredColumn returns the column a table run is restricted to, if any.
func (t *Translator) RequiredColumn() string {
	return t.requiredColumn
}

// RunOption configures a single Run.
type RunOption func(*runConfig)

type runConfig struct {
	sheets []string
}

// OnlySheets limits a table run to the named sheets. Other sheets are copied
// to the output untouched.
func OnlySheets(names ...string) RunOption {
	return func(c *runConfig) {
		c.sheets = append(c.sheets, names...)
	}
}

// Run translates doc from lang into the target language.
//
// Configuration problems are reported as *ConfigurationError before any
// provider call. Per-unit failures never abort the run: the unit is replaced
// by InlineError(err) and listed in Result.Failures. The input document is
// not modified.
func (t *Translator) Run(ctx context.Context, doc *Document, lang Language, opts ...RunOption) (*Result, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := t.validate(doc, lang, cfg); err != nil {
		return nil, err
	}

	r := &run{t: t, ctx: ctx, lang: lang}
	out := doc.Clone()

	switch doc.Kind {
	case KindText:
		r.stats.Units = 1
		out.Text = r.unit(doc.Text, Position{Row: -1, Column: -1})
	case KindTable:
		for i := range out.Sheets {
			if len(cfg.sheets) > 0 && !slices.Contains(cfg.sheets, out.Sheets[i].Name) {
				t.log.Debug("sheet skipped", "sheet", out.Sheets[i].Name)
				continue
			}
			r.sheet(&out.Sheets[i])
		}
	}

	t.log.Info("translation finished",
		"provider", t.provider.Capabilities().Name,
		"source", lang,
		"units", r.stats.Units,
		"translated", r.stats.Translated,
		"failed", r.stats.Failed,
		"skipped", r.stats.Skipped,
	)

	return &Result{Document: out, Failures: r.failures, Stats: r.stats}, nil
}

// TranslateText is a convenience wrapper for translating a single string.
func (t *Translator) TranslateText(ctx context.Context, text string, lang Language) (*Result, error) {
	return t.Run(ctx, NewTextDocument(text), lang)
}

func (t *Translator) validate(doc *Document, lang Language, cfg runConfig) error {
	if t.provider == nil {
		return &ConfigurationError{Message: "no translation provider configured"}
	}
	if doc == nil {
		return &ConfigurationError{Message: "no document"}
	}
	if doc.Kind != KindText && doc.Kind != KindTable {
		return &ConfigurationError{Message: fmt.Sprintf("invalid document kind %q", doc.Kind)}
	}

	if lang.IsAuto() {
		if caps := t.provider.Capabilities(); !caps.AutoDetect {
			return &ConfigurationError{Message: fmt.Sprintf("provider %q cannot auto-detect the source language", caps.Name)}
		}
	} else if known, ok := LookupLanguage(lang.Code); !ok || known.Code != lang.Code {
		return &ConfigurationError{Message: fmt.Sprintf("unsupported source language %q", lang.Code)}
	}

	if doc.Kind != KindTable {
		return nil
	}

	for _, name := range cfg.sheets {
		if _, ok := doc.Sheet(name); !ok {
			return &ConfigurationError{Message: fmt.Sprintf("sheet %q not found", name)}
		}
	}

	if t.requiredColumn != "" {
		for _, s := range doc.Sheets {
			if len(cfg.sheets) > 0 && !slices.Contains(cfg.sheets, s.Name) {
				continue
			}
			if s.ColumnIndex(t.requiredColumn) < 0 {
				return &ConfigurationError{Message: fmt.Sprintf("sheet %q has no column %q", s.Name, t.requiredColumn)}
			}
		}
	}

	return nil
}

// run holds the mutable state of a single traversal.
type run struct {
	t        *Translator
	ctx      context.Context
	lang     Language
	stats    Stats
	failures []Failure
}

func (r *run) sheet(s *Sheet) {
	only := -1
	if r.t.requiredColumn != "" {
		only = s.ColumnIndex(r.t.requiredColumn)
	}

	r.t.log.Debug("translating sheet", "sheet", s.Name, "rows", len(s.Rows), "columns", s.Width())

	for i, row := range s.Rows {
		for j, cell := range row {
			if only >= 0 && j != only {
				continue
			}
			r.stats.Units++
			row[j] = r.unit(cell, Position{Sheet: s.Name, Row: i, Column: j})
		}
	}
}

func (r *run) unit(text string, pos Position) string {
	if strings.TrimSpace(text) == "" {
		r.stats.Skipped++
		return r.t.pipeline.Apply(text)
	}

	translated, err := r.t.provider.Translate(r.ctx, TranslateRequest{
		Text:       text,
		SourceLang: r.lang,
		TargetLang: r.t.targetLang,
		Position:   pos,
	})
	if err != nil {
		r.stats.Failed++
		r.failures = append(r.failures, Failure{
			Position: pos,
			Message:  err.Error(),
			Err:      &TranslationError{Position: pos, Cause: err},
		})
		r.t.log.Warn("unit translation failed", "at", pos, "err", err)
		return InlineError(err)
	}

	r.stats.Translated++
	return r.t.pipeline.Apply(translated)
}
