// Package app wires extraction, translation and storage into the operations
// exposed by the HTTP API and the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ZaguanLabs/doctrans"
	"github.com/ZaguanLabs/doctrans/format"
	"github.com/ZaguanLabs/doctrans/internal/config"
	"github.com/ZaguanLabs/doctrans/normalize"
	"github.com/ZaguanLabs/doctrans/provider"
	"github.com/ZaguanLabs/doctrans/store"
)

// App is the caller-facing document translation service.
type App struct {
	translator *doctrans.Translator
	formats    *format.Registry
	store      store.Store
	log        *log.Logger
	closers    []io.Closer

	newID func() string
	now   func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithRegistry replaces the default extractor registry.
func WithRegistry(r *format.Registry) Option {
	return func(a *App) {
		if r != nil {
			a.formats = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithIDGenerator replaces the UUID record id generator.
func WithIDGenerator(fn func() string) Option {
	return func(a *App) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// New creates an App around an existing translator and store.
func New(tr *doctrans.Translator, st store.Store, opts ...Option) *App {
	a := &App{
		translator: tr,
		formats:    format.DefaultRegistry(),
		store:      st,
		log:        log.New(io.Discard),
		newID:      uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewFromConfig builds the provider, store and translator described by cfg.
func NewFromConfig(ctx context.Context, cfg *config.Config, l *log.Logger) (*App, error) {
	p, err := BuildProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st, err := BuildStore(ctx, cfg)
	if err != nil {
		closeQuietly(p)
		return nil, err
	}

	tr := doctrans.NewTranslator(p,
		doctrans.WithTargetLang(cfg.Translation.TargetLanguage),
		doctrans.WithPipeline(normalize.New(normalize.WithCharsetRestriction(cfg.Translation.RestrictCharset))),
		doctrans.WithRequiredColumn(cfg.Translation.RequiredColumn),
		doctrans.WithLogger(l),
	)

	a := New(tr, st, WithLogger(l))
	if c, ok := p.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	return a, nil
}

// BuildProvider creates the translation provider named by
// cfg.Translation.Provider.
func BuildProvider(ctx context.Context, cfg *config.Config) (doctrans.Provider, error) {
	google := provider.GoogleConfig{
		ProjectID:       cfg.Google.ProjectID,
		Region:          cfg.Google.Region,
		CredentialsFile: cfg.Google.CredentialsFile,
		Model:           cfg.Google.Model,
	}

	switch cfg.Translation.Provider {
	case config.ProviderGoogle:
		p, err := provider.NewGoogleProvider(ctx, google)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderGoogleLLM:
		p, err := provider.NewGoogleLLMProvider(ctx, google)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, &doctrans.ConfigurationError{Message: "openai.api_key is required"}
		}
		return provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey.Value(),
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		}), nil
	case config.ProviderMock:
		return provider.NewMockProvider(), nil
	}
	return nil, &doctrans.ConfigurationError{Message: fmt.Sprintf("unknown provider %q", cfg.Translation.Provider)}
}

// BuildStore creates the record store named by cfg.Store.Backend.
func BuildStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		return store.NewMemoryStore(cfg.Store.TTL), nil
	case config.BackendRedis:
		s, err := store.NewRedisStore(ctx, store.RedisConfig{
			URL: cfg.Store.RedisURL,
			TTL: cfg.Store.TTL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, &doctrans.ConfigurationError{Message: fmt.Sprintf("unknown store backend %q", cfg.Store.Backend)}
}

// Request is an uploaded document to translate.
type Request struct {
	FileName   string
	Data       []byte
	SourceLang string   // Code, name, "auto" or empty for auto-detect
	Sheets     []string // Restrict a table run to these sheets
}

// Languages returns the selectable source languages. Auto comes first and is
// left out when the provider cannot detect the source language.
func (a *App) Languages() []doctrans.Language {
	langs := doctrans.SupportedLanguages()
	if a.translator.Capabilities().AutoDetect {
		return langs
	}
	return slices.DeleteFunc(langs, doctrans.Language.IsAuto)
}

// Extensions returns the accepted upload extensions.
func (a *App) Extensions() []string {
	return a.formats.Extensions()
}

// TargetLang returns the language documents are translated into.
func (a *App) TargetLang() string {
	return a.translator.TargetLang()
}

// Preview extracts a document without translating it.
func (a *App) Preview(name string, data []byte) (*doctrans.Document, error) {
	return a.formats.Extract(name, data)
}

// Translate extracts, translates and stores an uploaded document. The
// returned record holds the complete result; per-unit failures are listed
// in it rather than returned as an error.
func (a *App) Translate(ctx context.Context, req Request) (*store.Record, error) {
	lang, err := doctrans.ParseLanguage(req.SourceLang)
	if err != nil {
		return nil, err
	}

	doc, err := a.formats.Extract(req.FileName, req.Data)
	if err != nil {
		return nil, err
	}

	res, err := a.translator.Run(ctx, doc, lang, doctrans.OnlySheets(req.Sheets...))
	if err != nil {
		return nil, err
	}

	rec := store.NewRecord(a.newID(), doc.Source, lang, res, a.now())
	if err := a.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("save translation: %w", err)
	}

	a.log.Info("document translated",
		"id", rec.ID,
		"file", rec.FileName,
		"format", doc.Format,
		"source", lang,
		"failed", rec.Stats.Failed,
	)
	return rec, nil
}

// Get loads a stored translation. Missing or expired records are
// store.ErrNotFound.
func (a *App) Get(ctx context.Context, id string) (*store.Record, error) {
	return a.store.Get(ctx, id)
}

// Download loads a stored translation and serializes it.
func (a *App) Download(ctx context.Context, id string) (*format.Output, error) {
	rec, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return format.Serialize(rec.Document, rec.FileName)
}

// Close releases the store and any provider client.
func (a *App) Close() error {
	errs := []error{a.store.Close()}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func closeQuietly(p doctrans.Provider) {
	if c, ok := p.(io.Closer); ok {
		_ = c.Close()
	}
}
