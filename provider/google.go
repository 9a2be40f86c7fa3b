package provider

import (
	"context"
	"fmt"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/ZaguanLabs/doctrans"
)

// GoogleTranslateClient is the subset of *translate.Client the provider uses.
type GoogleTranslateClient interface {
	Translate(ctx context.Context, inputs []string, target language.Tag, opts *translate.Options) ([]translate.Translation, error)
	Close() error
}

// GoogleProvider translates with the Cloud Translation basic (v2) API.
// It auto-detects the source language when none is given. Results come back
// HTML-escaped; the normalization pipeline decodes them.
type GoogleProvider struct {
	client GoogleTranslateClient
}

// GoogleConfig holds configuration for the Google providers.
type GoogleConfig struct {
	ProjectID       string // Required by the v3 LLM provider
	Region          string // v3 location (default: "us-central1")
	CredentialsFile string // Service account JSON (uses ADC if empty)
	Model           string // v3 model id under models/ (default: "general/translation-llm")
}

// NewGoogleProvider creates a provider backed by a new v2 client.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig) (*GoogleProvider, error) {
	client, err := translate.NewClient(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, &doctrans.ProviderError{Provider: "google", Message: "create client", Cause: err}
	}
	return NewGoogleProviderWithClient(client), nil
}

// NewGoogleProviderWithClient wraps an existing client.
func NewGoogleProviderWithClient(client GoogleTranslateClient) *GoogleProvider {
	return &GoogleProvider{client: client}
}

// Translate translates a single unit.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	target, err := language.Parse(req.TargetLang)
	if err != nil {
		return "", &doctrans.ProviderError{Provider: "google", Message: fmt.Sprintf("invalid target language %q", req.TargetLang), Cause: err}
	}

	var opts *translate.Options
	if !req.SourceLang.IsAuto() {
		source, err := language.Parse(req.SourceLang.Code)
		if err != nil {
			return "", &doctrans.ProviderError{Provider: "google", Message: fmt.Sprintf("invalid source language %q", req.SourceLang.Code), Cause: err}
		}
		opts = &translate.Options{Source: source}
	}

	translations, err := p.client.Translate(ctx, []string{req.Text}, target, opts)
	if err != nil {
		return "", &doctrans.ProviderError{Provider: "google", Message: "translate", Cause: err}
	}
	if len(translations) == 0 {
		return "", &doctrans.ProviderError{Provider: "google", Message: "translate", Cause: ErrEmptyTranslation}
	}

	return translations[0].Text, nil
}

// Capabilities reports auto-detect support.
func (p *GoogleProvider) Capabilities() Capabilities {
	return Capabilities{Name: "google", AutoDetect: true}
}

// Close releases the underlying client.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

func clientOptions(cfg GoogleConfig) []option.ClientOption {
	opts := []option.ClientOption{option.WithUserAgent(doctrans.UserAgent())}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

// Verify GoogleProvider implements Provider
var _ Provider = (*GoogleProvider)(nil)
