package provider

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate/apiv3"
	"cloud.google.com/go/translate/apiv3/translatepb"
	"github.com/googleapis/gax-go/v2"

	"github.com/ZaguanLabs/doctrans"
)

// DefaultLLMModel is the general Translation LLM model id.
const DefaultLLMModel = "general/translation-llm"

// TranslationServiceClient is the subset of the v3 client the provider uses.
type TranslationServiceClient interface {
	TranslateText(ctx context.Context, req *translatepb.TranslateTextRequest, opts ...gax.CallOption) (*translatepb.TranslateTextResponse, error)
	Close() error
}

// GoogleLLMProvider translates with the Cloud Translation v3 API and the
// Translation LLM model. The model needs an explicit source language.
type GoogleLLMProvider struct {
	client TranslationServiceClient
	parent string
	model  string
}

// NewGoogleLLMProvider creates a provider backed by a new v3 client.
func NewGoogleLLMProvider(ctx context.Context, cfg GoogleConfig) (*GoogleLLMProvider, error) {
	if cfg.ProjectID == "" {
		return nil, &doctrans.ConfigurationError{Message: "google project id is required for the translation LLM"}
	}
	client, err := translate.NewTranslationClient(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, &doctrans.ProviderError{Provider: "google-llm", Message: "create client", Cause: err}
	}
	return NewGoogleLLMProviderWithClient(client, cfg), nil
}

// NewGoogleLLMProviderWithClient wraps an existing client.
func NewGoogleLLMProviderWithClient(client TranslationServiceClient, cfg GoogleConfig) *GoogleLLMProvider {
	region := cfg.Region
	if region == "" {
		region = "us-central1"
	}
	model := cfg.Model
	if model == "" {
		model = DefaultLLMModel
	}

	parent := fmt.Sprintf("projects/%s/locations/%s", cfg.ProjectID, region)
	return &GoogleLLMProvider{
		client: client,
		parent: parent,
		model:  parent + "/models/" + model,
	}
}

// Translate translates a single unit.
func (p *GoogleLLMProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if req.SourceLang.IsAuto() {
		return "", &doctrans.ProviderError{Provider: "google-llm", Message: "source language must be selected explicitly"}
	}

	resp, err := p.client.TranslateText(ctx, &translatepb.TranslateTextRequest{
		Parent:             p.parent,
		Contents:           []string{req.Text},
		MimeType:           "text/plain",
		SourceLanguageCode: req.SourceLang.Code,
		TargetLanguageCode: req.TargetLang,
		Model:              p.model,
	})
	if err != nil {
		return "", &doctrans.ProviderError{Provider: "google-llm", Message: "translate", Cause: err}
	}

	translations := resp.GetTranslations()
	if len(translations) == 0 {
		return "", &doctrans.ProviderError{Provider: "google-llm", Message: "translate", Cause: ErrEmptyTranslation}
	}

	return translations[0].GetTranslatedText(), nil
}

// Capabilities reports that auto-detect is not supported.
func (p *GoogleLLMProvider) Capabilities() Capabilities {
	return Capabilities{Name: "google-llm", AutoDetect: false}
}

// Model returns the full model resource name.
func (p *GoogleLLMProvider) Model() string {
	return p.model
}

// Close releases the underlying client.
func (p *GoogleLLMProvider) Close() error {
	return p.client.Close()
}

// Verify GoogleLLMProvider implements Provider
var _ Provider = (*GoogleLLMProvider)(nil)
