package provider

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/translate"
	"cloud.google.com/go/translate/apiv3/translatepb"
	"github.com/googleapis/gax-go/v2"
	"golang.org/x/text/language"

	"github.com/ZaguanLabs/doctrans"
)

type fakeV2Client struct {
	target language.Tag
	opts   *translate.Options
	inputs []string
	result []translate.Translation
	err    error
	closed bool
}

func (c *fakeV2Client) Translate(ctx context.Context, inputs []string, target language.Tag, opts *translate.Options) ([]translate.Translation, error) {
	c.inputs = inputs
	c.target = target
	c.opts = opts
	return c.result, c.err
}

func (c *fakeV2Client) Close() error {
	c.closed = true
	return nil
}

func TestGoogleProvider_AutoDetect(t *testing.T) {
	client := &fakeV2Client{result: []translate.Translation{{Text: "It&#39;s fine", Source: language.German}}}
	p := NewGoogleProviderWithClient(client)

	got, err := p.Translate(context.Background(), TranslateRequest{Text: "Es ist gut", SourceLang: doctrans.Auto, TargetLang: "en"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	// The pipeline decodes entities; the provider returns the raw text.
	if got != "It&#39;s fine" {
		t.Errorf("Translate() = %q", got)
	}
	if client.opts != nil {
		t.Errorf("auto-detect should not set a source, got %+v", client.opts)
	}
	if client.target != language.English {
		t.Errorf("target = %v, want en", client.target)
	}
	if len(client.inputs) != 1 || client.inputs[0] != "Es ist gut" {
		t.Errorf("inputs = %v", client.inputs)
	}
}

func TestGoogleProvider_ExplicitSource(t *testing.T) {
	client := &fakeV2Client{result: []translate.Translation{{Text: "Hello"}}}
	p := NewGoogleProviderWithClient(client)

	_, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "你好",
		SourceLang: doctrans.Language{Name: "Chinese (Simplified)", Code: "zh-CN"},
		TargetLang: "en",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if client.opts == nil || client.opts.Source != language.MustParse("zh-CN") {
		t.Errorf("source option = %+v", client.opts)
	}
}

func TestGoogleProvider_Errors(t *testing.T) {
	var perr *doctrans.ProviderError

	client := &fakeV2Client{err: errors.New("googleapi: Error 403: quota")}
	p := NewGoogleProviderWithClient(client)
	if _, err := p.Translate(context.Background(), TranslateRequest{Text: "x", TargetLang: "en"}); !errors.As(err, &perr) {
		t.Errorf("expected ProviderError, got %v", err)
	}

	empty := NewGoogleProviderWithClient(&fakeV2Client{})
	_, err := empty.Translate(context.Background(), TranslateRequest{Text: "x", TargetLang: "en"})
	if !errors.Is(err, ErrEmptyTranslation) {
		t.Errorf("expected ErrEmptyTranslation, got %v", err)
	}

	if _, err := p.Translate(context.Background(), TranslateRequest{Text: "x", TargetLang: "not a tag!"}); !errors.As(err, &perr) {
		t.Errorf("expected ProviderError for bad target, got %v", err)
	}
}

func TestGoogleProvider_CapabilitiesAndClose(t *testing.T) {
	client := &fakeV2Client{}
	p := NewGoogleProviderWithClient(client)

	if caps := p.Capabilities(); !caps.AutoDetect || caps.Name != "google" {
		t.Errorf("unexpected capabilities: %+v", caps)
	}
	if err := p.Close(); err != nil || !client.closed {
		t.Error("Close should close the client")
	}
}

type fakeV3Client struct {
	req  *translatepb.TranslateTextRequest
	resp *translatepb.TranslateTextResponse
	err  error
}

func (c *fakeV3Client) TranslateText(ctx context.Context, req *translatepb.TranslateTextRequest, opts ...gax.CallOption) (*translatepb.TranslateTextResponse, error) {
	c.req = req
	return c.resp, c.err
}

func (c *fakeV3Client) Close() error { return nil }

func TestGoogleLLMProvider_Translate(t *testing.T) {
	client := &fakeV3Client{resp: &translatepb.TranslateTextResponse{
		Translations: []*translatepb.Translation{{TranslatedText: "Thank you very much"}},
	}}
	p := NewGoogleLLMProviderWithClient(client, GoogleConfig{ProjectID: "acme", Region: "europe-west4"})

	got, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "Merci beaucoup",
		SourceLang: doctrans.Language{Name: "French", Code: "fr"},
		TargetLang: "en",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Thank you very much" {
		t.Errorf("Translate() = %q", got)
	}

	req := client.req
	if req.GetParent() != "projects/acme/locations/europe-west4" {
		t.Errorf("Parent = %q", req.GetParent())
	}
	if req.GetModel() != "projects/acme/locations/europe-west4/models/general/translation-llm" {
		t.Errorf("Model = %q", req.GetModel())
	}
	if req.GetSourceLanguageCode() != "fr" || req.GetTargetLanguageCode() != "en" {
		t.Errorf("languages = %q -> %q", req.GetSourceLanguageCode(), req.GetTargetLanguageCode())
	}
	if len(req.GetContents()) != 1 || req.GetContents()[0] != "Merci beaucoup" {
		t.Errorf("Contents = %v", req.GetContents())
	}
}

func TestGoogleLLMProvider_RequiresSource(t *testing.T) {
	client := &fakeV3Client{}
	p := NewGoogleLLMProviderWithClient(client, GoogleConfig{ProjectID: "acme"})

	if p.Capabilities().AutoDetect {
		t.Error("LLM provider should not report auto-detect")
	}

	_, err := p.Translate(context.Background(), TranslateRequest{Text: "x", SourceLang: doctrans.Auto, TargetLang: "en"})
	var perr *doctrans.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if client.req != nil {
		t.Error("client should not be called without a source language")
	}
	if p.Model() != "projects/acme/locations/us-central1/models/general/translation-llm" {
		t.Errorf("default model = %q", p.Model())
	}
}

func TestGoogleLLMProvider_Errors(t *testing.T) {
	fr := doctrans.Language{Name: "French", Code: "fr"}

	failing := NewGoogleLLMProviderWithClient(&fakeV3Client{err: errors.New("rpc error: code = Unavailable")}, GoogleConfig{ProjectID: "acme"})
	if _, err := failing.Translate(context.Background(), TranslateRequest{Text: "x", SourceLang: fr, TargetLang: "en"}); err == nil {
		t.Error("expected error from client")
	}

	empty := NewGoogleLLMProviderWithClient(&fakeV3Client{resp: &translatepb.TranslateTextResponse{}}, GoogleConfig{ProjectID: "acme"})
	_, err := empty.Translate(context.Background(), TranslateRequest{Text: "x", SourceLang: fr, TargetLang: "en"})
	if !errors.Is(err, ErrEmptyTranslation) {
		t.Errorf("expected ErrEmptyTranslation, got %v", err)
	}
}

func TestNewGoogleLLMProvider_RequiresProject(t *testing.T) {
	_, err := NewGoogleLLMProvider(context.Background(), GoogleConfig{})

	var cerr *doctrans.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
