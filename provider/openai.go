package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/doctrans"
)

// OpenAIProvider implements Provider using OpenAI's chat completions API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates a single unit.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &doctrans.ProviderError{Provider: "openai", Message: "chat completion failed", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &doctrans.ProviderError{Provider: "openai", Message: "no response from OpenAI"}
	}

	return parseResponse(resp.Choices[0].Message.Content)
}

// Capabilities reports auto-detect support.
func (p *OpenAIProvider) Capabilities() Capabilities {
	return Capabilities{Name: "openai", AutoDetect: true}
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	target := req.TargetLang
	if l, ok := doctrans.LookupLanguage(target); ok && !l.IsAuto() {
		target = l.Name
	}

	source := "Detect the source language yourself."
	if !req.SourceLang.IsAuto() {
		source = fmt.Sprintf("The source language is %s.", req.SourceLang.Name)
	}

	return fmt.Sprintf(`# Role
You are a professional translator working on survey responses and business documents.

# Task
Translate the provided text into %s. %s

# Rules
- Translate faithfully. Do not summarize, explain or add content.
- Keep numbers, codes, URLs, email addresses and @mentions unchanged.
- Preserve line breaks.
- If the text is already in %s, return it unchanged.

# Format
Return a valid JSON object with a single key "translation" holding the translated string.
Example: { "translation": "translated text" }
- Do NOT wrap in Markdown code blocks.`, target, source, target)
}

func buildUserMessage(req TranslateRequest) string {
	data, _ := json.Marshal(map[string]string{"text": req.Text})
	return string(data)
}

func parseResponse(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return "", &doctrans.ProviderError{Provider: "openai", Message: "invalid response format from OpenAI", Cause: err}
	}

	if s, ok := obj["translation"].(string); ok {
		return s, nil
	}

	// Fallback: a single string value under any key.
	for _, v := range obj {
		if s, ok := v.(string); ok && len(obj) == 1 {
			return s, nil
		}
	}

	return "", &doctrans.ProviderError{Provider: "openai", Message: "invalid response format from OpenAI", Cause: ErrEmptyTranslation}
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
