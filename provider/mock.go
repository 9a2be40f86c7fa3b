package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a deterministic provider for tests and dry runs.
// Unknown inputs come back bracketed, e.g. "[Hola]".
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Failures     map[string]error  // Inputs that fail with the given error
	AutoDetect   bool              // Reported through Capabilities

	mu          sync.Mutex
	callCount   int
	lastRequest *TranslateRequest
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hola":         "Hello",
			"Mundo":        "World",
			"Hola Mundo":   "Hello World",
			"Bonjour":      "Hello",
			"Merci":        "Thank you",
			"Guten Morgen": "Good morning",
		},
		Failures:   map[string]error{},
		AutoDetect: true,
	}
}

// Translate returns the mock translation for req.Text.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.lastRequest = &req

	if err, ok := m.Failures[req.Text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s]", req.Text), nil
}

// Capabilities reports the configured auto-detect support.
func (m *MockProvider) Capabilities() Capabilities {
	return Capabilities{Name: "mock", AutoDetect: m.AutoDetect}
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
