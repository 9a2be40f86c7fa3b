// Package config loads doctrans settings from defaults, the environment and
// command-line overrides, in that order of precedence.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto configuration keys. DOCTRANS_STORE_REDIS_URL sets store.redis_url.
const EnvPrefix = "DOCTRANS_"

// Provider names accepted by translation.provider.
const (
	ProviderGoogle    = "google"
	ProviderGoogleLLM = "google-llm"
	ProviderOpenAI    = "openai"
	ProviderMock      = "mock"
)

// Store backends accepted by store.backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the complete application configuration.
type Config struct {
	Translation TranslationConfig `koanf:"translation"`
	Google      GoogleConfig      `koanf:"google"`
	OpenAI      OpenAIConfig      `koanf:"openai"`
	Store       StoreConfig       `koanf:"store"`
	Server      ServerConfig      `koanf:"server"`
	Log         LogConfig         `koanf:"log"`
}

// TranslationConfig controls the translator itself.
type TranslationConfig struct {
	Provider        string `koanf:"provider"         validate:"oneof=google google-llm openai mock"`
	TargetLanguage  string `koanf:"target_language"  validate:"required"`
	RestrictCharset bool   `koanf:"restrict_charset"`
	RequiredColumn  string `koanf:"required_column"`
}

// GoogleConfig is shared by the v2 and v3 Google providers.
type GoogleConfig struct {
	ProjectID       string `koanf:"project_id"`
	Region          string `koanf:"region"`
	CredentialsFile string `koanf:"credentials_file"`
	Model           string `koanf:"model"`
}

// OpenAIConfig configures the chat-completion provider.
type OpenAIConfig struct {
	APIKey  SensitiveString `koanf:"api_key"`
	Model   string          `koanf:"model"`
	BaseURL string          `koanf:"base_url"`
}

// StoreConfig selects where completed translations are kept.
type StoreConfig struct {
	Backend  string        `koanf:"backend"   validate:"oneof=memory redis"`
	RedisURL string        `koanf:"redis_url" validate:"required_if=Backend redis"`
	TTL      time.Duration `koanf:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string `koanf:"addr"             validate:"required"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes" validate:"gt=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// SensitiveString is a string that never prints its value.
type SensitiveString string

// String redacts non-empty values.
func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return "********"
}

// MarshalJSON redacts the value in JSON output.
func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Value returns the underlying secret.
func (s SensitiveString) Value() string {
	return string(s)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Translation: TranslationConfig{
			Provider:       ProviderGoogle,
			TargetLanguage: "en",
		},
		Google: GoogleConfig{
			Region: "us-central1",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// envAliases maps well-known unprefixed variables onto configuration keys.
// Prefixed variables are loaded afterwards and take precedence.
var envAliases = map[string]string{
	"OPENAI_API_KEY":       "openai.api_key",
	"OPENAI_BASE_URL":      "openai.base_url",
	"GOOGLE_CLOUD_PROJECT": "google.project_id",
	"REDIS_URL":            "store.redis_url",
}

// Load builds the configuration. Overrides are dotted keys such as
// "translation.provider" and win over everything else.
func Load(overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return envAliases[key], value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment aliases: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				sensitiveStringHook(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch cfg.Translation.Provider {
	case ProviderGoogleLLM:
		if cfg.Google.ProjectID == "" {
			return fmt.Errorf("invalid configuration: google.project_id is required for provider %s", cfg.Translation.Provider)
		}
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return fmt.Errorf("invalid configuration: openai.api_key is required for provider %s", cfg.Translation.Provider)
		}
	}
	return nil
}

// transformEnvKey turns SECTION_FIELD_NAME into section.field_name.
func transformEnvKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_'
	})
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

func sensitiveStringHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(SensitiveString("")) || from.Kind() != reflect.String {
			return data, nil
		}
		return SensitiveString(reflect.ValueOf(data).String()), nil
	}
}
