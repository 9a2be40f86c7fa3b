package doctrans

import "fmt"

// ConfigurationError indicates invalid run settings detected before any
// provider call: unsupported language, missing column, unknown sheet, etc.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError indicates a file extension or content type that no
// extractor handles.
type UnsupportedFormatError struct {
	Extension string
	Message   string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unsupported format %q: %s", e.Extension, e.Message)
	}
	return fmt.Sprintf("unsupported format %q", e.Extension)
}

// TranslationError wraps a single unit's failure. It never aborts a run;
// the translator renders it inline and records it as a Failure.
type TranslationError struct {
	Position Position
	Cause    error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed at %s: %v", e.Position, e.Cause)
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation backend failure (API error, bad reply, etc.).
type ProviderError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error (%s): %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ExtractionError indicates a supported file that could not be parsed.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error (%s): %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// SerializationError indicates a failure writing the output artifact.
type SerializationError struct {
	Format  string
	Message string
	Cause   error
}

func (e *SerializationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("serialization error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("serialization error (%s): %s", e.Format, e.Message)
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// InlineError renders a unit failure the way it appears in the output document.
func InlineError(err error) string {
	return "Error: " + err.Error()
}
