package doctrans

import (
	"errors"
	"testing"
)

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()

	if len(langs) != 35 {
		t.Fatalf("expected 35 entries (Auto + 34), got %d", len(langs))
	}
	if langs[0] != Auto {
		t.Errorf("first entry = %v, want Auto", langs[0])
	}
	if langs[1].Code != "ar" || langs[len(langs)-1].Code != "vi" {
		t.Errorf("unexpected display order: first=%q last=%q", langs[1].Code, langs[len(langs)-1].Code)
	}

	// Mutating the copy must not leak into the package set.
	langs[1].Code = "xx"
	if SupportedLanguages()[1].Code != "ar" {
		t.Error("SupportedLanguages should return a copy")
	}
}

func TestLookupLanguage(t *testing.T) {
	tests := []struct {
		code     string
		expected string
		ok       bool
	}{
		{"de", "German", true},
		{"zh-CN", "Chinese (Simplified)", true},
		{"zh_tw", "Chinese (Traditional)", true},
		{"", "Auto Detect", true},
		{"xx", "", false},
		{"he", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			lang, ok := LookupLanguage(tt.code)
			if ok != tt.ok {
				t.Fatalf("LookupLanguage(%q) ok = %v, want %v", tt.code, ok, tt.ok)
			}
			if lang.Name != tt.expected {
				t.Errorf("LookupLanguage(%q) = %q, want %q", tt.code, lang.Name, tt.expected)
			}
		})
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"auto", Auto},
		{"", Auto},
		{"Auto Detect", Auto},
		{"fr", Language{"French", "fr"}},
		{"Japanese", Language{"Japanese", "ja"}},
		{" spanish ", Language{"Spanish", "es"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lang, err := ParseLanguage(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lang != tt.expected {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tt.input, lang, tt.expected)
			}
		})
	}
}

func TestParseLanguage_Unsupported(t *testing.T) {
	_, err := ParseLanguage("Klingon")

	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestGetDirection(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"ar", "rtl"},
		{"he_IL", "rtl"},
		{"fa-IR", "rtl"},
		{"es", "ltr"},
		{"zh-CN", "ltr"},
		{"", "ltr"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetDirection(tt.code); got != tt.expected {
				t.Errorf("GetDirection(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("zh_CN"); got != "zh-CN" {
		t.Errorf("NormalizeCode(zh_CN) = %q", got)
	}
	if got := NormalizeCode("pt-BR"); got != "pt-BR" {
		t.Errorf("NormalizeCode(pt-BR) = %q", got)
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("uk") {
		t.Error("uk should be supported")
	}
	if !IsSupported("") {
		t.Error("auto should be supported")
	}
	if IsSupported("tlh") {
		t.Error("tlh should not be supported")
	}
}
