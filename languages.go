package doctrans

import (
	"fmt"
	"slices"
	"strings"
)

// Language is a selectable source language. The zero Code means auto-detect.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Auto asks the provider to detect the source language.
var Auto = Language{Name: "Auto Detect", Code: ""}

// IsAuto reports whether the language is the auto-detect selection.
func (l Language) IsAuto() bool {
	return l.Code == ""
}

// Direction returns "rtl" for right-to-left languages, "ltr" otherwise.
func (l Language) Direction() string {
	return GetDirection(l.Code)
}

func (l Language) String() string {
	if l.IsAuto() {
		return "auto"
	}
	return l.Code
}

// supportedLanguages is the fixed, display-ordered source language set.
var supportedLanguages = []Language{
	{"Arabic", "ar"},
	{"Bulgarian", "bg"},
	{"Catalan", "ca"},
	{"Chinese (Simplified)", "zh-CN"},
	{"Chinese (Traditional)", "zh-TW"},
	{"Croatian", "hr"},
	{"Czech", "cs"},
	{"Danish", "da"},
	{"Dutch", "nl"},
	{"English", "en"},
	{"Estonian", "et"},
	{"Finnish", "fi"},
	{"French", "fr"},
	{"German", "de"},
	{"Greek", "el"},
	{"Hungarian", "hu"},
	{"Indonesian", "id"},
	{"Italian", "it"},
	{"Japanese", "ja"},
	{"Korean", "ko"},
	{"Latvian", "lv"},
	{"Lithuanian", "lt"},
	{"Polish", "pl"},
	{"Portuguese", "pt"},
	{"Romanian", "ro"},
	{"Russian", "ru"},
	{"Slovak", "sk"},
	{"Slovenian", "sl"},
	{"Spanish", "es"},
	{"Swedish", "sv"},
	{"Thai", "th"},
	{"Turkish", "tr"},
	{"Ukrainian", "uk"},
	{"Vietnamese", "vi"},
}

// RTLLanguages lists base codes written right-to-left.
var RTLLanguages = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
}

// SupportedLanguages returns Auto followed by every supported language in
// display order. The returned slice is a copy.
func SupportedLanguages() []Language {
	return append([]Language{Auto}, supportedLanguages...)
}

// IsSupported reports whether code names a supported source language.
// The empty code (Auto) is supported.
func IsSupported(code string) bool {
	_, ok := LookupLanguage(code)
	return ok
}

// LookupLanguage finds a language by code. Codes compare case-insensitively
// and accept "_" in place of "-" (e.g. "zh_cn").
func LookupLanguage(code string) (Language, bool) {
	if code == "" {
		return Auto, true
	}
	code = NormalizeCode(code)
	i := slices.IndexFunc(supportedLanguages, func(l Language) bool {
		return strings.EqualFold(l.Code, code)
	})
	if i < 0 {
		return Language{}, false
	}
	return supportedLanguages[i], true
}

// ParseLanguage resolves user input to a Language. It accepts "auto", the
// empty string, a language code or a display name.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") || strings.EqualFold(s, Auto.Name) {
		return Auto, nil
	}
	if l, ok := LookupLanguage(s); ok {
		return l, nil
	}
	for _, l := range supportedLanguages {
		if strings.EqualFold(l.Name, s) {
			return l, nil
		}
	}
	return Language{}, &ConfigurationError{Message: fmt.Sprintf("unsupported source language %q", s)}
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(code string) string {
	base := strings.ToLower(strings.Split(NormalizeCode(code), "-")[0])
	if RTLLanguages[base] {
		return "rtl"
	}
	return "ltr"
}

// NormalizeCode converts a locale code to BCP 47 separators (e.g., "zh_CN" → "zh-CN").
func NormalizeCode(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
}
