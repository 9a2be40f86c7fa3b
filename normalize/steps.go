package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	usernamePattern  = regexp.MustCompile(`@[\p{L}\p{N}_]+`)
	hyperlinkPattern = regexp.MustCompile(`(?:http|www)[^\s\v\p{Z}\x{85}]+`)
	charsetPattern   = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?'"()]+`)

	quoteReplacer = strings.NewReplacer("“", `"`, "”", `"`)
)

// UnescapeHTML decodes HTML character references in a single pass, so
// "&amp;lt;" becomes "&lt;".
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// StripUsernames removes "@" followed by letters, digits or underscores.
// A lone "@" is kept.
func StripUsernames(s string) string {
	return usernamePattern.ReplaceAllString(s, "")
}

// StripHyperlinks removes every run starting with "http" or "www" up to the
// next whitespace.
func StripHyperlinks(s string) string {
	return hyperlinkPattern.ReplaceAllString(s, "")
}

// CollapseWhitespace replaces runs of Unicode whitespace with one space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StandardizeQuotes maps curly double quotes to '"'. Single curly quotes
// are left alone.
func StandardizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

// RestrictCharset removes everything except ASCII letters, digits,
// whitespace and . , ! ? ' " ( ).
func RestrictCharset(s string) string {
	return charsetPattern.ReplaceAllString(s, "")
}
