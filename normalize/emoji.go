package normalize

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/kyokomi/emoji/v2"
)

const variationSelector = "\ufe0f"

var (
	emojiOnce     sync.Once
	emojiReplacer *strings.Replacer
)

// Demojize replaces every emoji with its ":name:" token, e.g. "😀" becomes
// ":grinning_face:". Variation selectors are dropped first so "☺️" and "☺"
// produce the same token.
func Demojize(s string) string {
	emojiOnce.Do(buildEmojiReplacer)
	return emojiReplacer.Replace(strings.ReplaceAll(s, variationSelector, ""))
}

// EmojiName returns the token Demojize uses for a single emoji.
func EmojiName(e string) (string, bool) {
	emojiOnce.Do(buildEmojiReplacer)
	name, ok := emojiNames[strings.ReplaceAll(e, variationSelector, "")]
	return name, ok
}

var emojiNames map[string]string

func buildEmojiReplacer() {
	aliases := make(map[string][]string)
	for code, names := range emoji.RevCodeMap() {
		code = strings.ReplaceAll(code, variationSelector, "")
		if code == "" || isASCII(code) {
			continue
		}
		aliases[code] = append(aliases[code], names...)
	}

	emojiNames = make(map[string]string, len(aliases))
	for code, names := range aliases {
		emojiNames[code] = canonicalName(names)
	}

	codes := make([]string, 0, len(emojiNames))
	for code := range emojiNames {
		codes = append(codes, code)
	}
	// strings.Replacer tries pairs in argument order, so longer sequences
	// (skin tones, ZWJ families, flags) must come before their prefixes.
	slices.SortFunc(codes, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, 2*len(codes))
	for _, code := range codes {
		pairs = append(pairs, code, emojiNames[code])
	}
	emojiReplacer = strings.NewReplacer(pairs...)
}

// canonicalName picks the most descriptive alias: the longest, then the
// lexicographically smallest.
func canonicalName(names []string) string {
	best := ""
	for _, n := range names {
		n = ":" + strings.Trim(n, ":") + ":"
		if len(n) > len(best) || (len(n) == len(best) && n < best) {
			best = n
		}
	}
	return best
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
