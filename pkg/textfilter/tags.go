package textfilter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// IntervalGlyph replaces every <interval=...> tag.
const IntervalGlyph = "……"

// ParamLookup resolves a <param=KEY> tag. ok is false when KEY is unknown.
type ParamLookup func(key string) (value string, ok bool)

// tagPattern matches the three tag shapes in priority order. Tags never nest
// and end at the nearest '>'.
var tagPattern = regexp.MustCompile(`<interval=[^>]*>|<param=[^>]*>|<[^>]*>`)

const (
	intervalPrefix = "<interval="
	paramPrefix    = "<param="
)

// Normalize rewrites inline tags in dialogue text in a single pass:
// <interval=...> becomes IntervalGlyph, <param=KEY> becomes the looked-up
// value (empty when unresolved) and any other tag is removed. Text outside
// tags is kept as is.
func Normalize(text string, lookup ParamLookup) string {
	if !strings.Contains(text, "<") {
		return text
	}
	return tagPattern.ReplaceAllStringFunc(text, func(tag string) string {
		switch {
		case strings.HasPrefix(tag, intervalPrefix):
			return IntervalGlyph
		case strings.HasPrefix(tag, paramPrefix):
			if lookup == nil {
				return ""
			}
			key := tag[len(paramPrefix) : len(tag)-1]
			if value, ok := lookup(key); ok {
				return value
			}
			return ""
		default:
			return ""
		}
	})
}

// StripTags removes every tag without substitution.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// Prefix returns the first n characters of text, counted in runes so
// multi-byte glyphs are never split.
func Prefix(text string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}

// Len is the number of characters the reveal ticker has to show for text.
func Len(text string) int {
	return utf8.RuneCountInString(text)
}
