package textfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapLookup(m map[string]string) ParamLookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestNormalize(t *testing.T) {
	params := mapLookup(map[string]string{"score": "42", "name": "Alice"})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "all tag shapes",
			input:    "A<interval=1>B<param=score>C<unknown>D",
			expected: "A……B42CD",
		},
		{
			name:     "no tags",
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "unresolved param becomes empty",
			input:    "[<param=missing>]",
			expected: "[]",
		},
		{
			name:     "formatting tags are stripped",
			input:    "<color=red>Hi</color>, <param=name>",
			expected: "Hi, Alice",
		},
		{
			name:     "tag ends at nearest bracket",
			input:    "<b>x<param=score>>y",
			expected: "x42>y",
		},
		{
			name:     "unterminated tag passes through",
			input:    "a < b",
			expected: "a < b",
		},
		{
			name:     "empty interval tag",
			input:    "wait<interval=>",
			expected: "wait……",
		},
		{
			name:     "multibyte text",
			input:    "こんにちは<interval=0.5>さようなら",
			expected: "こんにちは……さようなら",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input, params))
		})
	}
}

func TestNormalize_NilLookup(t *testing.T) {
	assert.Equal(t, "ab", Normalize("a<param=x>b", nil))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "AB", StripTags("A<interval=1><param=x>B"))
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		text     string
		n        int
		expected string
	}{
		{"hello", 0, ""},
		{"hello", 2, "he"},
		{"hello", 5, "hello"},
		{"hello", 9, "hello"},
		{"……ab", 1, "…"},
		{"日本語", 2, "日本"},
		{"", 3, ""},
		{"x", -1, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Prefix(tt.text, tt.n), "Prefix(%q, %d)", tt.text, tt.n)
	}
	assert.Equal(t, 3, Len("日本語"))
}
