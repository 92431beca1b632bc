package security

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "John Doe",
			expected: "John Doe",
		},
		{
			name:     "unicode letters kept",
			input:    "Иван Петров",
			expected: "Иван Петров",
		},
		{
			name:     "colour sequence stripped",
			input:    "\x1b[31mred\x1b[0m",
			expected: "red",
		},
		{
			name:     "clear screen stripped",
			input:    "a\x1b[2Jb",
			expected: "ab",
		},
		{
			name:     "title rewrite stripped",
			input:    "\x1b]0;owned\x07name",
			expected: "name",
		},
		{
			name:     "tabs and newlines become spaces",
			input:    "a\tb\nc",
			expected: "a b c",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  x@example.com \r\n",
			expected: "x@example.com",
		},
		{
			name:     "invalid utf-8 replaced",
			input:    "a\xffb",
			expected: "a\uFFFDb",
		},
		{
			name:     "replacement character kept",
			input:    "a\uFFFDb",
			expected: "a\uFFFDb",
		},
		{
			name:     "html passes through untouched",
			input:    "<script>alert(1)</script>",
			expected: "<script>alert(1)</script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeCell(tt.input))
		})
	}
}

func TestSanitizeCell_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxCellLength+10)

	got := SanitizeCell(long)

	assert.Equal(t, MaxCellLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, ellipsis))
}

func TestSanitizeLine(t *testing.T) {
	long := strings.Repeat("x", MaxCellLength*2)

	assert.Equal(t, long, SanitizeLine(long))
	assert.Equal(t, "bad  input", SanitizeLine("bad\x1b[1m\n input"))
}

func TestSanitize_InvalidUTF8Consistent(t *testing.T) {
	inputs := []string{"caf\xe9", "a\uFFFDb", "\xff\xfe", "ok"}

	for _, in := range inputs {
		cell := SanitizeCell(in)
		line := SanitizeLine(in)

		assert.True(t, utf8.ValidString(cell), "cell %q", in)
		assert.True(t, utf8.ValidString(line), "line %q", in)
		assert.Equal(t, line, cell, "input %q", in)
	}
}
