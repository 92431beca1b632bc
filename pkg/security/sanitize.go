package security

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxCellLength defines the maximum number of runes shown in one table cell
	MaxCellLength = 64
	ellipsis      = "…"
)

// escapePatterns match terminal control sequences that server data must never
// be allowed to emit (cursor moves, colour changes, title rewrites, ...)
var escapePatterns = []*regexp.Regexp{
	// CSI sequences: ESC [ params final
	regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`),
	// OSC sequences terminated by BEL or ST
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`),
	// Remaining two-byte escapes
	regexp.MustCompile(`\x1b[@-_]`),
}

// replacementChar stands in for bytes that are not valid UTF-8
const replacementChar = string(utf8.RuneError)

// SanitizeCell makes a server-supplied string safe to print inside a table cell.
// Escape sequences are removed, other control characters (including tabs and
// newlines, which would break column alignment) become spaces, and the result
// is truncated to MaxCellLength runes.
func SanitizeCell(s string) string {
	if s == "" {
		return ""
	}

	s = strings.TrimSpace(clean(s))

	if utf8.RuneCountInString(s) > MaxCellLength {
		runes := []rune(s)
		s = string(runes[:MaxCellLength-1]) + ellipsis
	}

	return s
}

// SanitizeLine is SanitizeCell without trimming or truncation, for messages
// and alerts
func SanitizeLine(s string) string {
	return clean(s)
}

// clean replaces invalid UTF-8 with U+FFFD, strips escape sequences and turns
// the remaining control characters into spaces
func clean(s string) string {
	s = strings.ToValidUTF8(s, replacementChar)

	for _, pattern := range escapePatterns {
		s = pattern.ReplaceAllString(s, "")
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}
