package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// multiSpacePattern matches runs of whitespace inside a name.
var multiSpacePattern = regexp.MustCompile(`\s+`)

// NormalizeName trims a user-typed name and collapses inner whitespace.
// Case is preserved: grouping is by the exact normalized name.
func NormalizeName(s string) string {
	if s == "" {
		return ""
	}
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Capitalize upper-cases the first letter and lower-cases the rest, so
// "living ROOM" becomes "Living room".
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}

// LessFold orders names case-insensitively, falling back to byte order so
// "bath" and "Bath" still have a stable relative position.
func LessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
