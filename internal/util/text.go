package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Left returns the first n characters of s.
func Left(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if n >= len(r) {
		return s
	}
	return string(r[:n])
}

// Right returns the last n characters of s.
func Right(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if n >= len(r) {
		return s
	}
	return string(r[len(r)-n:])
}

// Mid returns n characters of s starting at the 1-based position start.
func Mid(s string, start, n int) string {
	r := []rune(s)
	if start < 1 || n <= 0 || start > len(r) {
		return ""
	}
	end := start - 1 + n
	if end > len(r) {
		end = len(r)
	}
	return string(r[start-1 : end])
}

// Trim removes surrounding whitespace and collapses inner runs to a single
// space.
func Trim(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
