package utils

import (
	"regexp"
	"strings"
)

// MultipleSpaces matches any sequence of whitespace (including newlines).
var MultipleSpaces = regexp.MustCompile(`\s+`)

// CompressAllWhitespace replaces all whitespace sequences (including newlines) with a single space.
func CompressAllWhitespace(s string) string {
	return strings.TrimSpace(MultipleSpaces.ReplaceAllString(s, " "))
}

// Slugify converts a display name into a URL slug: lowercased with
// whitespace runs collapsed into single hyphens.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return MultipleSpaces.ReplaceAllString(name, "-")
}

// Truncate shortens a string to maxLen runes, appending an ellipsis when
// content was cut. Used for notification bodies and card descriptions.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
