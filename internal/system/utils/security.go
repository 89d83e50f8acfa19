package utils

import (
	"strings"
	"unicode"
)

// SanitizeString strips control characters and surrounding whitespace from
// caller-supplied text before it is stored or echoed back.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, trimmed)
}

// TruncateString bounds a string to max bytes, used for stored User-Agent
// values.
func TruncateString(input string, max int) string {
	if len(input) <= max {
		return input
	}
	return input[:max]
}
