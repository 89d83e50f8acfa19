package utils

import (
	"strings"
	"unicode"
)

// NormalizePhone reduces a phone number to its digits. "+1 (555) 123-4567"
// and "15551234567" normalize to the same value.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName lowercases and trims a name for comparison. The stored value
// keeps its original casing.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
