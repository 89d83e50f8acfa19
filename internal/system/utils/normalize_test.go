package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"formatted US number", "+1 (555) 123-4567", "15551234567"},
		{"digits only", "15551234567", "15551234567"},
		{"dots and dashes", "555.123-4567", "5551234567"},
		{"empty", "", ""},
		{"no digits", "abc-def", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizePhone(tc.input))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jane", NormalizeName("  Jane "))
	assert.Equal(t, "o'brien", NormalizeName("O'Brien"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Jane Doe", SanitizeString("  Jane Doe \x00"))
	assert.Equal(t, "line\nbreak", SanitizeString("line\nbreak"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
	assert.Equal(t, "abc", TruncateString("abc", 10))
}
