package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain ASCII",
			input:    "Kuala Lumpur",
			expected: "Kuala Lumpur",
		},
		{
			name:     "apostrophe kept for the writer to escape",
			input:    "O'Connor",
			expected: "O'Connor",
		},
		{
			name:     "null byte removed",
			input:    "test\x00null",
			expected: "testnull",
		},
		{
			name:     "zero-width space removed",
			input:    "zero\u200Bwidth",
			expected: "zerowidth",
		},
		{
			name:     "line break becomes space",
			input:    "first\nsecond",
			expected: "first second",
		},
		{
			name:     "decomposed accent composed",
			input:    "Jose\u0301",
			expected: "Jos\u00e9",
		},
		{
			name:     "invalid utf8 dropped",
			input:    "bad\xffbyte",
			expected: "badbyte",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.input)
			assert.Equal(t, tc.expected, got)
			assert.NoError(t, ValidateLiteral(got))
		})
	}
}

func TestValidateLiteral(t *testing.T) {
	assert.NoError(t, ValidateLiteral("José María"))
	assert.ErrorIs(t, ValidateLiteral("control\x08char"), ErrInvalidUnicodeCategory)
	assert.ErrorIs(t, ValidateLiteral("test\u200Dformat"), ErrInvalidUnicodeCategory)
	assert.ErrorIs(t, ValidateLiteral("bad\xff"), ErrInvalidUTF8)
	assert.Error(t, ValidateLiteral("Jose\u0301"))
}

func TestSanitizeKeepsCleanLiterals(t *testing.T) {
	clean := "O'Brien Cafe, Z\u00fcrich"
	assert.NoError(t, ValidateLiteral(clean))
	assert.Equal(t, clean, Sanitize(clean))

	// Decomposed input fails validation and is normalized instead
	assert.Error(t, ValidateLiteral("Jose\u0301"))
	assert.Equal(t, "Jos\u00e9", Sanitize("Jose\u0301"))
}
