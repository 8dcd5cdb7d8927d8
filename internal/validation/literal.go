// Package validation keeps generated text safe to embed in a single-line SQL
// string literal.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Literal validation errors
var (
	ErrInvalidUnicodeCategory = fmt.Errorf("ErrInvalidUnicodeCategory")
	ErrInvalidUTF8            = fmt.Errorf("ErrInvalidUTF8")
)

// Blocked Unicode categories for literals
var blockedCategories = []*unicode.RangeTable{
	unicode.Cc, // Control characters
	unicode.Cf, // Format characters (zero-width, etc.)
	unicode.Cs, // Surrogate characters
	unicode.Co, // Private use characters
}

// Whitespace controls that become a plain space instead of being dropped
var spacedRunes = map[rune]bool{
	'\t': true,
	'\n': true,
	'\r': true,
}

// Sanitize returns s in NFC form with every blocked rune removed. Tabs and
// line breaks turn into single spaces so one row stays on one line.
// A string that already passes ValidateLiteral is returned unchanged.
func Sanitize(s string) string {
	if ValidateLiteral(s) == nil {
		return s
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	normalized := norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if spacedRunes[r] {
			b.WriteByte(' ')
			continue
		}
		if unicode.IsOneOf(blockedCategories, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateLiteral reports whether s can be written as is: valid UTF-8, already
// normalized, and free of blocked runes
func ValidateLiteral(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	for _, r := range s {
		if unicode.IsOneOf(blockedCategories, r) {
			return ErrInvalidUnicodeCategory
		}
	}
	if !norm.NFC.IsNormalString(s) {
		return fmt.Errorf("literal %q is not NFC normalized", s)
	}
	return nil
}
