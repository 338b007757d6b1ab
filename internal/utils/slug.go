// internal/utils/slug.go
package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen. Non-ASCII letters are dropped rather than transliterated.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug appends a short random suffix, used when a slug collides with
// an existing row.
func UniqueSlug(title string) (string, error) {
	suffix, err := GenerateRandomString(6)
	if err != nil {
		return "", err
	}
	base := Slugify(title)
	if base == "" {
		return strings.ToLower(suffix), nil
	}
	return base + "-" + strings.ToLower(suffix), nil
}
