package main

import (
	"strings"
	"unicode"
)

// sanitizeTitle strips every character outside {alnum, space, '.', '_', '-'}
// and trims surrounding whitespace. Idempotent: a sanitized title passes
// through unchanged.
func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// downloadName derives the attachment filename the browser will see.
// The result never exceeds MaxDownloadNameLen and always carries the
// engine's extension; missing metadata falls back to a fixed name.
func downloadName(title, ext string) string {
	if title == "" || ext == "" {
		return FallbackDownloadName
	}
	stem := sanitizeTitle(title)
	if stem == "" {
		return FallbackDownloadName
	}
	name := stem + "." + ext
	if len([]rune(name)) > MaxDownloadNameLen {
		runes := []rune(stem)
		if len(runes) > TruncatedStemLen {
			runes = runes[:TruncatedStemLen]
		}
		name = string(runes) + "." + ext
	}
	return name
}
