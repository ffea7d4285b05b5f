package main

import (
	"strings"
	"testing"
)

func TestDownloadName(t *testing.T) {
	cases := []struct {
		name  string
		title string
		ext   string
		want  string
	}{
		{"illegal characters stripped", "My Video! #1", "mp4", "My Video 1.mp4"},
		{"plain title", "lecture 01", "mp4", "lecture 01.mp4"},
		{"unicode letters kept", "Vídeo de teste", "mp4", "Vídeo de teste.mp4"},
		{"surrounding whitespace trimmed", "  spaced out  ", "mp4", "spaced out.mp4"},
		{"missing title falls back", "", "mp4", FallbackDownloadName},
		{"missing ext falls back", "some title", "", FallbackDownloadName},
		{"title of only symbols falls back", "!!!???", "mp4", FallbackDownloadName},
		{"dots underscores hyphens survive", "a_b-c.d", "mp4", "a_b-c.d.mp4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := downloadName(tc.title, tc.ext)
			if got != tc.want {
				t.Errorf("downloadName(%q, %q) = %q, want %q", tc.title, tc.ext, got, tc.want)
			}
		})
	}
}

func TestDownloadNameLengthBound(t *testing.T) {
	title := strings.Repeat("a", 200)
	got := downloadName(title, "mp4")

	if n := len([]rune(got)); n > MaxDownloadNameLen {
		t.Errorf("name length %d exceeds %d", n, MaxDownloadNameLen)
	}
	if !strings.HasSuffix(got, ".mp4") {
		t.Errorf("truncated name %q lost its extension", got)
	}
	if want := strings.Repeat("a", TruncatedStemLen) + ".mp4"; got != want {
		t.Errorf("got %q, want stem truncated to %d characters", got, TruncatedStemLen)
	}
}

func TestDownloadNameExactlyAtLimit(t *testing.T) {
	// 146-char stem + "." + "mp4" = 150, no truncation needed.
	title := strings.Repeat("b", 146)
	got := downloadName(title, "mp4")
	if got != title+".mp4" {
		t.Errorf("name at the limit should pass through unchanged, got %q", got)
	}
}

func TestSanitizeTitleIdempotent(t *testing.T) {
	titles := []string{
		"My Video! #1",
		"Vídeo de teste",
		"already-clean_name.v2",
		"  spaced  ",
		"",
	}
	for _, title := range titles {
		once := sanitizeTitle(title)
		twice := sanitizeTitle(once)
		if once != twice {
			t.Errorf("sanitizeTitle not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}
