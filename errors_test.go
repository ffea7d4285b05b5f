package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want failureKind
	}{
		{"extraction error", extractionError("yt-dlp error: geo restricted"), failExtraction},
		{"artifact missing", artifactMissingError("no file"), failArtifactMissing},
		{"unexpected error", unexpectedError("boom"), failUnexpected},
		{"wrapped pipeline error", fmt.Errorf("stage: %w", extractionError("nope")), failExtraction},
		{"untagged error", errors.New("plain"), failUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.err); got != tc.want {
				t.Errorf("classify() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		kind failureKind
		want int
	}{
		{failValidation, http.StatusBadRequest},
		{failExtraction, http.StatusInternalServerError},
		{failArtifactMissing, http.StatusInternalServerError},
		{failUnexpected, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusCode(tc.kind); got != tc.want {
			t.Errorf("statusCode(%q) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	if got := userMessage(failValidation, ""); got != msgMissingURL {
		t.Errorf("validation message = %q", got)
	}
	if got := userMessage(failExtraction, "geo restricted"); !strings.Contains(got, "geo restricted") {
		t.Errorf("extraction message must carry the engine detail, got %q", got)
	}
	if got := userMessage(failArtifactMissing, "whatever"); got != msgArtifactMissing {
		t.Errorf("artifact-missing message = %q", got)
	}

	// Unexpected failures keep their detail server-side only.
	if got := userMessage(failUnexpected, "stack trace with secrets"); got != msgUnexpected {
		t.Errorf("unexpected message leaked detail: %q", got)
	}
}
