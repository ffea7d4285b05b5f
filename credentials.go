package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// provisionCookieFile materializes the configured cookie-jar text as a file
// scoped to one job. Returns an empty path when no secret is configured;
// extraction then proceeds unauthenticated, which the engine itself may
// reject for restricted content.
func (p *pipeline) provisionCookieFile(jobID string) (string, error) {
	if p.cfg.CookiesText == "" {
		return "", nil
	}
	// Named outside the job's artifact template so it can never be
	// mistaken for the downloaded media.
	path := filepath.Join(p.cfg.DownloadDir, "cookies-"+jobID+".txt")
	if err := os.WriteFile(path, []byte(p.cfg.CookiesText), 0600); err != nil {
		return "", fmt.Errorf("failed to write cookie file %s: %w", path, err)
	}
	return path, nil
}

// removeCookieFile is best-effort and runs on every exit path. A removal
// failure is logged, never surfaced to the caller.
func removeCookieFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Failed to remove cookie file %s: %v", path, err)
	}
}
