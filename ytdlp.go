package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// extractionResult is what the engine hands back on success: a verified
// local file plus the metadata the filename is derived from.
type extractionResult struct {
	FilePath string
	Title    string
	Ext      string
	Uploader string
	Duration float64
}

type extractFunc func(ctx context.Context, url string, jc jobConfig) (*extractionResult, error)

// ytdlpInvoker runs the yt-dlp binary synchronously. Network failures,
// geo-blocks and auth errors come back as extraction failures with the
// engine's own stderr; a success report without a file on disk is an
// artifact-missing failure, never silently accepted.
type ytdlpInvoker struct {
	binPath string
}

func (d *ytdlpInvoker) extract(ctx context.Context, url string, jc jobConfig) (*extractionResult, error) {
	cmd := exec.CommandContext(ctx, d.binPath, jc.args(url)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, extractionError("yt-dlp error: %v | %s", err, strings.TrimSpace(stderr.String()))
	}

	res, err := parseEngineOutput(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	path, err := resolveArtifact(jc.OutputTemplate, res.FilePath)
	if err != nil {
		return nil, err
	}
	res.FilePath = path
	return res, nil
}

// parseEngineOutput decodes the single-line JSON report that --print-json
// emits after the download. A malformed report is an unexpected failure:
// the engine broke its contract, not the caller.
func parseEngineOutput(out []byte) (*extractionResult, error) {
	var info struct {
		Title              string  `json:"title"`
		Ext                string  `json:"ext"`
		Uploader           string  `json:"uploader"`
		Duration           float64 `json:"duration"`
		Filename           string  `json:"_filename"`
		RequestedDownloads []struct {
			Filepath string `json:"filepath"`
		} `json:"requested_downloads"`
	}
	line := lastJSONLine(out)
	if line == "" {
		return nil, unexpectedError("yt-dlp produced no JSON report")
	}
	if err := json.Unmarshal([]byte(line), &info); err != nil {
		return nil, unexpectedError("yt-dlp JSON parse error: %v", err)
	}

	path := info.Filename
	if len(info.RequestedDownloads) > 0 && info.RequestedDownloads[0].Filepath != "" {
		path = info.RequestedDownloads[0].Filepath
	}
	return &extractionResult{
		FilePath: path,
		Title:    info.Title,
		Ext:      info.Ext,
		Uploader: info.Uploader,
		Duration: info.Duration,
	}, nil
}

// lastJSONLine picks the report line out of stdout. yt-dlp may print
// progress noise before it; the JSON report is the last non-empty line.
func lastJSONLine(out []byte) string {
	lines := strings.Split(string(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "{") {
			return line
		}
	}
	return ""
}

// resolveArtifact verifies the reported path exists. The report can carry
// the pre-merge extension, so when it misses, the job's output template is
// globbed before giving up with an artifact-missing failure.
func resolveArtifact(outputTemplate, reported string) (string, error) {
	if reported != "" {
		if _, err := os.Stat(reported); err == nil {
			return reported, nil
		}
	}

	pattern := strings.Replace(outputTemplate, "%(ext)s", "*", 1)
	matches, _ := filepath.Glob(pattern)
	for _, m := range matches {
		// Skip in-flight engine leftovers.
		if strings.HasSuffix(m, ".part") || strings.HasSuffix(m, ".ytdl") {
			continue
		}
		return m, nil
	}
	return "", artifactMissingError("no file found for template %s", outputTemplate)
}
