package main

import (
	"path/filepath"
	"strconv"
)

// jobConfig is the full configuration handed to the extraction engine for
// one job. The output template is keyed by job ID so concurrent jobs never
// collide in the download directory.
type jobConfig struct {
	OutputTemplate string
	FormatPolicy   string
	MergeFormat    string
	Retries        int
	NoPlaylist     bool
	CookieFile     string
}

func buildJobConfig(jobID, downloadDir, cookieFile string) jobConfig {
	return jobConfig{
		OutputTemplate: filepath.Join(downloadDir, jobID+".%(ext)s"),
		FormatPolicy:   FormatPolicy,
		MergeFormat:    MergeFormat,
		Retries:        EngineRetries,
		NoPlaylist:     true,
		CookieFile:     cookieFile,
	}
}

// args renders the engine command line for the given URL.
func (jc jobConfig) args(url string) []string {
	args := []string{
		"-f", jc.FormatPolicy,
		"--merge-output-format", jc.MergeFormat,
		"--retries", strconv.Itoa(jc.Retries),
		"-o", jc.OutputTemplate,
		"--print-json",
		"--no-warnings",
	}
	if jc.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if jc.CookieFile != "" {
		args = append(args, "--cookies", jc.CookieFile)
	}
	return append(args, url)
}
