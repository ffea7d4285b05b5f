package main

import (
	"context"
	"log"
	"os"
	"sync/atomic"
)

// pipeline holds the per-process download machinery. Configuration is
// injected here once at construction; the extract function is swappable so
// the engine stays an opaque capability.
type pipeline struct {
	cfg     Config
	extract extractFunc
}

func newPipeline(cfg Config) *pipeline {
	inv := &ytdlpInvoker{binPath: cfg.YtdlpPath}
	return &pipeline{cfg: cfg, extract: inv.extract}
}

func startWorker(workerID int, pl *pipeline) {
	log.Printf("Worker %d started.", workerID)
	for job := range jobQueue {
		pl.process(job, workerID)
	}
}

// process runs one job through the whole pipeline: credentials, job config,
// extraction, artifact verification, filename resolution. The cookie file
// is removed on every exit path, panics included; a job failure is never
// fatal to the process.
func (p *pipeline) process(job *DownloadJob, workerID int) {
	atomic.AddInt64(&activeJobs, 1)
	atomic.AddInt64(&queuedJobs, -1)
	defer atomic.AddInt64(&activeJobs, -1)

	defer func() {
		if r := recover(); r != nil {
			failJob(job, unexpectedError("panic while processing job: %v", r))
		}
	}()

	log.Printf("Worker %d: Processing job %s for URL: %s", workerID, job.ID, job.URL)

	startJob(job)

	if err := os.MkdirAll(p.cfg.DownloadDir, 0755); err != nil {
		failJob(job, unexpectedError("error creating download directory: %v", err))
		return
	}

	res, err := p.runExtraction(job)
	if err != nil {
		failJob(job, err)
		return
	}

	name := downloadName(res.Title, res.Ext)
	completeJob(job, res, name)

	log.Printf("Worker %d: Job %s completed successfully: %s", workerID, job.ID, name)
}

// runExtraction provisions the job's credential, builds the engine config
// and invokes the engine. The credential is removed before this function
// returns, so by the time the job reaches a terminal state no cookie file
// remains on disk, whatever the outcome.
func (p *pipeline) runExtraction(job *DownloadJob) (*extractionResult, error) {
	cookieFile, err := p.provisionCookieFile(job.ID)
	if err != nil {
		return nil, unexpectedError("%v", err)
	}
	defer removeCookieFile(cookieFile)

	jc := buildJobConfig(job.ID, p.cfg.DownloadDir, cookieFile)

	runCtx := ctx
	if p.cfg.ExtractTimeout > 0 {
		var cancelRun context.CancelFunc
		runCtx, cancelRun = context.WithTimeout(ctx, p.cfg.ExtractTimeout)
		defer cancelRun()
	}

	return p.extract(runCtx, job.URL, jc)
}
