package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// handleDownloadVideo accepts {"url": ...}, runs the whole download through
// the worker pool and streams the merged file back on the same connection.
// The caller blocks for the full extraction+merge duration.
func handleDownloadVideo(pl *pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enableCORS(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			writeJSONError(w, http.StatusBadRequest, msgMissingURL)
			return
		}

		// Shutting down: stop accepting new jobs.
		if ctx.Err() != nil {
			writeJSONError(w, http.StatusServiceUnavailable, msgServerBusy)
			return
		}

		jobID := uuid.New().String()
		job := &DownloadJob{
			ID:        jobID,
			URL:       req.URL,
			Status:    StatusPending,
			CreatedAt: time.Now(),
		}

		jobStore.Lock()
		jobStore.jobs[jobID] = job
		jobStore.Unlock()
		saveJobToRedis(job)

		resultCh := registerJobWaiter(jobID)

		select {
		case jobQueue <- job:
			atomic.AddInt64(&queuedJobs, 1)
		default:
			unregisterJobWaiter(jobID, resultCh)
			jobStore.Lock()
			delete(jobStore.jobs, jobID)
			jobStore.Unlock()
			writeJSONError(w, http.StatusServiceUnavailable, msgServerBusy)
			return
		}

		select {
		case done := <-resultCh:
			if done.Status == StatusCompleted {
				pl.deliver(w, done)
			} else {
				writeJSONError(w, statusCode(done.FailKind), userMessage(done.FailKind, done.Error))
			}
		case <-r.Context().Done():
			// Client gone. The worker finishes on its own and the
			// janitor reaps the artifact later.
			unregisterJobWaiter(jobID, resultCh)
		}
	}
}

// deliver streams a completed job's file as an attachment. The file's
// existence is checked here, not assumed: a completed job whose artifact
// vanished is an artifact-missing failure, not a crash.
func (p *pipeline) deliver(w http.ResponseWriter, job *DownloadJob) {
	jobStore.RLock()
	path, name := job.FilePath, job.DownloadName
	jobStore.RUnlock()

	if _, err := os.Stat(path); err != nil {
		log.Printf("Job %s: artifact missing at delivery: %v", job.ID, err)
		writeJSONError(w, http.StatusInternalServerError, msgArtifactMissing)
		return
	}

	file, err := os.Open(path)
	if err != nil {
		log.Printf("Job %s: error opening artifact: %v", job.ID, err)
		writeJSONError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", DownloadContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	io.Copy(w, file)

	p.scheduleRetention(job)
}

// scheduleRetention removes the media file a configured interval after its
// first successful delivery. Retention 0 keeps files forever and leaves
// housekeeping to the periodic janitor.
func (p *pipeline) scheduleRetention(job *DownloadJob) {
	if p.cfg.FileRetention <= 0 {
		return
	}

	jobStore.Lock()
	first := job.FirstDownloadedAt.IsZero()
	if first {
		job.FirstDownloadedAt = time.Now()
	}
	path, id := job.FilePath, job.ID
	jobStore.Unlock()
	if !first {
		return
	}
	saveJobToRedis(job)

	go func(path, id string) {
		select {
		case <-time.After(p.cfg.FileRetention):
		case <-ctx.Done():
			return
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Job %s: failed to remove delivered file: %v", id, err)
		}
		jobStore.Lock()
		delete(jobStore.jobs, id)
		jobStore.Unlock()
	}(path, id)
}

// handleStatus lets a second client observe a long-running job.
func handleStatus(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	jobID := filepath.Base(r.URL.Path)
	if jobID == "" || jobID == "status" {
		http.Error(w, "Missing job ID", http.StatusBadRequest)
		return
	}

	// Snapshot under the lock; the worker may still be mutating the record.
	jobStore.RLock()
	stored, exists := jobStore.jobs[jobID]
	var job DownloadJob
	if exists {
		job = *stored
	}
	jobStore.RUnlock()
	if !exists {
		if rj, err := getJobFromRedis(jobID); err == nil && rj != nil {
			job = *rj
			exists = true
		}
	}
	if !exists {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&job)
}

// DELETE /delete/{job_id}
func handleDelete(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	jobID := filepath.Base(r.URL.Path)
	if jobID == "" || jobID == "delete" {
		http.Error(w, "Missing job ID", http.StatusBadRequest)
		return
	}

	jobStore.RLock()
	stored, exists := jobStore.jobs[jobID]
	var filePath string
	if exists {
		filePath = stored.FilePath
	}
	jobStore.RUnlock()
	if !exists {
		if rj, err := getJobFromRedis(jobID); err == nil && rj != nil {
			filePath = rj.FilePath
			exists = true
		}
	}
	if !exists {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	if filePath != "" {
		_ = os.Remove(filePath)
	}
	jobStore.Lock()
	delete(jobStore.jobs, jobID)
	jobStore.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"deleted": jobID})
}

// newMux wires the API routes plus the static UI.
func newMux(pl *pipeline, cfg Config) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/download-video", rateLimitMiddleware(handleDownloadVideo(pl)))
	mux.HandleFunc("/status/", rateLimitMiddleware(handleStatus))
	mux.HandleFunc("/delete/", rateLimitMiddleware(handleDelete))
	mux.HandleFunc("/health", handleHealth(cfg))
	mux.HandleFunc("/metrics", handleMetrics(cfg))
	mux.HandleFunc("/stats", handleStats)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	return mux
}
