package main

import (
	"log"
	"os"
	"time"
)

// startJobCleanup sweeps the store periodically. Records older than the job
// expiration are dropped outright; when a retention window is configured,
// media files whose job completed longer ago than the window are removed
// even while the record itself is still live.
func startJobCleanup(cfg Config) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cleanupOldJobs(cfg)
		case <-ctx.Done():
			return
		}
	}
}

func cleanupOldJobs(cfg Config) {
	now := time.Now()
	recordCutoff := now.Add(-cfg.JobExpiration)

	var stale []string
	expired := 0
	jobStore.Lock()
	for id, job := range jobStore.jobs {
		if job.CreatedAt.Before(recordCutoff) {
			if cfg.FileRetention > 0 && job.FilePath != "" {
				stale = append(stale, job.FilePath)
			}
			delete(jobStore.jobs, id)
			expired++
			continue
		}
		// Retention sweep: the file goes once the job has been terminal
		// longer than the window, but the record stays queryable.
		if cfg.FileRetention > 0 && job.FilePath != "" &&
			!job.CompletedAt.IsZero() && job.CompletedAt.Before(now.Add(-cfg.FileRetention)) {
			stale = append(stale, job.FilePath)
			job.FilePath = ""
		}
	}
	jobStore.Unlock()

	for _, path := range stale {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Cleanup: failed to remove %s: %v", path, err)
		}
	}
	if expired > 0 {
		log.Printf("Cleanup: expired %d job(s)", expired)
	}
}
