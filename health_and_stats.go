package main

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

func handleHealth(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enableCORS(w)
		status := "healthy"
		if atomic.LoadInt64(&activeJobs) > int64(cfg.Workers*2) {
			status = "overloaded"
		}
		health := HealthStatus{
			Status:        status,
			ActiveJobs:    atomic.LoadInt64(&activeJobs),
			QueuedJobs:    atomic.LoadInt64(&queuedJobs),
			CompletedJobs: atomic.LoadInt64(&completedJobs),
			FailedJobs:    atomic.LoadInt64(&failedJobs),
			Workers:       cfg.Workers,
			Uptime:        time.Since(serverStartTime).String(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	}
}

func handleMetrics(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enableCORS(w)
		metrics := map[string]interface{}{
			"active_jobs":    atomic.LoadInt64(&activeJobs),
			"queued_jobs":    atomic.LoadInt64(&queuedJobs),
			"completed_jobs": atomic.LoadInt64(&completedJobs),
			"failed_jobs":    atomic.LoadInt64(&failedJobs),
			"workers":        cfg.Workers,
			"queue_capacity": cfg.QueueCapacity,
			"rate_limit":     RequestsPerSecond,
			"uptime_seconds": time.Since(serverStartTime).Seconds(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics)
	}
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)
	jobStore.RLock()
	totalJobs := len(jobStore.jobs)
	jobStore.RUnlock()

	stats := map[string]interface{}{
		"total_jobs":     totalJobs,
		"active_jobs":    atomic.LoadInt64(&activeJobs),
		"queued_jobs":    atomic.LoadInt64(&queuedJobs),
		"completed_jobs": atomic.LoadInt64(&completedJobs),
		"failed_jobs":    atomic.LoadInt64(&failedJobs),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
