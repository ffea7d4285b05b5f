package main

import (
	"log"
	"sync/atomic"
	"time"
)

// All DownloadJob field writes happen here, under the store lock; readers
// snapshot under RLock before encoding.

func startJob(job *DownloadJob) {
	jobStore.Lock()
	job.Status = StatusProcessing
	job.StartedAt = time.Now()
	jobStore.jobs[job.ID] = job
	jobStore.Unlock()
	saveJobToRedis(job)
}

// failJob classifies the error, records the terminal state and wakes every
// waiter. The raw detail stays in the job record and the logs; what the
// caller sees is decided later by userMessage.
func failJob(job *DownloadJob, err error) {
	kind := classify(err)

	jobStore.Lock()
	job.Status = StatusFailed
	job.FailKind = kind
	job.Error = err.Error()
	job.CompletedAt = time.Now()
	jobStore.jobs[job.ID] = job
	jobStore.Unlock()
	saveJobToRedis(job)

	atomic.AddInt64(&failedJobs, 1)
	log.Printf("Job %s failed (%s): %v", job.ID, kind, err)
	notifyJobCompletion(job)
}

func completeJob(job *DownloadJob, res *extractionResult, name string) {
	jobStore.Lock()
	job.Status = StatusCompleted
	job.CompletedAt = time.Now()
	job.FilePath = res.FilePath
	job.DownloadName = name
	job.Metadata = &Metadata{
		Title:    res.Title,
		Uploader: res.Uploader,
		Duration: res.Duration,
		Ext:      res.Ext,
	}
	job.Error = ""
	job.FailKind = ""
	jobStore.jobs[job.ID] = job
	jobStore.Unlock()
	saveJobToRedis(job)

	atomic.AddInt64(&completedJobs, 1)
	notifyJobCompletion(job)
}
