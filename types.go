package main

import "time"

// Metadata is the descriptive information the engine reports for a video.
type Metadata struct {
	Title    string  `json:"title"`
	Uploader string  `json:"uploader,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Ext      string  `json:"ext"`
}

type Request struct {
	URL string `json:"url"`
}

type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// DownloadJob is one request's download from entry to delivery. Its ID
// namespaces every temporary file the job touches, so concurrent jobs
// never collide on disk.
type DownloadJob struct {
	ID                string      `json:"id"`
	URL               string      `json:"url"`
	Status            JobStatus   `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	StartedAt         time.Time   `json:"started_at,omitempty"`
	CompletedAt       time.Time   `json:"completed_at,omitempty"`
	FilePath          string      `json:"file_path,omitempty"`
	DownloadName      string      `json:"download_name,omitempty"`
	FirstDownloadedAt time.Time   `json:"first_downloaded_at,omitempty"`
	FailKind          failureKind `json:"fail_kind,omitempty"`
	Error             string      `json:"error,omitempty"`
	Metadata          *Metadata   `json:"metadata,omitempty"`
}

type HealthStatus struct {
	Status        string `json:"status"`
	ActiveJobs    int64  `json:"active_jobs"`
	QueuedJobs    int64  `json:"queued_jobs"`
	CompletedJobs int64  `json:"completed_jobs"`
	FailedJobs    int64  `json:"failed_jobs"`
	Workers       int    `json:"workers"`
	Uptime        string `json:"uptime"`
}
