package main

import (
	"os"
	"strconv"
	"time"
)

// Fixed service contract. Callers rely on these, so they are consts
// rather than tuning knobs.
const (
	FormatPolicy         = "bestvideo+bestaudio/best"
	MergeFormat          = "mp4"
	EngineRetries        = 5
	DownloadContentType  = "video/mp4"
	MaxDownloadNameLen   = 150
	TruncatedStemLen     = 145
	FallbackDownloadName = "video_baixado.mp4"
)

// Tuning defaults.
const (
	DefaultWorkerPoolSize = 5
	DefaultQueueCapacity  = 100

	// Rate Limiting
	RequestsPerSecond = 100
	BurstSize         = 200

	DefaultExtractTimeout = 30 * time.Minute
	DefaultJobExpiration  = 24 * time.Hour

	CleanupInterval = 1 * time.Hour
)

// Config carries everything the pipeline needs. It is built once in main
// and injected at construction; nothing below main reads the environment.
type Config struct {
	Addr        string
	DownloadDir string
	StaticDir   string

	YtdlpPath   string
	CookiesText string

	Workers        int
	QueueCapacity  int
	ExtractTimeout time.Duration

	FileRetention time.Duration
	JobExpiration time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func loadConfig() Config {
	return Config{
		Addr:           envStr("ADDR", ":8080"),
		DownloadDir:    envStr("DOWNLOAD_DIR", "downloads"),
		StaticDir:      envStr("STATIC_DIR", "docs"),
		YtdlpPath:      envStr("YTDLP_PATH", "yt-dlp"),
		CookiesText:    os.Getenv("YTDLP_COOKIES"),
		Workers:        envInt("WORKERS", DefaultWorkerPoolSize),
		QueueCapacity:  envInt("QUEUE_CAPACITY", DefaultQueueCapacity),
		ExtractTimeout: envDuration("EXTRACT_TIMEOUT", DefaultExtractTimeout),
		FileRetention:  envDuration("FILE_RETENTION", 0),
		JobExpiration:  envDuration("JOB_EXPIRATION", DefaultJobExpiration),
		RedisAddr:      envStr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
