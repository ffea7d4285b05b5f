package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := loadConfig()
	if cfg.CookiesText == "" {
		log.Println("⚠️  YTDLP_COOKIES not set, downloads run unauthenticated")
	}

	if err := os.MkdirAll(cfg.DownloadDir, 0755); err != nil {
		log.Fatalf("Failed to create download directory %s: %v", cfg.DownloadDir, err)
	}

	initRedis(cfg)

	pl := newPipeline(cfg)
	jobQueue = make(chan *DownloadJob, cfg.QueueCapacity)
	for i := 0; i < cfg.Workers; i++ {
		go startWorker(i, pl)
	}
	go startJobCleanup(cfg)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newMux(pl, cfg),
	}
	setupGracefulShutdown(srv)

	log.Printf("🚀 Server running on %s with %d workers", cfg.Addr, cfg.Workers)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func setupGracefulShutdown(srv *http.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("🛑 Graceful shutdown initiated...")

		shutdownCtx, done := context.WithTimeout(context.Background(), 30*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown error: %v", err)
		}

		// The queue is never closed: a handler that raced past the ctx
		// check may still be enqueueing. cancel() stops the workers'
		// extractions and the process exit reaps the goroutines.
		cancel()
		log.Println("✅ Graceful shutdown completed")
	}()
}
