package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/remymerlhiot/cote-sud-api/internal/env"
	"github.com/remymerlhiot/cote-sud-api/internal/ingest"
	"github.com/remymerlhiot/cote-sud-api/internal/logger"
	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
	"github.com/remymerlhiot/cote-sud-api/internal/store"
)

func main() {
	cfg, err := env.LoadIngester()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(lg)

	st, err := store.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("postgres ping error: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("postgres migrate error: %v", err)
	}
	cancel()

	job := &ingest.Job{
		Reviews:  &reviews.Service{Scraper: reviews.NewCollyScraper(cfg.ReviewsURL), Store: st, Logger: lg},
		Runs:     st,
		Logger:   lg,
		Interval: cfg.Interval,
		Timeout:  cfg.Timeout,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunOnce {
		if err := job.RunOnce(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("ingest run failed: %v", err)
		}
		return
	}

	lg.Info("review ingester started", slog.Duration("interval", cfg.Interval))
	if err := job.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("ingest job stopped with error: %v", err)
	}
}
