// Package ingest runs the review ingestion on a schedule.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
	"github.com/remymerlhiot/cote-sud-api/internal/store"
)

type Ingester interface {
	Ingest(ctx context.Context) (reviews.Outcome, error)
}

// Recorder keeps a trace of every run. Optional.
type Recorder interface {
	RecordRun(ctx context.Context, r store.Run) error
}

type Job struct {
	Reviews Ingester
	Runs    Recorder
	Logger  *slog.Logger
	// Interval <= 0 runs once and returns.
	Interval time.Duration
	// Timeout bounds one run. Defaults to one minute.
	Timeout time.Duration
	Now     func() time.Time
}

func (j *Job) validate() error {
	if j == nil {
		return errors.New("nil ingest job")
	}
	if j.Reviews == nil {
		return errors.New("ingest job missing review service")
	}
	return nil
}

func (j *Job) Run(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	if j.Interval <= 0 {
		return j.RunOnce(ctx)
	}
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()
	j.log().Info("ingest job starting", slog.Duration("interval", j.Interval))
	if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		j.log().Error("ingest job initial run failed", slog.Any("err", err))
	}
	for {
		select {
		case <-ctx.Done():
			j.log().Info("ingest job stopping", slog.Any("reason", ctx.Err()))
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				j.log().Error("ingest job iteration failed", slog.Any("err", err))
			}
		}
	}
}

func (j *Job) RunOnce(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	started := j.now()
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := j.Reviews.Ingest(runCtx)
	if j.Runs != nil {
		run := store.Run{
			Scraped:   out.Scraped,
			Stored:    out.Count,
			Simulated: out.Simulated,
			Note:      out.Note,
			Err:       err,
			StartedAt: started,
		}
		// the run context may be spent already
		if rerr := j.Runs.RecordRun(context.WithoutCancel(ctx), run); rerr != nil {
			j.log().Warn("ingest run not recorded", slog.Any("err", rerr))
		}
	}
	return err
}

func (j *Job) log() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *Job) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}
