package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/remymerlhiot/cote-sud-api/internal/metrics"
)

// Store persists reviews. UpsertReviews returns how many were new.
type Store interface {
	UpsertReviews(ctx context.Context, rs []Review) (int, error)
}

// Outcome describes one ingestion.
type Outcome struct {
	Count     int
	Scraped   int
	Simulated bool
	Note      string
}

type Service struct {
	Scraper Scraper
	Store   Store
	Logger  *slog.Logger
	Now     func() time.Time
}

// Ingest scrapes the review page and stores what it finds. A scraping
// failure or an empty page falls back to the simulated dataset; only a
// store failure is an error.
func (s *Service) Ingest(ctx context.Context) (Outcome, error) {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	var out Outcome
	var (
		rs  []Review
		err error
	)
	if s.Scraper != nil {
		rs, err = s.Scraper.Scrape(ctx)
	}
	switch {
	case err != nil:
		log.Warn("review scraping failed, using simulated reviews", slog.Any("err", err))
	case len(rs) == 0:
		log.Warn("no review found, using simulated reviews")
	}
	out.Scraped = len(rs)
	if err != nil || len(rs) == 0 {
		rs = Simulated(s.now())
		out.Simulated = true
		out.Note = SimulatedNote
		metrics.Fallbacks.WithLabelValues("reviews").Inc()
	}

	n, err := s.Store.UpsertReviews(ctx, rs)
	if err != nil {
		return out, fmt.Errorf("store reviews: %w", err)
	}
	out.Count = n
	metrics.ReviewsStored.Add(float64(n))
	log.Info("reviews ingested", slog.Int("stored", n), slog.Int("read", len(rs)), slog.Bool("simulated", out.Simulated))
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
