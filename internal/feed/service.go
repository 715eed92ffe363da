package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/remymerlhiot/cote-sud-api/internal/metrics"
)

// ErrNoCache is returned when the vendor is down and nothing was ever cached.
var ErrNoCache = errors.New("feed: upstream unavailable and no cached data")

type Result struct {
	Listings []Listing
	CachedAt time.Time
	// Fresh is false when a snapshot older than the TTL is served because
	// the refresh failed.
	Fresh bool
}

// Service serves the feed from its cache, refreshing it from the
// upstream once the TTL is over.
type Service struct {
	Upstream Upstream
	Cache    *Cache
	Logger   *slog.Logger
	// RefreshTimeout bounds an upstream refresh. Defaults to 30s.
	RefreshTimeout time.Duration

	group singleflight.Group
}

func (s *Service) Serve(ctx context.Context) (Result, error) {
	snap, fresh, ok, err := s.Cache.Get(ctx)
	if err != nil {
		s.log().Warn("feed cache read failed", slog.Any("err", err))
	}
	if ok && fresh {
		metrics.FeedCache.WithLabelValues("fresh").Inc()
		return Result{Listings: snap.Listings, CachedAt: snap.CachedAt, Fresh: true}, nil
	}

	// shared by every waiting caller, detached from the first request
	v, err, _ := s.group.Do("refresh", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout())
		defer cancel()
		listings, err := s.Upstream.Listings(rctx)
		if err != nil {
			return nil, err
		}
		next, err := s.Cache.Put(rctx, listings)
		if err != nil {
			s.log().Warn("feed cache write failed", slog.Any("err", err))
		}
		return next, nil
	})
	if err == nil {
		next := v.(Snapshot)
		metrics.FeedCache.WithLabelValues("refreshed").Inc()
		s.log().Info("feed refreshed", slog.Int("listings", len(next.Listings)))
		return Result{Listings: next.Listings, CachedAt: next.CachedAt, Fresh: true}, nil
	}

	if ok {
		metrics.FeedCache.WithLabelValues("stale").Inc()
		s.log().Warn("feed refresh failed, serving stale cache",
			slog.Time("cached_at", snap.CachedAt), slog.Any("err", err))
		return Result{Listings: snap.Listings, CachedAt: snap.CachedAt, Fresh: false}, nil
	}
	metrics.FeedCache.WithLabelValues("empty").Inc()
	s.log().Error("feed refresh failed with empty cache", slog.Any("err", err))
	return Result{}, fmt.Errorf("%w: %v", ErrNoCache, err)
}

func (s *Service) refreshTimeout() time.Duration {
	if s.RefreshTimeout > 0 {
		return s.RefreshTimeout
	}
	return 30 * time.Second
}

func (s *Service) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Fetch returns the listings Serve would answer with, stale or not, so
// that the catalog can run in the same process as the feed function.
func (s *Service) Fetch(ctx context.Context) ([]Listing, error) {
	res, err := s.Serve(ctx)
	if err != nil {
		return nil, err
	}
	return res.Listings, nil
}
