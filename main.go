package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/remymerlhiot/cote-sud-api/internal/cleaner"
	"github.com/remymerlhiot/cote-sud-api/internal/content"
	"github.com/remymerlhiot/cote-sud-api/internal/env"
	"github.com/remymerlhiot/cote-sud-api/internal/events"
	"github.com/remymerlhiot/cote-sud-api/internal/feed"
	"github.com/remymerlhiot/cote-sud-api/internal/logger"
	"github.com/remymerlhiot/cote-sud-api/internal/property"
	"github.com/remymerlhiot/cote-sud-api/internal/redisx"
	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
	"github.com/remymerlhiot/cote-sud-api/internal/store"
	"github.com/remymerlhiot/cote-sud-api/wordpress"
)

func main() {
	cfg, err := env.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(lg)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notices := events.NewInMemory(256)
	go (&events.NoticeLogger{Pub: notices, Logger: lg}).Run(rootCtx)

	wp := wordpress.NewClient(cfg.WordPressURL, wordpress.WithTimeout(cfg.HTTPTimeout), wordpress.WithLogger(lg))

	feedService := &feed.Service{
		Upstream: feed.NewFTPSource(feed.FTPConfig{
			Host:     cfg.FeedFTP.Host,
			Port:     cfg.FeedFTP.Port,
			User:     cfg.FeedFTP.User,
			Password: cfg.FeedFTP.Password,
			Path:     cfg.FeedFTP.Path,
			Timeout:  cfg.FeedFTP.Timeout,
		}),
		Cache:  feed.NewCache(feedStore(rootCtx, cfg, lg), cfg.FeedCacheTTL, time.Now),
		Logger: lg,
	}
	var feedFetcher property.FeedFetcher = feedService
	if cfg.FeedFunctionURL != "" {
		feedFetcher = feed.NewClient(cfg.FeedFunctionURL, cfg.HTTPTimeout)
	}

	deps := RouterDeps{
		Catalog: &property.Catalog{
			WordPress: wp,
			Feed:      feedFetcher,
			Source:    property.ParseSource(cfg.PropertySource),
			Notices:   notices,
			Logger:    lg,
		},
		Content: &content.Service{
			CMS:     wp,
			Options: cleaner.DefaultOptions().WithBaseDomain(cfg.SiteURL),
			Notices: notices,
			Logger:  lg,
		},
		Feed:         feedService,
		ReviewsToken: cfg.ReviewsToken,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit:    cfg.RateLimit,
		Logger:       lg,
	}

	if cfg.PostgresDSN != "" {
		st, err := openStore(rootCtx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer st.Close() //nolint:errcheck
		deps.Reviews = st
		deps.Ingester = &reviews.Service{Scraper: reviews.NewCollyScraper(cfg.ReviewsURL), Store: st, Logger: lg}
	} else {
		lg.Warn("PG_DSN not set, reviews are disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-rootCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	lg.Info("cote-sud-api listening", slog.Int("port", cfg.Port), slog.String("property_source", cfg.PropertySource))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// feedStore picks redis when configured and reachable, memory otherwise.
func feedStore(ctx context.Context, cfg env.Config, lg *slog.Logger) feed.Store {
	if cfg.RedisAddr == "" {
		return feed.NewMemoryStore()
	}
	rc := redisx.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		lg.Warn("redis unreachable, feed cache kept in memory", slog.Any("err", err))
		_ = rc.Close()
		return feed.NewMemoryStore()
	}
	return feed.NewRedisStore(rc)
}

func openStore(ctx context.Context, dsn string) (*store.Store, error) {
	st, err := store.Open(dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := st.Ping(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
