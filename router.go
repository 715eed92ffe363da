package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/remymerlhiot/cote-sud-api/http"
	httpv1 "github.com/remymerlhiot/cote-sud-api/http/v1"
	"github.com/remymerlhiot/cote-sud-api/internal/logger"
	"github.com/remymerlhiot/cote-sud-api/internal/metrics"
)

type RouterDeps struct {
	Catalog httpapi.PropertyCatalog
	Content httpapi.ContentService
	// Reviews and Ingester stay nil without a database.
	Reviews      httpapi.ReviewLister
	Feed         httpv1.FeedServer
	Ingester     httpv1.ReviewIngester
	ReviewsToken string
	CORSOrigins  []string
	RateLimit    int
	Logger       *slog.Logger
}

func BuildRouter(d RouterDeps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	rate := d.RateLimit
	if rate <= 0 {
		rate = 100
	}
	r := chi.NewRouter()
	r.Use(logger.Middleware(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(rate, 1*time.Minute))
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	httpapi.RegisterProperties(r, httpapi.PropertiesDeps{Catalog: d.Catalog, Logger: d.Logger})
	httpapi.RegisterPages(r, httpapi.PagesDeps{Content: d.Content, Logger: d.Logger})
	httpapi.RegisterReviews(r, httpapi.ReviewsDeps{Store: d.Reviews, Logger: d.Logger})

	// function-style endpoints, stricter per-IP budget
	httpv1.RegisterFeed(r, httpv1.FeedDeps{Feed: d.Feed, Logger: d.Logger, RateLimit: 30})
	httpv1.RegisterReviews(r, httpv1.ReviewsDeps{Reviews: d.Ingester, Token: d.ReviewsToken, Logger: d.Logger, RateLimit: 5})

	return r
}
