package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/remymerlhiot/cote-sud-api/internal/feed"
)

type FeedServer interface {
	Serve(ctx context.Context) (feed.Result, error)
}

type FeedDeps struct {
	Feed   FeedServer
	Logger *slog.Logger
	// RateLimit is requests per minute and client IP. Zero disables it.
	RateLimit int
}

const feedUnavailable = "Impossible de récupérer les biens immobiliers"

func RegisterFeed(r chi.Router, d FeedDeps) {
	r.Group(func(r chi.Router) {
		if d.RateLimit > 0 {
			r.Use(httprate.LimitByIP(d.RateLimit, time.Minute))
		}
		r.Post("/v1/functions/feed", func(w http.ResponseWriter, req *http.Request) {
			res, err := d.Feed.Serve(req.Context())
			if err != nil {
				logOr(d.Logger).Error("feed function failed", slog.Any("err", err))
				render.Status(req, http.StatusInternalServerError)
				render.JSON(w, req, feed.ErrorResponse(feedUnavailable))
				return
			}
			render.JSON(w, req, feed.NewResponse(res))
		})
	})
}

func logOr(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
