package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
)

type ReviewLister interface {
	ListReviews(ctx context.Context, limit int) ([]reviews.Review, error)
}

type ReviewsDeps struct {
	// Store is nil when no database is configured.
	Store  ReviewLister
	Logger *slog.Logger
}

const defaultReviewLimit = 50

func RegisterReviews(r chi.Router, d ReviewsDeps) {
	r.Get("/api/reviews", func(w http.ResponseWriter, req *http.Request) {
		limit := defaultReviewLimit
		if v := req.URL.Query().Get("limit"); v != "" {
			if i, err := strconv.Atoi(v); err == nil && i > 0 {
				limit = i
			}
		}
		list := []reviews.Review{}
		if d.Store != nil {
			rs, err := d.Store.ListReviews(req.Context(), limit)
			if err != nil {
				logOr(d.Logger).Error("review list failed", slog.Any("err", err))
				writeError(w, req, http.StatusInternalServerError, "store_error", err.Error())
				return
			}
			list = rs
		}
		render.JSON(w, req, map[string]any{"ok": true, "count": len(list), "reviews": list})
	})
}
