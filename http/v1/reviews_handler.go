package v1

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
)

var ErrUnauthorized = errors.New("unauthorized")

type ReviewIngester interface {
	Ingest(ctx context.Context) (reviews.Outcome, error)
}

type ReviewsDeps struct {
	// Reviews is nil when no store is configured.
	Reviews ReviewIngester
	// Token is the bearer token callers must present. Empty rejects every
	// call.
	Token     string
	Logger    *slog.Logger
	RateLimit int
}

type ReviewsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
	Note    string `json:"note,omitempty"`
	Error   string `json:"error,omitempty"`
}

func RegisterReviews(r chi.Router, d ReviewsDeps) {
	r.Group(func(r chi.Router) {
		if d.RateLimit > 0 {
			r.Use(httprate.LimitByIP(d.RateLimit, time.Minute))
		}
		r.Post("/v1/functions/reviews", func(w http.ResponseWriter, req *http.Request) {
			if err := authorize(req, d.Token); err != nil {
				fail(w, req, http.StatusUnauthorized, err)
				return
			}
			if d.Reviews == nil {
				fail(w, req, http.StatusServiceUnavailable, errors.New("review store not configured"))
				return
			}
			out, err := d.Reviews.Ingest(req.Context())
			if err != nil {
				logOr(d.Logger).Error("review ingestion failed", slog.Any("err", err))
				fail(w, req, http.StatusInternalServerError, err)
				return
			}
			render.JSON(w, req, ReviewsResponse{
				Success: true,
				Message: "Avis synchronisés",
				Count:   out.Count,
				Note:    out.Note,
			})
		})
	})
}

func authorize(req *http.Request, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	got, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(token)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

func fail(w http.ResponseWriter, req *http.Request, status int, err error) {
	render.Status(req, status)
	render.JSON(w, req, ReviewsResponse{Success: false, Error: err.Error()})
}
