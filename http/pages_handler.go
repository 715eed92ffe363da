package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/remymerlhiot/cote-sud-api/internal/content"
	"github.com/remymerlhiot/cote-sud-api/internal/extract"
)

type ContentService interface {
	Pages(ctx context.Context) content.PageList
	Page(ctx context.Context, slug string) (content.Page, error)
	Section(ctx context.Context, slug, selector string) (content.Page, error)
	Team(ctx context.Context, slug string) content.Extracted[[]extract.TeamMember]
	Difference(ctx context.Context, slug string) content.Extracted[extract.Difference]
	Services(ctx context.Context, slug string) content.Extracted[[]extract.Service]
	Background(ctx context.Context, slug string) content.Extracted[string]
}

type PagesDeps struct {
	Content ContentService
	Logger  *slog.Logger
}

func RegisterPages(r chi.Router, d PagesDeps) {
	r.Route("/api/pages", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			res := d.Content.Pages(req.Context())
			body := map[string]any{"ok": true, "count": len(res.Pages), "pages": res.Pages}
			if res.Notice != "" {
				body["notice"] = res.Notice
			}
			render.JSON(w, req, body)
		})

		r.Get("/{slug}", func(w http.ResponseWriter, req *http.Request) {
			slug := chi.URLParam(req, "slug")
			var (
				p   content.Page
				err error
			)
			if sel := req.URL.Query().Get("section"); sel != "" {
				p, err = d.Content.Section(req.Context(), slug, sel)
			} else {
				p, err = d.Content.Page(req.Context(), slug)
			}
			switch {
			case errors.Is(err, content.ErrNotFound):
				writeError(w, req, http.StatusNotFound, "not_found", "no page with slug "+slug)
				return
			case err != nil:
				logOr(d.Logger).Error("page fetch failed", slog.String("slug", slug), slog.Any("err", err))
				writeError(w, req, http.StatusBadGateway, "upstream_error", err.Error())
				return
			}
			render.JSON(w, req, p)
		})

		r.Get("/{slug}/team", func(w http.ResponseWriter, req *http.Request) {
			res := d.Content.Team(req.Context(), chi.URLParam(req, "slug"))
			render.JSON(w, req, extracted(res, "members", res.Data))
		})
		r.Get("/{slug}/difference", func(w http.ResponseWriter, req *http.Request) {
			res := d.Content.Difference(req.Context(), chi.URLParam(req, "slug"))
			body := extracted(res, "title", res.Data.Title)
			body["paragraphs"] = res.Data.Paragraphs
			render.JSON(w, req, body)
		})
		r.Get("/{slug}/services", func(w http.ResponseWriter, req *http.Request) {
			res := d.Content.Services(req.Context(), chi.URLParam(req, "slug"))
			render.JSON(w, req, extracted(res, "services", res.Data))
		})
		r.Get("/{slug}/background", func(w http.ResponseWriter, req *http.Request) {
			res := d.Content.Background(req.Context(), chi.URLParam(req, "slug"))
			render.JSON(w, req, extracted(res, "image", res.Data))
		})
	})
}

func extracted[T any](res content.Extracted[T], key string, v any) map[string]any {
	body := map[string]any{"source": res.Source, key: v}
	if res.Notice != "" {
		body["notice"] = res.Notice
	}
	return body
}
