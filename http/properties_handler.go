package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/remymerlhiot/cote-sud-api/internal/property"
)

type PropertyCatalog interface {
	List(ctx context.Context) property.Result
	Get(ctx context.Context, id int) (property.Property, error)
}

type PropertiesDeps struct {
	Catalog PropertyCatalog
	Logger  *slog.Logger
}

func RegisterProperties(r chi.Router, d PropertiesDeps) {
	r.Get("/api/properties", func(w http.ResponseWriter, req *http.Request) {
		res := d.Catalog.List(req.Context())
		body := map[string]any{
			"ok":         true,
			"count":      len(res.Properties),
			"properties": res.Properties,
			"source":     res.Source,
		}
		if res.Notice != "" {
			body["notice"] = res.Notice
		}
		if res.Fallback {
			body["fallback"] = true
		}
		render.JSON(w, req, body)
	})

	r.Get("/api/properties/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(req, "id"))
		if err != nil || id <= 0 {
			writeError(w, req, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
			return
		}
		p, err := d.Catalog.Get(req.Context(), id)
		if errors.Is(err, property.ErrNotFound) {
			writeError(w, req, http.StatusNotFound, "not_found", "")
			return
		}
		if err != nil {
			logOr(d.Logger).Error("property lookup failed", slog.Int("id", id), slog.Any("err", err))
			writeError(w, req, http.StatusBadGateway, "upstream_error", err.Error())
			return
		}
		render.JSON(w, req, p)
	})
}

func logOr(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
