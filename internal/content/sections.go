package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/remymerlhiot/cote-sud-api/internal/cleaner"
	"github.com/remymerlhiot/cote-sud-api/internal/events"
	"github.com/remymerlhiot/cote-sud-api/internal/extract"
	"github.com/remymerlhiot/cote-sud-api/internal/metrics"
)

const (
	SourceExtracted = "extracted"
	SourceDefault   = "default"
)

const (
	noticePageDown  = "Le contenu de la page est momentanément indisponible."
	noticePagesDown = "Les pages ne peuvent pas être chargées pour le moment."
)

// Extracted is a section read from a page, or the static copy standing in
// for it.
type Extracted[T any] struct {
	Data   T
	Source string
	Notice string
}

func (s *Service) Team(ctx context.Context, slug string) Extracted[[]extract.TeamMember] {
	return extractOr(ctx, s, slug, "team", func(html string) ([]extract.TeamMember, bool) {
		m := extract.TeamMembers(html)
		return m, len(m) > 0
	}, func(rawPage) []extract.TeamMember { return DefaultTeam() })
}

func (s *Service) Difference(ctx context.Context, slug string) Extracted[extract.Difference] {
	return extractOr(ctx, s, slug, "difference", extract.DifferenceSection,
		func(rawPage) extract.Difference { return DefaultDifference() })
}

func (s *Service) Services(ctx context.Context, slug string) Extracted[[]extract.Service] {
	return extractOr(ctx, s, slug, "services", func(html string) ([]extract.Service, bool) {
		out := extract.Services(html)
		return out, len(out) > 0
	}, func(rawPage) []extract.Service { return DefaultServices() })
}

// Background returns the hero background. The featured image, then the
// default picture, stand in when the markup has none.
func (s *Service) Background(ctx context.Context, slug string) Extracted[string] {
	return extractOr(ctx, s, slug, "background", func(html string) (string, bool) {
		u := extract.BackgroundImage(html, extract.HeroLocator)
		return u, u != ""
	}, func(raw rawPage) string {
		if raw.featured != "" {
			return raw.featured
		}
		return DefaultBackground
	})
}

// extractOr runs fn over the page markup, then over the rendered builder
// data, and falls back to def. def gets the zero page when the fetch failed.
func extractOr[T any](ctx context.Context, s *Service, slug, section string, fn func(string) (T, bool), def func(rawPage) T) Extracted[T] {
	log := s.log().With(slog.String("slug", slug), slog.String("section", section))
	raw, err := s.fetch(ctx, slug)
	switch {
	case errors.Is(err, ErrNotFound):
		log.Debug("page not found, using default content")
		metrics.Fallbacks.WithLabelValues(section).Inc()
		return Extracted[T]{Data: def(rawPage{}), Source: SourceDefault}
	case err != nil:
		log.Warn("page fetch failed, using default content", slog.Any("err", err))
		metrics.Fallbacks.WithLabelValues(section).Inc()
		s.publish(ctx, events.LevelWarning, section, noticePageDown)
		return Extracted[T]{Data: def(rawPage{}), Source: SourceDefault, Notice: noticePageDown}
	}

	if v, ok := fn(raw.html); ok {
		return Extracted[T]{Data: v, Source: SourceExtracted}
	}
	if len(raw.builder) > 0 {
		if v, ok := fn(cleaner.BuilderHTML(raw.builder)); ok {
			return Extracted[T]{Data: v, Source: SourceExtracted}
		}
	}
	log.Debug("nothing extracted, using default content")
	metrics.Fallbacks.WithLabelValues(section).Inc()
	return Extracted[T]{Data: def(raw), Source: SourceDefault}
}

func (s *Service) publish(ctx context.Context, lvl events.Level, section, msg string) {
	if s.Notices == nil {
		return
	}
	s.Notices.PublishNotice(ctx, events.Notice{Level: lvl, Source: "content." + section, Message: msg})
}
