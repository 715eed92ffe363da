// Package content assembles canonical pages from the CMS and runs the
// section extractors over them, falling back to the agency's static copy.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/remymerlhiot/cote-sud-api/internal/cleaner"
	"github.com/remymerlhiot/cote-sud-api/internal/events"
	"github.com/remymerlhiot/cote-sud-api/internal/metrics"
	"github.com/remymerlhiot/cote-sud-api/wordpress"
)

var ErrNotFound = errors.New("content: page not found")

// Page is what the site renders. Content is always cleaned.
type Page struct {
	Slug          string          `json:"slug"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	FeaturedImage string          `json:"featuredImage,omitempty"`
	BuilderData   json.RawMessage `json:"builderData,omitempty"`
	Media         []string        `json:"media"`
	// Notice is set when the CMS could not be reached and the page is empty.
	Notice string `json:"notice,omitempty"`
}

// PageList is the standard pages collection. Notice is set when the CMS
// could not be reached.
type PageList struct {
	Pages  []Page
	Notice string
}

// CMS is the part of the WordPress client pages are read from.
type CMS interface {
	CustomPage(ctx context.Context, slug string) (*wordpress.CustomPage, error)
	PageBySlug(ctx context.Context, slug string) (*wordpress.Page, error)
	ListPages(ctx context.Context, page int) ([]wordpress.Page, int, error)
}

type Service struct {
	CMS     CMS
	Options cleaner.Options
	Notices events.Publisher
	Logger  *slog.Logger
}

// rawPage keeps the uncleaned markup around for the extractors.
type rawPage struct {
	slug     string
	title    string
	html     string
	featured string
	builder  json.RawMessage
	media    []string
}

// Page returns the page with the given slug: the plugin endpoint first,
// the standard lookup second. The only error is ErrNotFound; an unreachable
// CMS gives an empty page carrying a notice.
func (s *Service) Page(ctx context.Context, slug string) (Page, error) {
	raw, err := s.fetch(ctx, slug)
	if err != nil {
		return s.unavailable(ctx, slug, err)
	}
	return s.assemble(raw, cleaner.Clean(raw.html, s.Options)), nil
}

// Section returns the page with Content narrowed to the first match of
// selector, or the whole cleaned content when nothing matches.
func (s *Service) Section(ctx context.Context, slug, selector string) (Page, error) {
	raw, err := s.fetch(ctx, slug)
	if err != nil {
		return s.unavailable(ctx, slug, err)
	}
	return s.assemble(raw, cleaner.ExtractSection(raw.html, selector, raw.builder, s.Options)), nil
}

// Pages returns every standard page, cleaned. It never fails: an
// unreachable CMS gives an empty list and a notice.
func (s *Service) Pages(ctx context.Context) PageList {
	pages, total, err := s.CMS.ListPages(ctx, 1)
	if err != nil {
		s.log().Error("page list failed", slog.Any("err", err))
		metrics.Fallbacks.WithLabelValues("pages").Inc()
		s.publish(ctx, events.LevelError, "pages", noticePagesDown)
		return PageList{Pages: []Page{}, Notice: noticePagesDown}
	}
	for n := 2; n <= total; n++ {
		more, _, err := s.CMS.ListPages(ctx, n)
		if err != nil {
			s.log().Warn("page list page failed", slog.Int("page", n), slog.Any("err", err))
			break
		}
		pages = append(pages, more...)
	}
	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		raw := fromStandard(p)
		out = append(out, s.assemble(raw, cleaner.Clean(raw.html, s.Options)))
	}
	return PageList{Pages: out}
}

// unavailable passes ErrNotFound through and turns any other fetch error
// into the empty page.
func (s *Service) unavailable(ctx context.Context, slug string, err error) (Page, error) {
	if errors.Is(err, ErrNotFound) {
		return Page{}, err
	}
	s.log().Error("page fetch failed", slog.String("slug", slug), slog.Any("err", err))
	metrics.Fallbacks.WithLabelValues("page").Inc()
	s.publish(ctx, events.LevelError, "page", noticePageDown)
	return Page{Slug: slug, Media: []string{}, Notice: noticePageDown}, nil
}

func (s *Service) fetch(ctx context.Context, slug string) (rawPage, error) {
	custom, err := s.CMS.CustomPage(ctx, slug)
	if err == nil && custom != nil {
		return fromCustom(slug, custom), nil
	}
	if err != nil && !errors.Is(err, wordpress.ErrNotFound) {
		s.log().Debug("custom page endpoint failed", slog.String("slug", slug), slog.Any("err", err))
	}

	page, err := s.CMS.PageBySlug(ctx, slug)
	switch {
	case errors.Is(err, wordpress.ErrNotFound):
		return rawPage{}, ErrNotFound
	case err != nil:
		return rawPage{}, fmt.Errorf("page %q: %w", slug, err)
	}
	return fromStandard(*page), nil
}

func fromCustom(slug string, p *wordpress.CustomPage) rawPage {
	raw := rawPage{
		slug:    slug,
		title:   p.Title,
		html:    p.Content,
		builder: p.ElementorData,
		media:   p.Media,
	}
	if p.FeaturedImage != nil {
		raw.featured = *p.FeaturedImage
	}
	if raw.html == "" && len(raw.builder) > 0 {
		raw.html = cleaner.BuilderHTML(raw.builder)
	}
	return raw
}

func fromStandard(p wordpress.Page) rawPage {
	raw := rawPage{
		slug:     p.Slug,
		title:    p.Title.String(),
		html:     p.Content.String(),
		featured: p.FeaturedImage(),
	}
	if raw.featured != "" {
		raw.media = []string{raw.featured}
	}
	return raw
}

func (s *Service) assemble(raw rawPage, content string) Page {
	media := raw.media
	if media == nil {
		media = []string{}
	}
	return Page{
		Slug:          raw.slug,
		Title:         raw.title,
		Content:       content,
		FeaturedImage: raw.featured,
		BuilderData:   raw.builder,
		Media:         media,
	}
}

func (s *Service) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
