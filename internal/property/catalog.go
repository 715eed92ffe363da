package property

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/remymerlhiot/cote-sud-api/internal/events"
	"github.com/remymerlhiot/cote-sud-api/internal/feed"
	"github.com/remymerlhiot/cote-sud-api/internal/metrics"
	"github.com/remymerlhiot/cote-sud-api/wordpress"
)

var ErrNotFound = errors.New("property: not found")

// Lister is the part of the CMS client the catalog needs.
type Lister interface {
	ListProperties(ctx context.Context, page int) ([]wordpress.Post, int, error)
	PropertyACF(ctx context.Context, id int) (wordpress.Fields, error)
	Attachments(ctx context.Context, parentID int) ([]wordpress.Media, error)
	ACFEntries(ctx context.Context) ([]wordpress.Fields, error)
}

// FeedFetcher returns the current records of the feed proxy.
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]feed.Listing, error)
}

const (
	noticeCMSDown  = "Les biens ne peuvent pas être chargés pour le moment."
	noticeFeedDown = "Le flux des biens est indisponible, une sélection est affichée."
)

// Catalog aggregates the properties of the configured backend.
type Catalog struct {
	WordPress Lister
	Feed      FeedFetcher
	Source    Source
	Notices   events.Publisher
	Logger    *slog.Logger
	// Concurrency bounds the per-property enrichment calls. Defaults to 8.
	Concurrency int
}

type Result struct {
	Properties []Property
	Source     Source
	Notice     string
	// Fallback is set when Properties is the static catalog.
	Fallback bool
}

// List returns every property, most recent first. It never fails: an
// unavailable backend yields an empty (or static) result and a notice.
func (c *Catalog) List(ctx context.Context) Result {
	switch c.Source {
	case SourceFeed:
		return c.listFeed(ctx)
	case SourceACF:
		return c.listACF(ctx)
	default:
		return c.listWordPress(ctx)
	}
}

// Get returns the property with the given id.
func (c *Catalog) Get(ctx context.Context, id int) (Property, error) {
	res := c.List(ctx)
	for _, p := range res.Properties {
		if p.ID == id {
			return p, nil
		}
	}
	return Property{}, ErrNotFound
}

func (c *Catalog) listWordPress(ctx context.Context) Result {
	posts, total, err := c.WordPress.ListProperties(ctx, 1)
	if err != nil {
		return c.unavailable(ctx, SourceWordPress, err)
	}
	for page := 2; page <= total; page++ {
		more, _, err := c.WordPress.ListProperties(ctx, page)
		if err != nil {
			c.log().Warn("property list page failed", slog.Int("page", page), slog.Any("err", err))
			break
		}
		posts = append(posts, more...)
	}

	out := make([]Property, len(posts))
	var g errgroup.Group
	g.SetLimit(c.concurrency())
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			out[i] = c.enrich(ctx, post)
			return nil
		})
	}
	_ = g.Wait()

	sortRecent(out)
	return Result{Properties: out, Source: SourceWordPress}
}

// enrich fills what the listing call left out. Failures keep the partial
// property.
func (c *Catalog) enrich(ctx context.Context, post wordpress.Post) Property {
	if len(post.ACF) == 0 {
		acf, err := c.WordPress.PropertyACF(ctx, post.ID)
		switch {
		case err == nil:
			post.ACF = acf
		case errors.Is(err, wordpress.ErrNotFound):
			c.log().Debug("property has no ACF record", slog.Int("id", post.ID))
		default:
			metrics.EnrichmentFailures.WithLabelValues("acf").Inc()
			c.log().Warn("property ACF fetch failed", slog.Int("id", post.ID), slog.Any("err", err))
		}
	}
	raw := WordPressPost{Post: post}
	p := Normalize(raw)
	if !p.HasOnlyFallbackImage() {
		return p
	}
	media, err := c.WordPress.Attachments(ctx, post.ID)
	if err != nil {
		metrics.EnrichmentFailures.WithLabelValues("attachments").Inc()
		c.log().Warn("property attachments fetch failed", slog.Int("id", post.ID), slog.Any("err", err))
		return p
	}
	if len(imageMedia(media)) == 0 {
		return p
	}
	raw.Attachments = media
	return Normalize(raw)
}

func (c *Catalog) listACF(ctx context.Context) Result {
	entries, err := c.WordPress.ACFEntries(ctx)
	if err != nil {
		return c.unavailable(ctx, SourceACF, err)
	}
	out := make([]Property, 0, len(entries))
	for _, e := range entries {
		out = append(out, Normalize(ACFEntry{Fields: e}))
	}
	sortRecent(out)
	return Result{Properties: out, Source: SourceACF}
}

func (c *Catalog) listFeed(ctx context.Context) Result {
	listings, err := c.Feed.Fetch(ctx)
	if err != nil {
		c.log().Warn("feed proxy failed, serving static catalog", slog.Any("err", err))
		metrics.Fallbacks.WithLabelValues("catalog").Inc()
		c.notify(ctx, events.LevelWarning, SourceFeed, noticeFeedDown)
		return Result{Properties: Fallback(), Source: SourceFeed, Notice: noticeFeedDown, Fallback: true}
	}
	out := make([]Property, 0, len(listings))
	for _, l := range listings {
		out = append(out, Normalize(FeedListing{Listing: l}))
	}
	sortRecent(out)
	return Result{Properties: out, Source: SourceFeed}
}

func (c *Catalog) unavailable(ctx context.Context, src Source, err error) Result {
	c.log().Error("property list failed", slog.String("source", string(src)), slog.Any("err", err))
	c.notify(ctx, events.LevelError, src, noticeCMSDown)
	return Result{Properties: []Property{}, Source: src, Notice: noticeCMSDown}
}

func (c *Catalog) notify(ctx context.Context, lvl events.Level, src Source, msg string) {
	if c.Notices == nil {
		return
	}
	c.Notices.PublishNotice(ctx, events.Notice{Level: lvl, Source: "properties." + string(src), Message: msg})
}

func (c *Catalog) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return 8
}

func (c *Catalog) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// sortRecent orders by publication date, newest first, keeping input order
// on ties.
func sortRecent(ps []Property) {
	slices.SortStableFunc(ps, func(a, b Property) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}
