package reviews

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/remymerlhiot/cote-sud-api/internal/canon"
)

// Scraper returns the reviews currently published.
type Scraper interface {
	Scrape(ctx context.Context) ([]Review, error)
}

const (
	reviewSelector = `.review, [itemprop="review"], [data-review-id]`
	authorSelector = `.review-author, .author, [itemprop="author"]`
	textSelector   = `.review-text, [itemprop="reviewBody"], .review-body`
	dateSelector   = `[itemprop="datePublished"], .review-date, time`
	starSelector   = `.star.filled, .star-full, .is-filled`
)

var reRating = regexp.MustCompile(`([1-5])(?:[.,]0)?\s*(?:etoile|sur 5|/5|star)`)

// CollyScraper reads reviews off a public review page.
type CollyScraper struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
	Now       func() time.Time
}

func NewCollyScraper(url string) *CollyScraper {
	return &CollyScraper{
		URL:       url,
		UserAgent: "cote-sud-reviews/1.0",
		Timeout:   15 * time.Second,
		Now:       time.Now,
	}
}

func (s *CollyScraper) Scrape(ctx context.Context) ([]Review, error) {
	if s.URL == "" {
		return nil, errors.New("reviews: no review page configured")
	}
	now := s.Now()
	c := colly.NewCollector(colly.UserAgent(s.UserAgent))
	c.SetRequestTimeout(s.Timeout)
	c.OnRequest(func(r *colly.Request) {
		if reqCtx, ok := r.Ctx.GetAny("ctx").(context.Context); ok && reqCtx.Err() != nil {
			r.Abort()
		}
	})

	var (
		out    []Review
		reqErr error
	)
	c.OnHTML(reviewSelector, func(e *colly.HTMLElement) {
		if r, ok := readReview(e, now); ok {
			out = append(out, r)
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			reqErr = fmt.Errorf("reviews: status %d: %w", r.StatusCode, err)
			return
		}
		reqErr = fmt.Errorf("reviews: %w", err)
	})

	collyCtx := colly.NewContext()
	collyCtx.Put("ctx", ctx)
	err := c.Request(http.MethodGet, s.URL, nil, collyCtx, nil)
	if reqErr != nil {
		return nil, reqErr
	}
	if err != nil {
		return nil, fmt.Errorf("reviews: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func readReview(e *colly.HTMLElement, now time.Time) (Review, bool) {
	r := Review{
		Author:    canon.CollapseSpaces(e.ChildText(authorSelector)),
		Text:      canon.CollapseSpaces(e.ChildText(textSelector)),
		Rating:    rating(e),
		Source:    SourceGoogle,
		CreatedAt: now,
	}
	if r.Author == "" || !validRating(r.Rating) {
		return Review{}, false
	}
	date := e.ChildAttr(dateSelector, "content")
	if date == "" {
		date = e.ChildAttr(dateSelector, "datetime")
	}
	if date == "" {
		date = e.ChildText(dateSelector)
	}
	d, ok := ParseDate(date, now)
	if !ok {
		return Review{}, false
	}
	r.Date = d
	return r, true
}

func rating(e *colly.HTMLElement) int {
	if v := e.ChildAttr(`[itemprop="ratingValue"]`, "content"); v != "" {
		if n, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64); err == nil {
			return int(n + 0.5)
		}
	}
	if v := e.Attr("data-rating"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	for _, label := range []string{e.ChildAttr("[aria-label]", "aria-label"), e.Attr("aria-label")} {
		if m := reRating.FindStringSubmatch(canon.Fold(label)); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
	}
	return e.DOM.Find(starSelector).Length()
}
