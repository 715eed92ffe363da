package reviews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const reviewPage = `<html><body>
<div class="review" itemprop="review">
	<span class="review-author">Nathalie B.</span>
	<meta itemprop="ratingValue" content="5">
	<meta itemprop="datePublished" content="2024-09-12">
	<p class="review-text">Une équipe   à l'écoute.</p>
</div>
<div class="review" data-rating="4">
	<span class="review-author">Olivier M.</span>
	<span class="review-date">il y a 2 semaines</span>
	<p class="review-text">Très bon accompagnement.</p>
</div>
<div class="review">
	<span class="review-author">Sans note</span>
	<span class="review-date">hier</span>
</div>
<div class="review">
	<span class="review-author">Camille D.</span>
	<span aria-label="Noté 3,0 sur 5"></span>
	<time datetime="2023-11-27">27/11/2023</time>
</div>
</body></html>`

func newTestScraper(url string) *CollyScraper {
	s := NewCollyScraper(url)
	s.Now = func() time.Time { return time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCollyScraper(t *testing.T) {
	assert := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(reviewPage))
	}))
	defer srv.Close()

	rs, err := newTestScraper(srv.URL).Scrape(context.Background())
	assert.NoError(err)
	assert.Len(rs, 3)

	assert.Equal("Nathalie B.", rs[0].Author)
	assert.Equal(5, rs[0].Rating)
	assert.Equal("Une équipe à l'écoute.", rs[0].Text)
	assert.Equal(time.Date(2024, time.September, 12, 0, 0, 0, 0, time.UTC), rs[0].Date)
	assert.Equal(SourceGoogle, rs[0].Source)

	assert.Equal(4, rs[1].Rating)
	assert.Equal(time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), rs[1].Date)

	assert.Equal("Camille D.", rs[2].Author)
	assert.Equal(3, rs[2].Rating)
	assert.Equal(time.Date(2023, time.November, 27, 0, 0, 0, 0, time.UTC), rs[2].Date)
}

func TestCollyScraperErrors(t *testing.T) {
	assert := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL).Scrape(context.Background())
	assert.Error(err)
	assert.Contains(err.Error(), "403")

	_, err = newTestScraper("").Scrape(context.Background())
	assert.Error(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTestScraper(srv.URL).Scrape(ctx)
	assert.Error(err)
}
