package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	reviews []Review
	err     error
}

func (f fakeScraper) Scrape(context.Context) ([]Review, error) { return f.reviews, f.err }

// memStore keys reviews by author and day like the SQL store does.
type memStore struct {
	rows map[string]Review
	err  error
}

func (m *memStore) UpsertReviews(_ context.Context, rs []Review) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.rows == nil {
		m.rows = map[string]Review{}
	}
	n := 0
	for _, r := range rs {
		k := r.Author + "|" + r.Date.Format(time.DateOnly)
		if _, ok := m.rows[k]; ok {
			continue
		}
		m.rows[k] = r
		n++
	}
	return n, nil
}

func TestIngest(t *testing.T) {
	now := time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)
	scraped := []Review{
		{Author: "A", Rating: 5, Date: now, Source: SourceGoogle},
		{Author: "B", Rating: 4, Date: now, Source: SourceGoogle},
	}

	t.Run("scraped reviews", func(t *testing.T) {
		assert := require.New(t)
		st := &memStore{}
		s := &Service{Scraper: fakeScraper{reviews: scraped}, Store: st, Now: func() time.Time { return now }}

		out, err := s.Ingest(context.Background())
		assert.NoError(err)
		assert.Equal(Outcome{Count: 2, Scraped: 2}, out)

		out, err = s.Ingest(context.Background())
		assert.NoError(err)
		assert.Equal(0, out.Count)
	})

	t.Run("scraping failure", func(t *testing.T) {
		assert := require.New(t)
		st := &memStore{}
		s := &Service{Scraper: fakeScraper{err: errors.New("timeout")}, Store: st, Now: func() time.Time { return now }}

		out, err := s.Ingest(context.Background())
		assert.NoError(err)
		assert.True(out.Simulated)
		assert.Equal(SimulatedNote, out.Note)
		assert.Equal(len(Simulated(now)), out.Count)

		// fixed dates, nothing new the second time
		out, err = s.Ingest(context.Background())
		assert.NoError(err)
		assert.Equal(0, out.Count)
	})

	t.Run("empty page", func(t *testing.T) {
		assert := require.New(t)
		s := &Service{Scraper: fakeScraper{}, Store: &memStore{}}

		out, err := s.Ingest(context.Background())
		assert.NoError(err)
		assert.True(out.Simulated)
		assert.Equal(0, out.Scraped)
	})

	t.Run("store failure", func(t *testing.T) {
		assert := require.New(t)
		s := &Service{Scraper: fakeScraper{reviews: scraped}, Store: &memStore{err: errors.New("db down")}}

		_, err := s.Ingest(context.Background())
		assert.ErrorContains(err, "db down")
	})
}

func TestSimulated(t *testing.T) {
	assert := require.New(t)
	now := time.Now()
	rs := Simulated(now)
	assert.NotEmpty(rs)
	for _, r := range rs {
		assert.True(validRating(r.Rating))
		assert.Equal(SourceSimulated, r.Source)
		assert.Equal(now, r.CreatedAt)
		assert.Equal(day(r.Date), r.Date)
	}
}
