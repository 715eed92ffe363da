package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kinbiko/jsonassert"
	"github.com/stretchr/testify/require"

	"github.com/remymerlhiot/cote-sud-api/internal/feed"
	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
)

type fakeFeed struct {
	res feed.Result
	err error
}

func (f fakeFeed) Serve(context.Context) (feed.Result, error) { return f.res, f.err }

type fakeIngester struct {
	out   reviews.Outcome
	err   error
	calls int
}

func (f *fakeIngester) Ingest(context.Context) (reviews.Outcome, error) {
	f.calls++
	return f.out, f.err
}

func post(t *testing.T, r http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFeedFunction(t *testing.T) {
	cachedAt := time.UnixMilli(1717243200000)

	t.Run("served", func(t *testing.T) {
		r := chi.NewRouter()
		RegisterFeed(r, FeedDeps{Feed: fakeFeed{res: feed.Result{
			Listings: []feed.Listing{{ID: "1", Title: "Villa", Photos: []string{}}},
			CachedAt: cachedAt,
			Fresh:    false,
		}}})
		rec := post(t, r, "/v1/functions/feed", "")
		require.Equal(t, http.StatusOK, rec.Code)
		jsonassert.New(t).Assertf(rec.Body.String(), `{
			"properties": [{
				"id": "1", "reference": "", "type": "", "title": "Villa", "description": "",
				"price": "", "address": "", "postal_code": "", "city": "", "surface": "",
				"rooms": "", "bedrooms": "", "bathrooms": "", "construction_year": "",
				"features": {"balcony": false, "terrace": false, "pool": false, "elevator": false, "garage": false, "garden": false},
				"photos": [], "dpe": ""
			}],
			"cachedAt": 1717243200000,
			"freshData": false
		}`)
	})

	t.Run("no cache", func(t *testing.T) {
		r := chi.NewRouter()
		RegisterFeed(r, FeedDeps{Feed: fakeFeed{err: feed.ErrNoCache}})
		rec := post(t, r, "/v1/functions/feed", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		jsonassert.New(t).Assertf(rec.Body.String(), `{"properties": [], "error": "Impossible de récupérer les biens immobiliers"}`)
		require.NotContains(t, rec.Body.String(), "freshData")
	})

	t.Run("get not allowed", func(t *testing.T) {
		r := chi.NewRouter()
		RegisterFeed(r, FeedDeps{Feed: fakeFeed{}})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/functions/feed", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestReviewsFunction(t *testing.T) {
	const token = "s3cret"

	t.Run("stored", func(t *testing.T) {
		ing := &fakeIngester{out: reviews.Outcome{Count: 3, Simulated: true, Note: reviews.SimulatedNote}}
		r := chi.NewRouter()
		RegisterReviews(r, ReviewsDeps{Reviews: ing, Token: token})

		rec := post(t, r, "/v1/functions/reviews", token)
		require.Equal(t, http.StatusOK, rec.Code)
		jsonassert.New(t).Assertf(rec.Body.String(), `{"success": true, "message": "Avis synchronisés", "count": 3, "note": "%s"}`, reviews.SimulatedNote)
	})

	t.Run("auth", func(t *testing.T) {
		tests := []struct {
			name       string
			configured string
			sent       string
		}{
			{"missing", token, ""},
			{"wrong", token, "guess"},
			{"not configured", "", "anything"},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				ing := &fakeIngester{}
				r := chi.NewRouter()
				RegisterReviews(r, ReviewsDeps{Reviews: ing, Token: test.configured})

				rec := post(t, r, "/v1/functions/reviews", test.sent)
				require.Equal(t, http.StatusUnauthorized, rec.Code)
				require.Zero(t, ing.calls)
				jsonassert.New(t).Assertf(rec.Body.String(), `{"success": false, "count": 0, "error": "unauthorized"}`)
			})
		}
	})

	t.Run("store failure", func(t *testing.T) {
		r := chi.NewRouter()
		RegisterReviews(r, ReviewsDeps{Reviews: &fakeIngester{err: errors.New("store reviews: db down")}, Token: token})
		rec := post(t, r, "/v1/functions/reviews", token)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		jsonassert.New(t).Assertf(rec.Body.String(), `{"success": false, "count": 0, "error": "store reviews: db down"}`)
	})

	t.Run("no store", func(t *testing.T) {
		r := chi.NewRouter()
		RegisterReviews(r, ReviewsDeps{Token: token})
		rec := post(t, r, "/v1/functions/reviews", token)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
