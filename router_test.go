package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remymerlhiot/cote-sud-api/internal/cleaner"
	"github.com/remymerlhiot/cote-sud-api/internal/content"
	"github.com/remymerlhiot/cote-sud-api/internal/property"
	"github.com/remymerlhiot/cote-sud-api/wordpress"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	wp := wordpress.NewClient("http://127.0.0.1:1", wordpress.WithRetryMax(0))
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	return BuildRouter(RouterDeps{
		Catalog:     &property.Catalog{WordPress: wp, Source: property.SourceWordPress, Logger: lg},
		Content:     &content.Service{CMS: wp, Options: cleaner.DefaultOptions(), Logger: lg},
		CORSOrigins: []string{"https://www.cotesud.test"},
		Logger:      lg,
	})
}

func TestRouterHealth(t *testing.T) {
	assert := require.New(t)
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(http.StatusOK, rec.Code)
	assert.JSONEq(`{"ok":true}`, rec.Body.String())
}

func TestRouterMetrics(t *testing.T) {
	assert := require.New(t)
	h := testRouter(t)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), `route="/health"`)
}

func TestRouterCORS(t *testing.T) {
	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://www.cotesud.test", true},
		{"https://evil.test", false},
	}
	for _, test := range tests {
		t.Run(test.origin, func(t *testing.T) {
			assert := require.New(t)
			req := httptest.NewRequest(http.MethodOptions, "/api/properties", nil)
			req.Header.Set("Origin", test.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			testRouter(t).ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if test.allowed {
				assert.Equal(test.origin, got)
			} else {
				assert.Empty(got)
			}
		})
	}
}

func TestRouterReviewsWithoutStore(t *testing.T) {
	assert := require.New(t)
	h := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews", nil))
	assert.Equal(http.StatusOK, rec.Code)
	assert.JSONEq(`{"ok":true,"count":0,"reviews":[]}`, rec.Body.String())

	// no token configured: every call is refused
	req := httptest.NewRequest(http.MethodPost, "/v1/functions/reviews", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer anything")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(http.StatusUnauthorized, rec.Code)
}
