package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
	"github.com/remymerlhiot/cote-sud-api/internal/store"
)

type fakeIngester struct {
	mu    sync.Mutex
	calls int
	out   reviews.Outcome
	err   error
}

func (f *fakeIngester) Ingest(ctx context.Context) (reviews.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.out, f.err
}

func (f *fakeIngester) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRecorder struct {
	mu   sync.Mutex
	runs []store.Run
	err  error
}

func (f *fakeRecorder) RecordRun(_ context.Context, r store.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, r)
	return f.err
}

func TestRunOnceRecords(t *testing.T) {
	assert := require.New(t)
	started := time.Date(2024, time.October, 15, 3, 0, 0, 0, time.UTC)
	ing := &fakeIngester{out: reviews.Outcome{Count: 2, Scraped: 5}}
	rec := &fakeRecorder{}
	j := &Job{Reviews: ing, Runs: rec, Now: func() time.Time { return started }}

	assert.NoError(j.RunOnce(context.Background()))
	assert.Equal([]store.Run{{Scraped: 5, Stored: 2, StartedAt: started}}, rec.runs)
}

func TestRunOnceReportsFailure(t *testing.T) {
	assert := require.New(t)
	boom := errors.New("db down")
	rec := &fakeRecorder{err: errors.New("also down")}
	j := &Job{Reviews: &fakeIngester{err: boom}, Runs: rec}

	assert.ErrorIs(j.RunOnce(context.Background()), boom)
	assert.Len(rec.runs, 1)
	assert.ErrorIs(rec.runs[0].Err, boom)
}

func TestRunWithoutIntervalRunsOnce(t *testing.T) {
	ing := &fakeIngester{}
	j := &Job{Reviews: ing}
	require.NoError(t, j.Run(context.Background()))
	require.Equal(t, 1, ing.count())
}

func TestRunTicks(t *testing.T) {
	assert := require.New(t)
	ing := &fakeIngester{err: errors.New("keeps failing")}
	j := &Job{Reviews: ing, Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	assert.Eventually(func() bool { return ing.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(<-done)
}

func TestValidate(t *testing.T) {
	var j *Job
	require.Error(t, j.Run(context.Background()))
	require.Error(t, (&Job{}).RunOnce(context.Background()))
}
