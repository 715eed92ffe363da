package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/remymerlhiot/cote-sud-api/internal/reviews"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Close() error { return s.DB.Close() }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reviews (
			id           BIGSERIAL PRIMARY KEY,
			author_name  TEXT NOT NULL,
			rating       SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			review_text  TEXT NOT NULL DEFAULT '',
			review_date  DATE NOT NULL,
			source       TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_reviews_author_date ON reviews(author_name, review_date);`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_date ON reviews(review_date DESC);`,
		`CREATE TABLE IF NOT EXISTS ingest_runs (
			id          BIGSERIAL PRIMARY KEY,
			scraped     INT NOT NULL,
			stored      INT NOT NULL,
			simulated   BOOLEAN NOT NULL,
			note        TEXT,
			last_error  TEXT,
			started_at  TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

const insertReview = `
	INSERT INTO reviews (author_name, rating, review_text, review_date, source, created_at)
	VALUES ($1,$2,$3,$4,$5,$6)
	ON CONFLICT (author_name, review_date) DO NOTHING`

// UpsertReviews inserts the reviews not stored yet, in one transaction,
// and returns how many were new.
func (s *Store) UpsertReviews(ctx context.Context, rs []reviews.Review) (n int, err error) {
	if s.DB == nil {
		return 0, errors.New("nil db")
	}
	if len(rs) == 0 {
		return 0, nil
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, r := range rs {
		created := r.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		res, err := tx.ExecContext(ctx, insertReview, r.Author, r.Rating, r.Text, r.Date.Format(time.DateOnly), r.Source, created)
		if err != nil {
			return 0, fmt.Errorf("insert review by %q: %w", r.Author, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		n += int(affected)
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// ListReviews returns the most recent reviews first. limit <= 0 means all.
func (s *Store) ListReviews(ctx context.Context, limit int) ([]reviews.Review, error) {
	q := `SELECT author_name, rating, review_text, review_date, source, created_at
		FROM reviews ORDER BY review_date DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []reviews.Review{}
	for rows.Next() {
		var r reviews.Review
		if err := rows.Scan(&r.Author, &r.Rating, &r.Text, &r.Date, &r.Source, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run is one ingestion, as recorded in ingest_runs.
type Run struct {
	Scraped   int
	Stored    int
	Simulated bool
	Note      string
	Err       error
	StartedAt time.Time
}

func (s *Store) RecordRun(ctx context.Context, r Run) error {
	var note, lastErr sql.NullString
	if r.Note != "" {
		note = sql.NullString{String: r.Note, Valid: true}
	}
	if r.Err != nil {
		lastErr = sql.NullString{String: r.Err.Error(), Valid: true}
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO ingest_runs (scraped, stored, simulated, note, last_error, started_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		r.Scraped, r.Stored, r.Simulated, note, lastErr, r.StartedAt)
	return err
}
