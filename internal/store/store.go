// Package store persists video metadata and computed trends in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrTrendNotFound is returned by GetTrend when no trend row matches the name.
var ErrTrendNotFound = errors.New("trend not found")

type Store struct {
	db *sql.DB
}

// Video is one row of the videos table. PublishDate is kept as the ISO-8601
// string the API returned; it may be empty or malformed and downstream code
// must tolerate both.
type Video struct {
	VideoID     string
	Title       string
	Description string
	Channel     string
	URL         string
	PublishDate string
	ViewCount   int64
	LikeCount   int64
	Tags        string // JSON-encoded array of strings
	InsertedAt  time.Time
}

// Trend is one row of the trends table, keyed by normalized name.
type Trend struct {
	Name        string
	Score       float64
	NumVideos   int
	TotalViews  int64
	AvgViews    float64
	FirstSeenAt string
	LastSeenAt  string
	DetectedAt  time.Time
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertVideo inserts a video row or refreshes an existing one. The ingest
// step re-fetches videos across runs, so view counts and tags are overwritten
// with the latest values.
func (s *Store) UpsertVideo(ctx context.Context, v Video) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if strings.TrimSpace(v.VideoID) == "" {
		return errors.New("video_id is required")
	}

	tags := v.Tags
	if strings.TrimSpace(tags) == "" {
		tags = "[]"
	}

	insertedAt := v.InsertedAt
	if insertedAt.IsZero() {
		insertedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (
			video_id, title, description, channel, url, publish_date, view_count, like_count, tags, inserted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			channel = excluded.channel,
			url = excluded.url,
			publish_date = excluded.publish_date,
			view_count = excluded.view_count,
			like_count = excluded.like_count,
			tags = excluded.tags,
			inserted_at = excluded.inserted_at
	`,
		v.VideoID,
		v.Title,
		v.Description,
		v.Channel,
		v.URL,
		v.PublishDate,
		v.ViewCount,
		v.LikeCount,
		tags,
		formatTime(insertedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert video: %w", err)
	}

	return nil
}

// ListVideos returns every stored video, newest publish date first.
func (s *Store) ListVideos(ctx context.Context) ([]Video, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT video_id, title, description, channel, url, publish_date, view_count, like_count, tags, inserted_at
		FROM videos
		ORDER BY publish_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var videos []Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

// CountVideos returns the number of stored videos.
func (s *Store) CountVideos(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos").Scan(&n); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return n, nil
}

// ReplaceTrends clears the trends table and inserts one row per trend, all
// stamped with detectedAt. The clear and inserts run in one transaction so a
// crash mid-run cannot leave a partially cleared table.
func (s *Store) ReplaceTrends(ctx context.Context, trends []Trend, detectedAt time.Time) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if detectedAt.IsZero() {
		return errors.New("detected_at is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM trends"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear trends: %w", err)
	}

	detected := formatTime(detectedAt)
	for _, t := range trends {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO trends (name, score, num_videos, total_views, avg_views, first_seen_at, last_seen_at, detected_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			t.Name,
			t.Score,
			t.NumVideos,
			t.TotalViews,
			t.AvgViews,
			t.FirstSeenAt,
			t.LastSeenAt,
			detected,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert trend %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit trends: %w", err)
	}

	return nil
}

// ListTrends returns up to limit trends ordered by score descending.
// limit <= 0 means no limit.
func (s *Store) ListTrends(ctx context.Context, limit int) ([]Trend, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	query := `
		SELECT name, score, num_videos, total_views, avg_views, first_seen_at, last_seen_at, detected_at
		FROM trends
		ORDER BY score DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var trends []Trend
	for rows.Next() {
		t, err := scanTrend(rows)
		if err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trends: %w", err)
	}

	return trends, nil
}

// GetTrend looks up a single trend by exact normalized name. Returns
// ErrTrendNotFound when no row matches.
func (s *Store) GetTrend(ctx context.Context, name string) (Trend, error) {
	if s == nil || s.db == nil {
		return Trend{}, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT name, score, num_videos, total_views, avg_views, first_seen_at, last_seen_at, detected_at
		FROM trends
		WHERE name = ?
	`, name)

	t, err := scanTrend(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Trend{}, ErrTrendNotFound
	}
	if err != nil {
		return Trend{}, err
	}

	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(scanner rowScanner) (Video, error) {
	var (
		v                                   Video
		title, description, channel, urlVal sql.NullString
		publishDate, tags                   sql.NullString
		insertedAt                          string
	)

	if err := scanner.Scan(
		&v.VideoID,
		&title,
		&description,
		&channel,
		&urlVal,
		&publishDate,
		&v.ViewCount,
		&v.LikeCount,
		&tags,
		&insertedAt,
	); err != nil {
		return Video{}, fmt.Errorf("scan video: %w", err)
	}

	v.Title = title.String
	v.Description = description.String
	v.Channel = channel.String
	v.URL = urlVal.String
	v.PublishDate = publishDate.String
	v.Tags = tags.String
	if v.Tags == "" {
		v.Tags = "[]"
	}

	var err error
	v.InsertedAt, err = parseTime(insertedAt)
	if err != nil {
		return Video{}, fmt.Errorf("parse inserted_at: %w", err)
	}

	return v, nil
}

func scanTrend(scanner rowScanner) (Trend, error) {
	var (
		t          Trend
		detectedAt string
	)

	if err := scanner.Scan(
		&t.Name,
		&t.Score,
		&t.NumVideos,
		&t.TotalViews,
		&t.AvgViews,
		&t.FirstSeenAt,
		&t.LastSeenAt,
		&detectedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trend{}, err
		}
		return Trend{}, fmt.Errorf("scan trend: %w", err)
	}

	var err error
	t.DetectedAt, err = parseTime(detectedAt)
	if err != nil {
		return Trend{}, fmt.Errorf("parse detected_at: %w", err)
	}

	return t, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return time.Time{}.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
