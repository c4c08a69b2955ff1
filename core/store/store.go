// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package store persists ratings in SQLite.

The schema keeps one row per (rater, message) pair; re-rating a message
overwrites the previous rating. The message and source tables are seeded from
the parsed catalogue on startup so that ratings can be joined against the
exact text that was rated.
*/
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // database/sql driver

	"codeberg.org/msgrate/msgrate/core/catalogue"
)

const schema = `
CREATE TABLE IF NOT EXISTS rater(
    name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS source(
    jdk_version TEXT PRIMARY KEY,
    file_sha256 TEXT NOT NULL,
    commit_sha TEXT NOT NULL,
    permalink TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS message(
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    level TEXT NOT NULL,
    text TEXT NOT NULL,

    FOREIGN KEY (source) REFERENCES source(jdk_version)
);

CREATE TABLE IF NOT EXISTS rating(
    rater TEXT NOT NULL,
    message TEXT NOT NULL,
    tags TEXT NOT NULL,
    date DATETIME NOT NULL,

    PRIMARY KEY (rater, message)
);
`

// ErrNotFound is returned when no rating exists for a (rater, message) pair.
var ErrNotFound = errors.New("rating not found")

// Rating is one rater's qualitative judgement of one message.
type Rating struct {
	Rater     string
	MessageID string

	// Tags holds the checked tag IDs. Empty means "none of the above".
	Tags []string

	Date time.Time
}

// None reports whether this rating is "none of the above".
func (r Rating) None() bool {
	return len(r.Tags) == 0
}

// Store is a SQLite-backed rating store. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the rating database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is required")
	}

	// modernc.org/sqlite only understands _pragma=name(value) parameters.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open rating database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to ping rating database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the schema and seeds source metadata, raters, and messages
// from the catalogue. Idempotent: existing rows are left untouched, so
// ratings survive restarts.
func (s *Store) Init(ctx context.Context, c *catalogue.Catalogue, raters []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin init transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	src := c.Source()

	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO source(jdk_version, file_sha256, commit_sha, permalink)
		 VALUES (?, ?, ?, ?)`,
		src.JDKVersion, c.FileSHA256(), src.CommitSHA, src.Permalink(),
	)
	if err != nil {
		return fmt.Errorf("failed to seed source: %w", err)
	}

	for _, rater := range raters {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO rater(name) VALUES (?)`, rater); err != nil {
			return fmt.Errorf("failed to seed rater %q: %w", rater, err)
		}
	}

	for _, m := range c.Messages() {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO message(id, source, level, text) VALUES (?, ?, ?, ?)`,
			m.Name, src.JDKVersion, m.Level(), m.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed message %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit init transaction: %w", err)
	}

	return nil
}

// SaveRating inserts or overwrites the rating for (rater, message).
func (s *Store) SaveRating(ctx context.Context, rating Rating) error {
	if rating.Rater == "" {
		return errors.New("rater is required")
	}

	if rating.MessageID == "" {
		return errors.New("message ID is required")
	}

	date := rating.Date
	if date.IsZero() {
		date = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rating(rater, message, tags, date)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(rater, message) DO UPDATE SET tags = excluded.tags, date = excluded.date`,
		rating.Rater, rating.MessageID, strings.Join(rating.Tags, ","), date.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}

	return nil
}

// GetRating returns the rating for (rater, message), or ErrNotFound.
func (s *Store) GetRating(ctx context.Context, rater, messageID string) (Rating, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT tags, date FROM rating WHERE rater = ? AND message = ?`,
		rater, messageID,
	)

	var (
		tags string
		date string
	)

	if err := row.Scan(&tags, &date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rating{}, ErrNotFound
		}

		return Rating{}, fmt.Errorf("failed to read rating: %w", err)
	}

	return Rating{
		Rater:     rater,
		MessageID: messageID,
		Tags:      splitTags(tags),
		Date:      parseDate(date),
	}, nil
}

// ListRatings returns every rating for a message, ordered by rater.
func (s *Store) ListRatings(ctx context.Context, messageID string) ([]Rating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rater, tags, date FROM rating WHERE message = ? ORDER BY rater`,
		messageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []Rating

	for rows.Next() {
		var (
			rater string
			tags  string
			date  string
		)

		if err := rows.Scan(&rater, &tags, &date); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}

		ratings = append(ratings, Rating{
			Rater:     rater,
			MessageID: messageID,
			Tags:      splitTags(tags),
			Date:      parseDate(date),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return ratings, nil
}

// RatedMessages returns the set of message IDs a rater has rated.
func (s *Store) RatedMessages(ctx context.Context, rater string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message FROM rating WHERE rater = ?`,
		rater,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rated messages: %w", err)
	}
	defer rows.Close()

	rated := make(map[string]struct{})

	for rows.Next() {
		var messageID string

		if err := rows.Scan(&messageID); err != nil {
			return nil, fmt.Errorf("failed to scan rated message: %w", err)
		}

		rated[messageID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rated messages: %w", err)
	}

	return rated, nil
}

// Raters returns the known rater names, sorted.
func (s *Store) Raters(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM rater ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list raters: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string

		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan rater: %w", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raters: %w", err)
	}

	return names, nil
}

// StoredSourceHash returns the file hash recorded for a JDK version, so a
// restart can detect a catalogue file that changed out from under the
// ratings.
func (s *Store) StoredSourceHash(ctx context.Context, jdkVersion string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT file_sha256 FROM source WHERE jdk_version = ?`, jdkVersion)

	var hash string
	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("no source recorded for JDK %s", jdkVersion)
		}

		return "", fmt.Errorf("failed to read source hash: %w", err)
	}

	return strings.ToLower(hash), nil
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}

	return strings.Split(tags, ",")
}

func parseDate(date string) time.Time {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return time.Time{}
	}

	return t
}
