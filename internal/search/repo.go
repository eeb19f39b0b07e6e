package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nancruz/blogindex/internal/models"
)

// Result represents one search hit.
type Result struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Snippet string    `json:"snippet"`
}

// UpsertPost inserts or replaces a post and its FTS entry within a transaction.
func (db *DB) UpsertPost(ctx context.Context, p *models.Post, checksum string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("search: encode tags: %w", err)
	}

	var date any
	if !p.Date.IsZero() {
		date = p.Date.UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO posts (slug, title, tags, date, checksum, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title    = excluded.title,
			tags     = excluded.tags,
			date     = excluded.date,
			checksum = excluded.checksum,
			body     = excluded.body
	`, p.Slug, p.Title, string(tagsJSON), date, checksum, p.Content)
	if err != nil {
		return fmt.Errorf("search: upsert post: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, p.Slug, p.Title, p.Content, p.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePost removes a post and its FTS entry.
func (db *DB) DeletePost(ctx context.Context, slug string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, slug)
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug); err != nil {
		return fmt.Errorf("search: delete post: %w", err)
	}
	return tx.Commit()
}

// GetChecksum returns the stored checksum for a post, or empty string if not indexed.
func (db *DB) GetChecksum(ctx context.Context, slug string) (string, error) {
	var cs string
	err := db.conn.QueryRowContext(ctx, `SELECT checksum FROM posts WHERE slug = ?`, slug).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("search: get checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns slug -> checksum for every indexed post.
func (db *DB) AllChecksums(ctx context.Context) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT slug, checksum FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("search: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var slug, cs string
		if err := rows.Scan(&slug, &cs); err != nil {
			return nil, err
		}
		out[slug] = cs
	}
	return out, rows.Err()
}

// Count returns the number of indexed posts.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("search: count: %w", err)
	}
	return n, nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var (
			r    Result
			date sql.NullTime
		)
		if err := rows.Scan(&r.Slug, &r.Title, &date, &r.Snippet); err != nil {
			return nil, err
		}
		if date.Valid {
			r.Date = date.Time
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
