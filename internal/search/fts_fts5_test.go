//go:build sqlite_fts5

package search

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM posts_fts`).Scan(&count); err != nil {
		t.Fatalf("posts_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	p := post("fts", "FTS Post", time.Now(), []string{"search"}, "The blog offers powerful full-text search capabilities.")
	if err := db.UpsertPost(ctx, p, "f1"); err != nil {
		t.Fatalf("UpsertPost: %v", err)
	}

	results, err := db.Search(ctx, "powerful", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !strings.Contains(results[0].Snippet, "<b>powerful</b>") {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_ = db.UpsertPost(ctx, post("gone", "Gone", time.Now(), nil, "vanishing content"), "g")
	_ = db.DeletePost(ctx, "gone")

	results, _ := db.Search(ctx, "vanishing", 10)
	if len(results) != 0 {
		t.Errorf("deleted post still in FTS index: %+v", results)
	}
}
