// Package testutil provides shared test helpers for content directories and search databases.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nancruz/blogindex/internal/search"
	"github.com/nancruz/blogindex/internal/storage"
)

// PostFile renders a post file with the given front-matter fields.
// An empty date omits the key; tags may be nil.
func PostFile(title, date string, tags []string, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: " + title + "\n")
	if date != "" {
		b.WriteString("date: " + date + "\n")
	}
	if len(tags) > 0 {
		b.WriteString("tags:\n")
		for _, t := range tags {
			b.WriteString("  - " + t + "\n")
		}
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}

// WriteFile writes content to name under dir.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestContent creates a temporary content directory with a storage.Provider.
func TestContent(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// TestDB creates a temporary SQLite search database that is automatically cleaned up.
func TestDB(t *testing.T) *search.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "blogindex-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := search.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
