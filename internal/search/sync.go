package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nancruz/blogindex/internal/postindex"
	"github.com/nancruz/blogindex/internal/storage"
)

// Sync brings the mirror up to date with the content directory:
//   - new/changed files are parsed and upserted
//   - files that no longer parse are dropped and logged
//   - files removed from disk are deleted from the mirror
func Sync(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger) error {
	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("search: sync: %w", err)
	}

	checksums, err := db.AllChecksums(ctx)
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		disk[e.Slug] = struct{}{}

		data, err := store.Read(e.Name)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("file", e.Name), slog.String("error", err.Error()))
			continue
		}
		sum := storage.Checksum(data)
		if checksums[e.Slug] == sum {
			continue
		}
		if err := indexFile(ctx, db, e.Name, data, sum); err != nil {
			logger.Warn("sync: index failed", slog.String("file", e.Name), slog.String("error", err.Error()))
			if _, had := checksums[e.Slug]; had {
				_ = db.DeletePost(ctx, e.Slug)
			}
			continue
		}
		logger.Debug("sync: indexed", slog.String("file", e.Name))
	}

	// Remove stale entries.
	for slug := range checksums {
		if _, ok := disk[slug]; ok {
			continue
		}
		if err := db.DeletePost(ctx, slug); err != nil {
			logger.Warn("sync: delete failed", slog.String("slug", slug), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: removed stale", slog.String("slug", slug))
		}
	}

	return nil
}

// indexFile parses data and upserts it into the mirror under checksum sum.
func indexFile(ctx context.Context, db *DB, name string, data []byte, sum string) error {
	post, _, err := postindex.Decode(name, data)
	if err != nil {
		return err
	}
	return db.UpsertPost(ctx, post, sum)
}
