package search

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nancruz/blogindex/internal/storage"
)

// Event kinds passed to EventCallback.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// EventCallback is called after a watcher-driven mirror change.
type EventCallback func(kind string, slug string)

// Watch starts an fsnotify watcher on the content directory and keeps the
// mirror current until ctx is cancelled. cb (if non-nil) is called after
// each successful change.
//
// fsnotify reports renames on the old name only; the old entry is dropped
// at once and a reconcile pass runs after debounce to pick up the new name.
func Watch(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger, debounce time.Duration, cb EventCallback) error {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := store.Root()
	if err := w.Add(root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	notify := func(kind, slug string) {
		if cb != nil {
			cb(kind, slug)
		}
	}

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time
	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(debounce)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(ctx, db, store, logger, notify)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(ev.Name) != root || !storage.IsPostFile(ev.Name) {
				continue
			}
			name := filepath.Base(ev.Name)
			slug := storage.SlugOf(name)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(name)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("file", name), slog.String("error", readErr.Error()))
					continue
				}
				if idxErr := indexFile(ctx, db, name, data, storage.Checksum(data)); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("file", name), slog.String("error", idxErr.Error()))
					// A post that stops parsing leaves the mirror, as in Sync.
					if drop(ctx, db, slug, logger) {
						notify(EventDeleted, slug)
					}
					continue
				}
				kind := EventUpdated
				if ev.Op&fsnotify.Create != 0 {
					kind = EventCreated
				}
				logger.Debug("watcher: indexed", slog.String("file", name), slog.String("op", kind))
				notify(kind, slug)

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeletePost(ctx, slug); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("slug", slug), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("slug", slug))
				notify(EventDeleted, slug)

			case ev.Op&fsnotify.Rename != 0:
				if delErr := db.DeletePost(ctx, slug); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("slug", slug), slog.String("error", delErr.Error()))
				} else {
					notify(EventDeleted, slug)
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcile removes mirror entries without a file on disk and indexes
// on-disk files whose checksum differs from the mirror.
func reconcile(ctx context.Context, db *DB, store storage.Provider, logger *slog.Logger, notify EventCallback) {
	checksums, err := db.AllChecksums(ctx)
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}
	entries, err := store.List()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		disk[e.Slug] = struct{}{}
		data, readErr := store.Read(e.Name)
		if readErr != nil {
			continue
		}
		sum := storage.Checksum(data)
		if checksums[e.Slug] == sum {
			continue
		}
		if idxErr := indexFile(ctx, db, e.Name, data, sum); idxErr == nil {
			logger.Debug("reconcile: indexed", slog.String("file", e.Name))
			notify(EventCreated, e.Slug)
		} else if drop(ctx, db, e.Slug, logger) {
			notify(EventDeleted, e.Slug)
		}
	}

	for slug := range checksums {
		if _, ok := disk[slug]; ok {
			continue
		}
		if delErr := db.DeletePost(ctx, slug); delErr == nil {
			logger.Debug("reconcile: removed stale", slog.String("slug", slug))
			notify(EventDeleted, slug)
		}
	}
}

// drop removes slug from the mirror and reports whether a row was there.
func drop(ctx context.Context, db *DB, slug string, logger *slog.Logger) bool {
	cs, err := db.GetChecksum(ctx, slug)
	if err != nil || cs == "" {
		return false
	}
	if err := db.DeletePost(ctx, slug); err != nil {
		logger.Warn("watcher: delete failed", slog.String("slug", slug), slog.String("error", err.Error()))
		return false
	}
	logger.Debug("watcher: dropped unparseable", slog.String("slug", slug))
	return true
}
