package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mirefeld/worldbuilder/internal/store"
)

// EventCallback is called after a watcher-driven catalog change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, key string)

// Watch starts an fsnotify watcher on the flat data directory and processes
// record change events until ctx is cancelled. It calls cb (if non-nil)
// after each successful catalog mutation.
//
// Rename events fire on the old path only; the new path arrives as a
// separate Create event, so renames delete immediately and schedule a short
// reconciliation pass to catch any stragglers.
func Watch(ctx context.Context, db *DB, s store.Provider, dataDir string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dataDir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dataDir))

	// reconcileTimer debounces rename reconciliation.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
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
			reconcile(db, s, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			key, isRecord := recordKey(ev.Name)
			if !isRecord {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := s.Read(key)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("key", key), slog.String("error", readErr.Error()))
					continue
				}
				kind := "updated"
				if ev.Op&fsnotify.Create != 0 {
					kind = "created"
				}
				if idxErr := indexRecord(db, key, data); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("key", key), slog.String("error", idxErr.Error()))
					continue
				}
				logger.Debug("watcher: indexed", slog.String("key", key), slog.String("op", kind))
				if cb != nil {
					cb(kind, key)
				}

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeleteNode(key); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("key", key), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("key", key))
				if cb != nil {
					cb("deleted", key)
				}

			case ev.Op&fsnotify.Rename != 0:
				if delErr := db.DeleteNode(key); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("key", key), slog.String("error", delErr.Error()))
				} else {
					logger.Debug("watcher: rename old deleted", slog.String("key", key))
					if cb != nil {
						cb("deleted", key)
					}
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

// recordKey maps a filesystem event path to a record key. Tmp files from
// atomic writes and anything that is not a visible .txt record are ignored;
// the rename of a tmp file onto its target surfaces as a Create on the
// target path.
func recordKey(path string) (string, bool) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".txt") {
		return "", false
	}
	return strings.TrimSuffix(name, ".txt"), true
}

// reconcile does a lightweight sync using batch lookups: removes catalog
// entries without a backing record and indexes records the catalog missed.
func reconcile(db *DB, s store.Provider, logger *slog.Logger, cb EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	metas, err := s.List()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	for _, m := range metas {
		disk[m.Key] = m.Checksum
	}

	for k := range checksums {
		if _, ok := disk[k]; !ok {
			if delErr := db.DeleteNode(k); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("key", k))
				if cb != nil {
					cb("deleted", k)
				}
			}
		}
	}

	for k, cs := range disk {
		if checksums[k] == cs {
			continue
		}
		data, readErr := s.Read(k)
		if readErr != nil {
			continue
		}
		if idxErr := indexRecord(db, k, data); idxErr == nil {
			logger.Debug("reconcile: indexed new", slog.String("key", k))
			if cb != nil {
				cb("created", k)
			}
		}
	}
}
