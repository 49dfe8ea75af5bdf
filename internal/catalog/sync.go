package catalog

import (
	"log/slog"
	"time"

	"github.com/mirefeld/worldbuilder/internal/checksum"
	"github.com/mirefeld/worldbuilder/internal/record"
	"github.com/mirefeld/worldbuilder/internal/store"
)

// Sync walks the data directory and brings the catalog up to date:
//   - new/changed records are parsed and upserted
//   - records removed from disk are deleted from the catalog
func Sync(db *DB, s store.Provider, logger *slog.Logger) error {
	metas, err := s.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Key] = struct{}{}

		if checksums[m.Key] == m.Checksum {
			continue
		}

		data, err := s.Read(m.Key)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("key", m.Key), slog.String("error", err.Error()))
			continue
		}
		if err := indexRecord(db, m.Key, data); err != nil {
			logger.Warn("sync: index failed", slog.String("key", m.Key), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("key", m.Key))
		}
	}

	// Remove stale entries.
	for k := range checksums {
		if _, ok := disk[k]; !ok {
			if err := db.DeleteNode(k); err != nil {
				logger.Warn("sync: delete failed", slog.String("key", k), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("key", k))
			}
		}
	}

	return nil
}

// indexRecord parses data and upserts it into the catalog.
func indexRecord(db *DB, key string, data []byte) error {
	n := record.Parse(data)
	return db.UpsertNode(NodeRow{
		Key:       key,
		Kind:      n.Type,
		Parent:    n.Parent,
		Notes:     n.Notes,
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	})
}
