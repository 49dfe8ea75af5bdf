package catalog

import (
	"fmt"
	"time"
)

// NodeRow represents a row in the nodes table.
type NodeRow struct {
	Key       string
	Kind      string
	Parent    string
	Notes     string
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Key     string `json:"key"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet"`
}

// UpsertNode inserts or replaces a node and its FTS entry within a transaction.
func (db *DB) UpsertNode(n NodeRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO nodes (key, kind, parent, notes, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind       = excluded.kind,
			parent     = excluded.parent,
			notes      = excluded.notes,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, n.Key, n.Kind, n.Parent, n.Notes, n.Checksum, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("catalog: upsert node: %w", err)
	}

	// FTS upsert (no-op when the sqlite_fts5 tag is absent).
	if err := ftsUpsert(tx, n.Key, n.Kind, n.Notes); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteNode removes a node and its FTS entry.
func (db *DB) DeleteNode(key string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, key)
	_, _ = tx.Exec(`DELETE FROM nodes WHERE key = ?`, key)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a node, or empty string if not found.
func (db *DB) GetChecksum(key string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM nodes WHERE key = ?`, key).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllKeys returns every cataloged node key.
func (db *DB) AllKeys() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT key FROM nodes`)
	if err != nil {
		return nil, fmt.Errorf("catalog: all keys: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out[k] = struct{}{}
	}
	return out, rows.Err()
}

// AllChecksums returns a key -> checksum map for every cataloged node.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT key, checksum FROM nodes`)
	if err != nil {
		return nil, fmt.Errorf("catalog: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k, cs string
		if err := rows.Scan(&k, &cs); err != nil {
			return nil, err
		}
		out[k] = cs
	}
	return out, rows.Err()
}
