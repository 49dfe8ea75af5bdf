//go:build sqlite_fts5

package catalog

import (
	"testing"
	"time"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM nodes_fts`).Scan(&count); err != nil {
		t.Fatalf("nodes_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := NodeRow{
		Key:       "edoras",
		Kind:      "Kingdom",
		Notes:     "The golden hall rises over the plains of the mark.",
		Checksum:  "f1",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertNode(row); err != nil {
		t.Fatalf("UpsertNode: %v", err)
	}

	results, err := db.Search("golden", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Key != "edoras" {
		t.Errorf("key = %q", results[0].Key)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNode(NodeRow{Key: "gone", Kind: "Node", Notes: "vanishing content", Checksum: "g", UpdatedAt: time.Now()})
	_ = db.DeleteNode("gone")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.Key == "gone" {
			t.Error("deleted node still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertNode(NodeRow{Key: "evo", Kind: "Node", Notes: "original text", Checksum: "1", UpdatedAt: now})
	_ = db.UpsertNode(NodeRow{Key: "evo", Kind: "City", Notes: "replacement text", Checksum: "2", UpdatedAt: now})

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Kind != "City" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
