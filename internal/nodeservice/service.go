// Package nodeservice coordinates the record store and the search catalog
// for the API and MCP transports.
package nodeservice

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/mirefeld/worldbuilder/internal/apperr"
	"github.com/mirefeld/worldbuilder/internal/catalog"
	"github.com/mirefeld/worldbuilder/internal/checksum"
	"github.com/mirefeld/worldbuilder/internal/index"
	"github.com/mirefeld/worldbuilder/internal/models"
	"github.com/mirefeld/worldbuilder/internal/record"
	"github.com/mirefeld/worldbuilder/internal/store"
	"github.com/mirefeld/worldbuilder/internal/tree"
)

// NodeDetail is the full representation of a node.
type NodeDetail struct {
	Key       string    `json:"key"`
	Type      string    `json:"type"`
	Parent    string    `json:"parent"`
	Notes     string    `json:"notes"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NodeListItem is a lightweight item in a list response.
type NodeListItem struct {
	Key       string    `json:"key"`
	Type      string    `json:"type"`
	Parent    string    `json:"parent"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates store and catalog operations.
type Service struct {
	store store.Provider
	db    *catalog.DB
}

// NewService creates a new node service.
func NewService(s store.Provider, db *catalog.DB) *Service {
	return &Service{store: s, db: db}
}

// GetNode reads a record by key and parses it.
func (s *Service) GetNode(_ context.Context, key string) (*NodeDetail, error) {
	data, err := s.store.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return buildDetail(key, data), nil
}

// CreateNode derives the key from name, writes the record, and catalogs it.
// An existing key is refused unless force is set.
func (s *Service) CreateNode(_ context.Context, name, kind, parent, notes string, force bool) (*NodeDetail, error) {
	key := store.Slugify(name)
	if s.store.Exists(key) && !force {
		return nil, apperr.ErrAlreadyExists
	}
	if kind == "" {
		kind = models.DefaultType
	}
	data := record.Encode(models.Node{Type: kind, Parent: parent, Notes: notes})
	if err := s.store.Write(key, data); err != nil {
		return nil, err
	}
	if err := s.IndexRecord(key, data); err != nil {
		return nil, err
	}
	return buildDetail(key, data), nil
}

// UpdateNode replaces raw record content with optimistic concurrency: a
// non-empty ifMatch must equal the current checksum.
func (s *Service) UpdateNode(_ context.Context, key string, content []byte, ifMatch string) (*NodeDetail, error) {
	existing, err := s.store.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(key, content); err != nil {
		return nil, err
	}
	if err := s.IndexRecord(key, content); err != nil {
		return nil, err
	}
	return buildDetail(key, content), nil
}

// DeleteNode removes a record from the store and the catalog.
func (s *Service) DeleteNode(_ context.Context, key string) error {
	if err := s.store.Delete(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteNode(key)
}

// ListNodes scans the store and returns every record, optionally filtered
// by type (case-insensitive). The scan is transient; the catalog is not
// consulted, so listings always reflect the files on disk.
func (s *Service) ListNodes(_ context.Context, kind string) ([]NodeListItem, error) {
	metas, err := s.store.List()
	if err != nil {
		return nil, err
	}
	items := make([]NodeListItem, 0, len(metas))
	for _, m := range metas {
		data, err := s.store.Read(m.Key)
		if err != nil {
			return nil, err
		}
		n := record.Parse(data)
		if kind != "" && !strings.EqualFold(n.Type, kind) {
			continue
		}
		items = append(items, NodeListItem{
			Key:       m.Key,
			Type:      n.Type,
			Parent:    n.Parent,
			Checksum:  m.Checksum,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return items, nil
}

// Search delegates full-text search to the catalog.
func (s *Service) Search(_ context.Context, query string, limit int) ([]catalog.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Tree rebuilds the in-memory index and renders the hierarchy. An empty
// root renders every root subtree; a named root must exist.
func (s *Service) Tree(_ context.Context, root string) (string, error) {
	idx, err := index.Build(s.store)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	if root == "" {
		tree.RenderAll(&b, idx)
		return b.String(), nil
	}
	if err := tree.Render(&b, idx, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// IndexRecord parses data and upserts it into the catalog. Exported so the
// sync path and transports share one write-through.
func (s *Service) IndexRecord(key string, data []byte) error {
	n := record.Parse(data)
	return s.db.UpsertNode(catalog.NodeRow{
		Key:       key,
		Kind:      n.Type,
		Parent:    n.Parent,
		Notes:     n.Notes,
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	})
}

// buildDetail constructs a NodeDetail from raw data without re-reading the file.
func buildDetail(key string, data []byte) *NodeDetail {
	n := record.Parse(data)
	return &NodeDetail{
		Key:       key,
		Type:      n.Type,
		Parent:    n.Parent,
		Notes:     n.Notes,
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	}
}
