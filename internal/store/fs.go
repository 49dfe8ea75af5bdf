package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mirefeld/worldbuilder/internal/checksum"
	"github.com/mirefeld/worldbuilder/internal/models"
)

// recordExt is the file extension for node records.
const recordExt = ".txt"

// FS implements Provider backed by a flat directory of <key>.txt files.
type FS struct {
	root string // absolute path to the data directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("store: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute data directory path.
func (f *FS) Root() string {
	return f.root
}

// Path returns the absolute file path backing the given key.
func (f *FS) Path(key string) string {
	return filepath.Join(f.root, key+recordExt)
}

// safeKey rejects keys that would escape the flat data directory. Keys
// produced by Slugify always pass; the check guards raw keys arriving over
// the API or MCP transport.
func (f *FS) safeKey(key string) error {
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("store: invalid key: %s", key)
	}
	return nil
}

// List returns metadata for every record in the data directory, skipping
// hidden files so the degenerate empty-slug key and editor droppings stay
// invisible. os.ReadDir guarantees lexicographic order.
func (f *FS) List() ([]models.NodeMetadata, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	var out []models.NodeMetadata
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, recordExt) || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("store: stat %s: %w", name, err)
		}
		data, err := os.ReadFile(filepath.Join(f.root, name))
		if err != nil {
			return nil, fmt.Errorf("store: read %s: %w", name, err)
		}
		out = append(out, models.NodeMetadata{
			Key:       strings.TrimSuffix(name, recordExt),
			Checksum:  checksum.Sum(data),
			UpdatedAt: info.ModTime(),
		})
	}
	return out, nil
}

// Read returns the raw bytes of the record with the given key.
func (f *FS) Read(key string) ([]byte, error) {
	if err := f.safeKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, nil
}

// Exists reports whether a record with the given key is present.
func (f *FS) Exists(key string) bool {
	if err := f.safeKey(key); err != nil {
		return false
	}
	info, err := os.Stat(f.Path(key))
	return err == nil && !info.IsDir()
}

// Write atomically persists content: tmp file, fsync, rename.
func (f *FS) Write(key string, content []byte) error {
	if err := f.safeKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".wb-tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("store: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes the record with the given key.
func (f *FS) Delete(key string) error {
	if err := f.safeKey(key); err != nil {
		return err
	}
	if err := os.Remove(f.Path(key)); err != nil {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	return nil
}
