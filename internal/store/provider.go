// Package store persists node records as flat text files, one <key>.txt
// per node, inside a single data directory.
package store

import "github.com/mirefeld/worldbuilder/internal/models"

// Provider is the interface for node record operations.
type Provider interface {
	// List returns metadata for every record, lexicographic by key.
	List() ([]models.NodeMetadata, error)
	// Read returns the raw bytes of the record with the given key.
	Read(key string) ([]byte, error)
	// Write persists content as the record for key.
	Write(key string, content []byte) error
	// Exists reports whether a record with the given key is present.
	Exists(key string) bool
	// Delete removes the record with the given key.
	Delete(key string) error
	// Path returns the absolute file path backing the given key.
	Path(key string) string
}
