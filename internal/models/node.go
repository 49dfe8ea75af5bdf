// Package models defines the domain types for worldbuilder.
package models

import "time"

// DefaultType is the node type assumed when a record carries none.
const DefaultType = "Node"

// NoParent is the sentinel parent reference meaning "this node is a root".
const NoParent = "-"

// Node is one world-building entity: a continent, kingdom, character, and
// so on. The zero value is not meaningful; records are decoded with
// record.Parse which applies the defaulting rules.
type Node struct {
	Type   string `json:"type"`
	Parent string `json:"parent"`
	Notes  string `json:"notes"`
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == "" || n.Parent == NoParent
}

// NodeMetadata is a lightweight representation returned by list operations.
type NodeMetadata struct {
	Key       string    `json:"key"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
