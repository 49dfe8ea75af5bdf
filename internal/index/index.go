// Package index builds the transient in-memory hierarchy over the node
// store: a name lookup plus parent-reference child groupings. It is rebuilt
// on every invocation; nothing here persists.
package index

import (
	"slices"
	"strings"

	"github.com/mirefeld/worldbuilder/internal/models"
	"github.com/mirefeld/worldbuilder/internal/record"
	"github.com/mirefeld/worldbuilder/internal/store"
)

// RootGroup is the children-map key that collects all parentless nodes.
const RootGroup = ""

// Index maps node keys to parsed records and parent references to ordered
// child key lists. Parent references are grouped verbatim; a logical parent
// may therefore appear under two keys ("name" and "/name") and ChildrenOf
// reconciles both.
type Index struct {
	Nodes    map[string]models.Node
	Children map[string][]string
}

// Build scans every record in the store and assembles the index. Child
// lists are sorted case-insensitively by key; the sort is stable so ties
// keep store enumeration order.
func Build(s store.Provider) (*Index, error) {
	metas, err := s.List()
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Nodes:    make(map[string]models.Node, len(metas)),
		Children: make(map[string][]string),
	}

	for _, m := range metas {
		data, err := s.Read(m.Key)
		if err != nil {
			return nil, err
		}
		n := record.Parse(data)
		idx.Nodes[m.Key] = n

		group := n.Parent
		if n.IsRoot() {
			group = RootGroup
		}
		idx.Children[group] = append(idx.Children[group], m.Key)
	}

	for _, kids := range idx.Children {
		slices.SortStableFunc(kids, func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
	}
	return idx, nil
}

// Roots returns every node whose own parent field is empty or "-", sorted
// case-insensitively by key.
func (idx *Index) Roots() []string {
	var roots []string
	for key, n := range idx.Nodes {
		if n.IsRoot() {
			roots = append(roots, key)
		}
	}
	slices.SortStableFunc(roots, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return roots
}

// ChildrenOf returns the children of name, looking up the absolute-style
// "/name" group first, then the bare "name" group, deduplicated while
// preserving first-seen order. Users type parent references in both forms
// and existing data carries both.
func (idx *Index) ChildrenOf(name string) []string {
	kids := append([]string{}, idx.Children["/"+name]...)
	kids = append(kids, idx.Children[name]...)

	seen := make(map[string]struct{}, len(kids))
	ordered := kids[:0]
	for _, k := range kids {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ordered = append(ordered, k)
	}
	return ordered
}
