// Package tree renders the node hierarchy as box-drawing text.
package tree

import (
	"fmt"
	"io"

	"github.com/mirefeld/worldbuilder/internal/apperr"
	"github.com/mirefeld/worldbuilder/internal/index"
)

// Box-drawing prefixes. A child line carries the branch glyph; its own
// descendants continue with the matching continuation so connectors line up
// at every depth.
const (
	branchGlyph   = "├─ "
	lastGlyph     = "└─ "
	continueGlyph = "│  "
	blankGlyph    = "   "
)

// Render prints the subtree rooted at root. The root must exist in the
// index; apperr.ErrNotFound is returned otherwise.
//
// A reference cycle among parents recurses without bound. The data model
// does not forbid cycles, so a malformed data set can still blow the stack
// here.
func Render(w io.Writer, idx *index.Index, root string) error {
	if _, ok := idx.Nodes[root]; !ok {
		return apperr.ErrNotFound
	}
	display(w, idx, root, "", "")
	return nil
}

// RenderAll prints every root subtree in case-insensitive key order, with a
// blank line after each one.
func RenderAll(w io.Writer, idx *index.Index) {
	for _, root := range idx.Roots() {
		display(w, idx, root, "", "")
		fmt.Fprintln(w)
	}
}

// display prints one node line and recurses into its children. prefix is
// the full prefix for this node's own line; indent is the base for its
// children's prefixes.
func display(w io.Writer, idx *index.Index, name, prefix, indent string) {
	if n, ok := idx.Nodes[name]; ok {
		fmt.Fprintf(w, "%s%s [%s]\n", prefix, name, n.Type)
	} else {
		// Dangling reference: a child list names a node with no record.
		fmt.Fprintf(w, "%s%s\n", prefix, name)
	}

	kids := idx.ChildrenOf(name)
	for i, child := range kids {
		if i == len(kids)-1 {
			display(w, idx, child, indent+lastGlyph, indent+blankGlyph)
		} else {
			display(w, idx, child, indent+branchGlyph, indent+continueGlyph)
		}
	}
}
