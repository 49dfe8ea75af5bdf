// Package record encodes and decodes the flat-text node record format:
// line 1 is the node type, line 2 the parent reference, everything after
// that is free-form notes.
package record

import (
	"strings"

	"github.com/mirefeld/worldbuilder/internal/models"
)

// Parse decodes raw record bytes into a Node. Malformed records never fail;
// missing fields degrade to defaults: a record with no lines at all gets
// type "Node", a missing second line gets parent "-", and fewer than three
// lines mean empty notes.
func Parse(data []byte) models.Node {
	lines := splitLines(data)

	n := models.Node{Type: models.DefaultType, Parent: models.NoParent}
	if len(lines) > 0 {
		n.Type = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		n.Parent = strings.TrimSpace(lines[1])
	}
	if len(lines) > 2 {
		n.Notes = strings.Join(lines[2:], "\n")
	}
	return n
}

// Encode serializes a Node in the three-field layout with a trailing
// newline. An empty parent is written as the "-" sentinel; empty notes are
// omitted entirely rather than written as a blank line.
func Encode(n models.Node) []byte {
	parent := n.Parent
	if parent == "" {
		parent = models.NoParent
	}
	lines := []string{n.Type, parent}
	if n.Notes != "" {
		lines = append(lines, n.Notes)
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// splitLines splits on line breaks without producing a phantom empty line
// for the trailing newline, mirroring universal-newline text handling.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
