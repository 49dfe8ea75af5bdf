package store

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a storage key from a display name: lowercase, every
// maximal run of characters outside [a-z0-9] collapsed to a single
// underscore, leading and trailing underscores stripped. Idempotent. A name
// with no alphanumeric characters slugifies to the empty string, a
// degenerate key that is accepted rather than rejected.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonAlnumRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
