// Package resource provides the canonical identifier for resources tracked
// by draft, plus a prefix-aware map keyed on path segments so resource trees
// can be queried by folder.
package resource

import (
	"path"
	"strings"
)

// Key is the canonical string form of a resource identifier. Two keys are
// the same resource iff they are equal as strings. Keys are slash-separated
// and rooted, e.g. "/home/user/notes/todo.md".
type Key string

// NewKey canonicalizes a path-like identifier into a Key. Backslashes are
// normalized to slashes, "." and ".." segments are collapsed, and trailing
// slashes are dropped. An empty input yields the root key "/".
func NewKey(p string) Key {
	p = strings.ReplaceAll(p, `\`, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return Key(path.Clean(p))
}

// String returns the canonical string form.
func (k Key) String() string {
	return string(k)
}

// Base returns the last segment of the key.
func (k Key) Base() string {
	return path.Base(string(k))
}

// Segments splits the key into its path segments. The root key has no
// segments.
func (k Key) Segments() []string {
	trimmed := strings.Trim(string(k), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// IsAncestorOf reports whether other is strictly below k in the resource
// tree. A key is not its own ancestor.
func (k Key) IsAncestorOf(other Key) bool {
	if k == other {
		return false
	}
	if k == "/" {
		return true
	}
	return strings.HasPrefix(string(other), string(k)+"/")
}
