// Package editor bridges the dirty-state registry to a running editor.
package editor

import (
	"github.com/grovetools/draft/pkg/resource"
)

// Host abstracts the editor the daemon coordinates with. The indicator
// asks an open question about every dirty file and requests background
// opens for files the user has not seen yet.
type Host interface {
	// IsOpen reports whether the resource has a buffer in the editor.
	IsOpen(key resource.Key) bool

	// OpenInBackground adds buffers for the resources without changing
	// the user's current buffer or focus.
	OpenInBackground(keys []resource.Key) error

	// Close releases the connection to the editor.
	Close() error
}

// NoopHost is the Host used when no editor is reachable. Nothing is ever
// open and background opens succeed silently.
type NoopHost struct{}

// NewNoopHost creates a Host that does nothing.
func NewNoopHost() *NoopHost {
	return &NoopHost{}
}

func (NoopHost) IsOpen(resource.Key) bool              { return false }
func (NoopHost) OpenInBackground([]resource.Key) error { return nil }
func (NoopHost) Close() error                          { return nil }
