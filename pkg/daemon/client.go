// Package daemon provides a client for interacting with the draft daemon
// (draftd) over its Unix socket.
package daemon

import (
	"context"

	"github.com/grovetools/draft/internal/daemon/store"
	"github.com/grovetools/draft/pkg/resource"
)

// Client defines the interface for interacting with the draft daemon.
type Client interface {
	// GetState returns the daemon's full dirty-state snapshot.
	GetState(ctx context.Context) (*store.State, error)

	// GetDirty returns the dirty resources and their count.
	GetDirty(ctx context.Context) (int, []resource.Key, error)

	// ReportCopy tells the daemon about a working copy's current state.
	ReportCopy(ctx context.Context, report CopyReport) error

	// StreamState subscribes to real-time state updates from the daemon.
	// The returned channel closes when the context is cancelled or the
	// connection is lost.
	StreamState(ctx context.Context) (<-chan StateUpdate, error)

	// IsRunning returns true if the daemon is available and responding.
	IsRunning() bool

	// Close cleans up any resources used by the client.
	Close() error
}

// CopyReport describes a working copy state change sent to the daemon.
type CopyReport struct {
	Resource string `json:"resource"`
	Name     string `json:"name,omitempty"`
	Dirty    bool   `json:"dirty"`
	AutoSave bool   `json:"auto_save,omitempty"`
	Closed   bool   `json:"closed,omitempty"`
}

// StateUpdate represents an update pushed from the daemon to subscribers.
type StateUpdate struct {
	UpdateType string       `json:"update_type"`
	Source     string       `json:"source,omitempty"`
	State      *store.State `json:"state,omitempty"`
	BadgeLabel string       `json:"badge_label,omitempty"`
	ConfigFile string       `json:"config_file,omitempty"`
}
