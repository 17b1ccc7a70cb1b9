package store

import "time"

// UpdateType identifies what part of the state an update touches.
type UpdateType string

const (
	// UpdateDirty carries a change to the dirty working-copy set.
	UpdateDirty UpdateType = "dirty"

	// UpdateBadge carries a change to the indicator badge.
	UpdateBadge UpdateType = "badge"

	// UpdateConfigReload signals that a config file changed on disk.
	UpdateConfigReload UpdateType = "config_reload"
)

// Update is a single state change broadcast to subscribers.
type Update struct {
	Type    UpdateType  `json:"update_type"`
	Source  string      `json:"source,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// State is the daemon's view of the workspace's unsaved changes.
type State struct {
	DirtyCount     int       `json:"dirty_count"`
	DirtyResources []string  `json:"dirty_resources"`
	BadgeLabel     string    `json:"badge_label,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}
