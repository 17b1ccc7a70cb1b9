// Package paths provides XDG-compliant path resolution for draft.
//
// Resolution order:
// 1. DRAFT_HOME (portable root) → $DRAFT_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/draft
// 3. Platform defaults → ~/.config/draft, ~/.local/state/draft
package paths

import (
	"os"
	"path/filepath"
)

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if draftHome := os.Getenv("DRAFT_HOME"); draftHome != "" {
		return filepath.Join(draftHome, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if draftHome := os.Getenv("DRAFT_HOME"); draftHome != "" {
		return filepath.Join(draftHome, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the draft configuration directory.
// Used for config files like draft.yml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "draft")
}

// StateDir returns the draft state directory.
// Used for runtime state and logs.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "draft")
}

// RuntimeDir returns the draft runtime directory for sockets and pipes.
// Uses XDG_RUNTIME_DIR when available (Linux), falls back to StateDir (macOS).
func RuntimeDir() string {
	if draftHome := os.Getenv("DRAFT_HOME"); draftHome != "" {
		return filepath.Join(draftHome, "run")
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "draft")
	}
	return StateDir()
}

// SocketPath returns the path to the draft daemon unix socket.
func SocketPath() string {
	return filepath.Join(RuntimeDir(), "draftd.sock")
}

// PidFilePath returns the path to the draft daemon pid file.
func PidFilePath() string {
	return filepath.Join(RuntimeDir(), "draftd.pid")
}
