package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *DraftError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *DraftError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ConfigValidation wraps a schema validation failure
func ConfigValidation(err error) *DraftError {
	return Wrap(err, ErrCodeConfigValidation, "configuration failed schema validation")
}

// EditorUnavailable creates an editor host unavailable error
func EditorUnavailable(socket string, err error) *DraftError {
	e := Wrap(err, ErrCodeEditorUnavailable, "editor host is not available")
	if socket != "" {
		e = e.WithDetail("socket", socket)
	}
	return e
}

// EditorCommand creates an editor command failure error
func EditorCommand(command string, err error) *DraftError {
	return Wrap(err, ErrCodeEditorCommand, fmt.Sprintf("editor command failed: %s", command)).
		WithDetail("command", command)
}

// WatcherFailed wraps a file watcher setup failure
func WatcherFailed(dir string, err error) *DraftError {
	return Wrap(err, ErrCodeWatcherFailed, fmt.Sprintf("failed to watch directory: %s", dir)).
		WithDetail("dir", dir)
}

// DaemonRunning reports that the daemon is already running
func DaemonRunning(pid int) *DraftError {
	return New(ErrCodeDaemonRunning, fmt.Sprintf("daemon already running with PID %d", pid)).
		WithDetail("pid", pid)
}

// DaemonNotRunning reports that no daemon is available
func DaemonNotRunning() *DraftError {
	return New(ErrCodeDaemonNotRunning, "daemon is not running")
}
