package errors

import (
	"fmt"
	"testing"
)

func TestDraftError(t *testing.T) {
	err := New(ErrCodeEditorUnavailable, "editor host is not available")
	if err.Code != ErrCodeEditorUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeEditorUnavailable, err.Code)
	}

	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeWatcherFailed, "watcher failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeWatcherFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeConfigNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	detailed := err.WithDetail("editor", "nvim").WithDetail("socket", "/tmp/nvim.sock")
	if detailed.Details["editor"] != "nvim" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := ConfigNotFound("/home/user/draft.yml")
	if err.Code != ErrCodeConfigNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeConfigNotFound, err.Code)
	}
	if err.Details["path"] != "/home/user/draft.yml" {
		t.Error("ConfigNotFound should include path detail")
	}

	err = DaemonRunning(1234)
	if err.Code != ErrCodeDaemonRunning {
		t.Errorf("expected code %s, got %s", ErrCodeDaemonRunning, err.Code)
	}
	if err.Details["pid"] != 1234 {
		t.Error("DaemonRunning should include pid detail")
	}

	err = WatcherFailed("/tmp/ws", fmt.Errorf("no inotify"))
	if err.Code != ErrCodeWatcherFailed {
		t.Errorf("expected code %s, got %s", ErrCodeWatcherFailed, err.Code)
	}
	if GetCode(err) != ErrCodeWatcherFailed {
		t.Error("GetCode should extract the code")
	}
}
