package version

import (
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version != Version {
		t.Errorf("Expected version %s, got %s", Version, info.Version)
	}
	if info.GoVersion == "" {
		t.Error("Expected a Go version from the runtime")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Expected platform as os/arch, got %s", info.Platform)
	}
}

func TestStringListsAllFields(t *testing.T) {
	out := Info{
		Version:   "1.2.3",
		Commit:    "abc1234",
		BuildDate: "2026-08-31",
		GoVersion: "go1.24.4",
		Compiler:  "gc",
		Platform:  "linux/amd64",
	}.String()

	for _, want := range []string{"1.2.3", "abc1234", "2026-08-31", "go1.24.4", "gc", "linux/amd64"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
