package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/grovetools/draft/pkg/resource"
	"github.com/stretchr/testify/require"
)

func requireNvim(t *testing.T) *NvimHost {
	t.Helper()
	if _, err := exec.LookPath("nvim"); err != nil {
		t.Skip("nvim not installed")
	}
	h, err := NewNvimHost("")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestNvimHost_OpenInBackground(t *testing.T) {
	h := requireNvim(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0644))

	key := resource.NewKey(file)
	require.False(t, h.IsOpen(key))

	require.NoError(t, h.OpenInBackground([]resource.Key{key}))
	require.True(t, h.IsOpen(key))
}

func TestNvimHost_ModifiedBuffersEmptyForCleanEditor(t *testing.T) {
	h := requireNvim(t)

	dirty, err := h.ModifiedBuffers()
	require.NoError(t, err)
	require.Empty(t, dirty)
}
