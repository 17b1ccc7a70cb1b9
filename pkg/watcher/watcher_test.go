package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/draft/pkg/resource"
	"github.com/stretchr/testify/require"
)

func collectDirty(t *testing.T, dir string) (*Watcher, func() []resource.Key) {
	t.Helper()

	w, err := New([]string{dir}, 50)
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []resource.Key
	w.OnDidMarkDirty().Listen(func(k resource.Key) {
		mu.Lock()
		seen = append(seen, k)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)
	t.Cleanup(func() {
		cancel()
	})

	return w, func() []resource.Key {
		mu.Lock()
		defer mu.Unlock()
		out := make([]resource.Key, len(seen))
		copy(out, seen)
		return out
	}
}

func TestWatcher_EmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	_, snapshot := collectDirty(t, dir)

	file := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(file, []byte("draft"), 0644))

	require.Eventually(t, func() bool {
		for _, k := range snapshot() {
			if strings.HasSuffix(k.String(), "/notes.md") {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	_, snapshot := collectDirty(t, dir)

	file := filepath.Join(dir, "burst.md")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	}

	require.Eventually(t, func() bool {
		return len(snapshot()) >= 1
	}, 2*time.Second, 20*time.Millisecond)

	// The burst happened well inside the debounce window, so only the
	// first write should have been reported.
	time.Sleep(200 * time.Millisecond)
	count := 0
	for _, k := range snapshot() {
		if strings.HasSuffix(k.String(), "/burst.md") {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestWatcher_PicksUpNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	_, snapshot := collectDirty(t, dir)

	sub := filepath.Join(dir, "chapters")
	require.NoError(t, os.Mkdir(sub, 0755))

	// Give the watcher a moment to register the new directory.
	time.Sleep(200 * time.Millisecond)

	file := filepath.Join(sub, "one.md")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0644))

	require.Eventually(t, func() bool {
		for _, k := range snapshot() {
			if strings.HasSuffix(k.String(), "/chapters/one.md") {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_EvictsStaleDebounceEntries(t *testing.T) {
	dir := t.TempDir()
	w, snapshot := collectDirty(t, dir)

	first := filepath.Join(dir, "first.md")
	require.NoError(t, os.WriteFile(first, []byte("a"), 0644))
	require.Eventually(t, func() bool {
		return len(snapshot()) >= 1
	}, 2*time.Second, 20*time.Millisecond)

	// Let the first entry age past the debounce window, then trigger
	// another event; handling it must sweep the stale entry out.
	time.Sleep(150 * time.Millisecond)
	second := filepath.Join(dir, "second.md")
	require.NoError(t, os.WriteFile(second, []byte("b"), 0644))

	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		_, firstTracked := w.lastChange[resource.NewKey(first)]
		return !firstTracked && len(w.lastChange) == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_CloseStopsEvents(t *testing.T) {
	dir := t.TempDir()
	w, _ := collectDirty(t, dir)
	require.NoError(t, w.Close())
}
