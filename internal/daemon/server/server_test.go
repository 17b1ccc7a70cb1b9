package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/draft/internal/daemon/store"
	"github.com/grovetools/draft/logging"
	"github.com/grovetools/draft/pkg/workingcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (*Server, *workingcopy.Registry, *http.Client) {
	t.Helper()

	// Unix socket paths have a tight length limit, so avoid t.TempDir.
	dir, err := os.MkdirTemp("", "draftd")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	socket := filepath.Join(dir, "d.sock")

	registry := workingcopy.NewRegistry()
	st := store.New()
	srv := New(logging.NewLogger("test"), registry, st)

	go func() {
		_ = srv.ListenAndServe(socket)
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	client := &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", socket)
			},
		},
		Timeout: 5 * time.Second,
	}

	require.Eventually(t, func() bool {
		resp, err := client.Get("http://unix/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	return srv, registry, client
}

func postCopy(t *testing.T, client *http.Client, report copyReport) {
	t.Helper()
	body, err := json.Marshal(report)
	require.NoError(t, err)
	resp, err := client.Post("http://unix/api/copies", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func getDirty(t *testing.T, client *http.Client) dirtyResponse {
	t.Helper()
	resp, err := client.Get("http://unix/api/dirty")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dirtyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServer_CopyLifecycle(t *testing.T) {
	_, registry, client := startServer(t)

	postCopy(t, client, copyReport{Resource: "/ws/a.md", Dirty: true})

	dirty := getDirty(t, client)
	assert.Equal(t, 1, dirty.DirtyCount)
	assert.Equal(t, []string{"/ws/a.md"}, dirty.Resources)

	// Clean report keeps the copy registered but drops it from the dirty set.
	postCopy(t, client, copyReport{Resource: "/ws/a.md", Dirty: false})
	dirty = getDirty(t, client)
	assert.Equal(t, 0, dirty.DirtyCount)
	assert.Equal(t, 1, len(registry.All()))

	// Close unregisters entirely.
	postCopy(t, client, copyReport{Resource: "/ws/a.md", Closed: true})
	assert.Empty(t, registry.All())
}

func TestServer_ClosingDirtyCopyClearsIt(t *testing.T) {
	_, registry, client := startServer(t)

	postCopy(t, client, copyReport{Resource: "/ws/b.md", Dirty: true})
	require.Equal(t, 1, registry.DirtyCount())

	postCopy(t, client, copyReport{Resource: "/ws/b.md", Closed: true})
	assert.Equal(t, 0, registry.DirtyCount())
}

func TestServer_RejectsBadCopyReports(t *testing.T) {
	_, _, client := startServer(t)

	resp, err := client.Post("http://unix/api/copies", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = client.Get("http://unix/api/copies")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_StateEndpoint(t *testing.T) {
	srv, _, client := startServer(t)

	srv.store.SetDirty([]string{"/ws/c.md"})

	resp, err := client.Get("http://unix/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state store.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, 1, state.DirtyCount)
	assert.Equal(t, []string{"/ws/c.md"}, state.DirtyResources)
}
