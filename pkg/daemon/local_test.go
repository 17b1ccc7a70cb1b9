package daemon

import (
	"context"
	"testing"

	"github.com/grovetools/draft/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalClient_ReportCopyRoundTrip(t *testing.T) {
	c := NewLocalClient()
	ctx := context.Background()

	require.NoError(t, c.ReportCopy(ctx, CopyReport{Resource: "/ws/a.md", Dirty: true}))
	require.NoError(t, c.ReportCopy(ctx, CopyReport{Resource: "/ws/b.md", Dirty: false}))

	count, keys, err := c.GetDirty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []resource.Key{resource.NewKey("/ws/a.md")}, keys)

	state, err := c.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.DirtyCount)
	assert.Equal(t, []string{"/ws/a.md"}, state.DirtyResources)
}

func TestLocalClient_ClosedReportUnregisters(t *testing.T) {
	c := NewLocalClient()
	ctx := context.Background()

	require.NoError(t, c.ReportCopy(ctx, CopyReport{Resource: "/ws/a.md", Dirty: true}))
	require.NoError(t, c.ReportCopy(ctx, CopyReport{Resource: "/ws/a.md", Closed: true}))

	count, _, err := c.GetDirty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, c.Registry().All())
}

func TestLocalClient_RejectsEmptyResource(t *testing.T) {
	c := NewLocalClient()
	require.Error(t, c.ReportCopy(context.Background(), CopyReport{}))
}

func TestLocalClient_StreamingUnavailable(t *testing.T) {
	c := NewLocalClient()
	_, err := c.StreamState(context.Background())
	assert.Error(t, err)
	assert.False(t, c.IsRunning())
}
