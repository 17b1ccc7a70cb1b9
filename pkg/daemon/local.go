package daemon

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/grovetools/draft/internal/daemon/store"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
	"github.com/grovetools/draft/pkg/workingcopy"
)

// LocalClient implements Client against an in-process registry. It is used
// when the daemon is not running, providing the same API but tracking state
// only for the lifetime of this process.
type LocalClient struct {
	registry *workingcopy.Registry

	mu     sync.Mutex
	copies map[resource.Key]*localCopy
}

type localCopy struct {
	copy   *workingcopy.Copy
	handle *event.Disposable
}

// NewLocalClient creates a new LocalClient.
func NewLocalClient() *LocalClient {
	return &LocalClient{
		registry: workingcopy.NewRegistry(),
		copies:   make(map[resource.Key]*localCopy),
	}
}

// Registry exposes the in-process registry so callers can subscribe to its
// events directly in local mode.
func (c *LocalClient) Registry() *workingcopy.Registry {
	return c.registry
}

// GetState returns a snapshot built from the in-process registry.
func (c *LocalClient) GetState(ctx context.Context) (*store.State, error) {
	count, keys, _ := c.GetDirty(ctx)
	resources := make([]string, len(keys))
	for i, k := range keys {
		resources[i] = k.String()
	}
	return &store.State{
		DirtyCount:     count,
		DirtyResources: resources,
		UpdatedAt:      time.Now(),
	}, nil
}

// GetDirty returns the dirty resources from the in-process registry.
func (c *LocalClient) GetDirty(ctx context.Context) (int, []resource.Key, error) {
	return c.registry.DirtyCount(), c.registry.DirtyResources(), nil
}

// ReportCopy applies the report to the in-process registry.
func (c *LocalClient) ReportCopy(ctx context.Context, report CopyReport) error {
	if report.Resource == "" {
		return errors.New("resource is required")
	}
	key := resource.NewKey(report.Resource)

	if report.Closed {
		c.mu.Lock()
		tracked, ok := c.copies[key]
		delete(c.copies, key)
		c.mu.Unlock()
		if ok {
			tracked.handle.Dispose()
		}
		return nil
	}

	c.mu.Lock()
	tracked, ok := c.copies[key]
	if !ok {
		caps := workingcopy.CapabilityNone
		if report.AutoSave {
			caps = workingcopy.CapabilityAutoSave
		}
		cp := workingcopy.NewCopy(key, caps)
		tracked = &localCopy{copy: cp, handle: c.registry.Register(cp)}
		c.copies[key] = tracked
	}
	c.mu.Unlock()

	tracked.copy.SetDirty(report.Dirty)
	return nil
}

// StreamState returns an error for LocalClient since streaming is only
// available via the daemon.
func (c *LocalClient) StreamState(ctx context.Context) (<-chan StateUpdate, error) {
	return nil, errors.New("streaming not available in local mode; start the daemon for real-time updates")
}

// IsRunning returns false since this is the local fallback client.
func (c *LocalClient) IsRunning() bool {
	return false
}

// Close is a no-op for LocalClient.
func (c *LocalClient) Close() error {
	return nil
}

// Ensure LocalClient implements Client interface.
var _ Client = (*LocalClient)(nil)
