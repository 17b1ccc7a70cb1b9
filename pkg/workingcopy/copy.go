package workingcopy

import (
	"sync"

	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
)

// Copy is a basic WorkingCopy implementation for owners that track dirty
// state themselves, such as the daemon's file-backed copies. Owners flip
// the state with SetDirty; the dirty-change emitter fires only on actual
// transitions.
type Copy struct {
	key  resource.Key
	name string
	caps Capability

	mu      sync.Mutex
	dirty   bool
	onDirty *event.Emitter[struct{}]
}

// NewCopy creates a clean working copy for the given resource.
func NewCopy(key resource.Key, caps Capability) *Copy {
	return &Copy{
		key:     key,
		name:    key.Base(),
		caps:    caps,
		onDirty: event.New[struct{}](),
	}
}

// Resource implements WorkingCopy.
func (c *Copy) Resource() resource.Key {
	return c.key
}

// Name implements WorkingCopy.
func (c *Copy) Name() string {
	return c.name
}

// Capabilities implements WorkingCopy.
func (c *Copy) Capabilities() Capability {
	return c.caps
}

// IsDirty implements WorkingCopy.
func (c *Copy) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// OnDidChangeDirty implements WorkingCopy.
func (c *Copy) OnDidChangeDirty() *event.Emitter[struct{}] {
	return c.onDirty
}

// SetDirty transitions the dirty state, firing the dirty-change emitter
// if the state actually changed.
func (c *Copy) SetDirty(dirty bool) {
	c.mu.Lock()
	changed := c.dirty != dirty
	c.dirty = dirty
	c.mu.Unlock()

	if changed {
		c.onDirty.Fire(struct{}{})
	}
}
