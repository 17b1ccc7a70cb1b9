package workingcopy

import (
	"sync"

	"github.com/grovetools/draft/logging"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
	"github.com/sirupsen/logrus"
)

// registration holds the per-copy bookkeeping: the subscription that
// forwards the copy's dirty-change firings, and the handle returned to the
// owner so a second Register of the same instance stays a no-op.
type registration struct {
	dirtySub *event.Disposable
	handle   *event.Disposable
}

// Registry is the process-wide index of open working copies, keyed by
// canonical resource. Multiple working copies may legitimately map to one
// resource. Dirty state is derived on demand from the registered copies,
// never cached.
//
// Events are fired outside the registry's lock, so handlers may re-enter
// the registry (register, unregister, query) safely.
type Registry struct {
	mu    sync.RWMutex
	index *resource.PathMap[map[WorkingCopy]*registration]

	onDidChangeDirty *event.Emitter[WorkingCopy]
	onDidRegister    *event.Emitter[WorkingCopy]
	onDidUnregister  *event.Emitter[WorkingCopy]

	logger *logrus.Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index:            resource.NewPathMap[map[WorkingCopy]*registration](),
		onDidChangeDirty: event.New[WorkingCopy](),
		onDidRegister:    event.New[WorkingCopy](),
		onDidUnregister:  event.New[WorkingCopy](),
		logger:           logging.NewLogger("registry"),
	}
}

// OnDidChangeDirty fires once per dirty/clean transition reported by any
// registered copy, plus one compensating fire when a copy is unregistered
// while dirty.
func (r *Registry) OnDidChangeDirty() *event.Emitter[WorkingCopy] {
	return r.onDidChangeDirty
}

// OnDidRegister fires after a copy is added to the index.
func (r *Registry) OnDidRegister() *event.Emitter[WorkingCopy] {
	return r.onDidRegister
}

// OnDidUnregister fires after a copy is removed from the index.
func (r *Registry) OnDidUnregister() *event.Emitter[WorkingCopy] {
	return r.onDidUnregister
}

// Register adds a working copy to the index and subscribes to its
// dirty-change stream. Registering the same instance again returns the
// original handle without adding a duplicate entry or subscription.
//
// Disposing the returned handle removes the copy from the index and
// unsubscribes. If the copy is dirty at that moment, one compensating
// dirty-change event fires, since the registry can no longer answer for a
// removed instance. Disposal is idempotent.
func (r *Registry) Register(c WorkingCopy) *event.Disposable {
	key := c.Resource()

	r.mu.Lock()
	set, ok := r.index.Get(key)
	if !ok {
		set = make(map[WorkingCopy]*registration)
		r.index.Set(key, set)
	}
	if existing, ok := set[c]; ok {
		r.mu.Unlock()
		return existing.handle
	}

	reg := &registration{}
	reg.dirtySub = c.OnDidChangeDirty().Listen(func(struct{}) {
		// Pass transitions through unfiltered; the registry does not
		// validate copy behavior.
		r.onDidChangeDirty.Fire(c)
	})
	reg.handle = event.NewDisposable(func() {
		r.unregister(c)
	})
	set[c] = reg
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"resource": key.String(),
		"name":     c.Name(),
	}).Debug("Registered working copy")

	r.onDidRegister.Fire(c)
	return reg.handle
}

// unregister removes c from the index. Safe to call for a copy that was
// already removed.
func (r *Registry) unregister(c WorkingCopy) {
	key := c.Resource()

	r.mu.Lock()
	set, ok := r.index.Get(key)
	if !ok {
		r.mu.Unlock()
		return
	}
	reg, ok := set[c]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(set, c)
	if len(set) == 0 {
		r.index.Delete(key)
	}
	r.mu.Unlock()

	reg.dirtySub.Dispose()

	r.logger.WithField("resource", key.String()).Debug("Unregistered working copy")

	// A removed copy can no longer be consulted for its resource's dirty
	// state, so observers get one final transition to react to.
	if c.IsDirty() {
		r.onDidChangeDirty.Fire(c)
	}
	r.onDidUnregister.Fire(c)
}

// Has reports whether any working copy is registered for the resource.
func (r *Registry) Has(key resource.Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Has(key)
}

// Get returns the working copies registered for the resource.
func (r *Registry) Get(key resource.Key) []WorkingCopy {
	r.mu.RLock()
	set, _ := r.index.Get(key)
	copies := make([]WorkingCopy, 0, len(set))
	for c := range set {
		copies = append(copies, c)
	}
	r.mu.RUnlock()
	return copies
}

// All returns every registered working copy.
func (r *Registry) All() []WorkingCopy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var copies []WorkingCopy
	r.index.Range(func(_ resource.Key, set map[WorkingCopy]*registration) bool {
		for c := range set {
			copies = append(copies, c)
		}
		return true
	})
	return copies
}

// IsDirty reports whether any copy registered for the resource is dirty.
// Resources with no registered copies are clean.
func (r *Registry) IsDirty(key resource.Key) bool {
	for _, c := range r.Get(key) {
		if c.IsDirty() {
			return true
		}
	}
	return false
}

// DirtyCount returns the number of registered copies reporting dirty.
// The count is a full-index scan; frequent callers should cache it and
// invalidate on the dirty-change event.
func (r *Registry) DirtyCount() int {
	return len(r.DirtyWorkingCopies())
}

// DirtyWorkingCopies returns every registered copy reporting dirty.
func (r *Registry) DirtyWorkingCopies() []WorkingCopy {
	var dirty []WorkingCopy
	for _, c := range r.All() {
		if c.IsDirty() {
			dirty = append(dirty, c)
		}
	}
	return dirty
}

// DirtyUnder returns every dirty copy whose resource is at or below the
// given prefix.
func (r *Registry) DirtyUnder(prefix resource.Key) []WorkingCopy {
	r.mu.RLock()
	var candidates []WorkingCopy
	r.index.RangePrefix(prefix, func(_ resource.Key, set map[WorkingCopy]*registration) bool {
		for c := range set {
			candidates = append(candidates, c)
		}
		return true
	})
	r.mu.RUnlock()

	var dirty []WorkingCopy
	for _, c := range candidates {
		if c.IsDirty() {
			dirty = append(dirty, c)
		}
	}
	return dirty
}

// DirtyResources returns the canonical keys of all resources with at least
// one dirty copy.
func (r *Registry) DirtyResources() []resource.Key {
	seen := make(map[resource.Key]bool)
	var keys []resource.Key
	for _, c := range r.DirtyWorkingCopies() {
		key := c.Resource()
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}
