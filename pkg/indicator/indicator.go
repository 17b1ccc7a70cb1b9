// Package indicator maintains the "unsaved files" activity badge and opens
// dirty resources in the background so they stay visible even when their
// tab was closed.
package indicator

import (
	"fmt"
	"sync"

	"github.com/grovetools/draft/config"
	"github.com/grovetools/draft/logging"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
	"github.com/grovetools/draft/pkg/workingcopy"
	"github.com/sirupsen/logrus"
)

// SavePolicy answers whether documents are saved shortly after each edit.
type SavePolicy interface {
	AutoSaveMode() config.AutoSaveMode
}

// EditorHost is the editor surface the indicator talks to.
type EditorHost interface {
	// IsOpen reports whether the resource is currently open in an editor.
	IsOpen(key resource.Key) bool

	// OpenInBackground opens the resources without stealing focus.
	OpenInBackground(keys []resource.Key) error
}

// BadgeHost renders the numeric unsaved-files badge. Show returns a handle
// that clears the badge when disposed.
type BadgeHost interface {
	Show(count int, label string) *event.Disposable
}

// Options wires an Indicator to its collaborators.
type Options struct {
	Registry *workingcopy.Registry
	Policy   SavePolicy
	Editor   EditorHost
	Badge    BadgeHost

	// FileDirty is the file-level dirty stream from the text-document
	// subsystem; each firing names a resource that became dirty on disk.
	FileDirty *event.Emitter[resource.Key]

	// Shutdown is the lifecycle host's one-shot shutdown notification.
	Shutdown *event.Emitter[struct{}]
}

// Indicator tracks the registry's dirty count and keeps the badge current.
// It suppresses updates for copies under short-delay auto-save so the badge
// does not flicker for documents that save themselves moments later.
type Indicator struct {
	registry *workingcopy.Registry
	policy   SavePolicy
	editor   EditorHost
	badge    BadgeHost
	logger   *logrus.Entry

	mu sync.Mutex
	// lastKnownDirtyCount is -1 until the first recompute.
	lastKnownDirtyCount int
	badgeHandle         *event.Disposable
	pendingSave         map[resource.Key]bool
	openRequested       map[resource.Key]bool
	disposed            bool

	subs []*event.Disposable
}

// New creates and starts an Indicator.
func New(opts Options) *Indicator {
	i := &Indicator{
		registry:            opts.Registry,
		policy:              opts.Policy,
		editor:              opts.Editor,
		badge:               opts.Badge,
		logger:              logging.NewLogger("indicator"),
		lastKnownDirtyCount: -1,
		pendingSave:         make(map[resource.Key]bool),
		openRequested:       make(map[resource.Key]bool),
	}

	i.subs = append(i.subs, opts.Registry.OnDidChangeDirty().Listen(i.onDirtyChanged))

	if opts.FileDirty != nil {
		i.subs = append(i.subs, opts.FileDirty.Listen(i.onFileDirty))
	}
	if opts.Shutdown != nil {
		i.subs = append(i.subs, opts.Shutdown.Listen(func(struct{}) {
			i.Dispose()
		}))
	}

	return i
}

// onDirtyChanged reacts to a registry-level dirty transition for one copy.
func (i *Indicator) onDirtyChanged(c workingcopy.WorkingCopy) {
	if c.Capabilities().Has(workingcopy.CapabilityAutoSave) &&
		i.policy.AutoSaveMode() == config.AutoSaveShortDelay {
		// Short-delay auto-saved copies resolve themselves moments later;
		// recomputing now would flicker the badge.
		return
	}

	i.mu.Lock()
	recompute := c.IsDirty() || i.lastKnownDirtyCount > 0
	i.mu.Unlock()

	if recompute {
		i.updateBadge()
	}
}

// updateBadge recomputes the dirty count and refreshes the badge.
func (i *Indicator) updateBadge() {
	count := i.registry.DirtyCount()

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.disposed {
		return
	}

	i.lastKnownDirtyCount = count

	if i.badgeHandle != nil {
		i.badgeHandle.Dispose()
		i.badgeHandle = nil
	}
	if count == 0 {
		return
	}

	label := fmt.Sprintf("%d unsaved files", count)
	if count == 1 {
		label = "1 unsaved file"
	}
	i.badgeHandle = i.badge.Show(count, label)
}

// onFileDirty reacts to a file-level dirty notification by opening the
// resource in the background, unless it is already open, pending a save,
// or was already requested.
func (i *Indicator) onFileDirty(key resource.Key) {
	i.mu.Lock()
	skip := i.disposed || i.pendingSave[key] || i.openRequested[key]
	i.mu.Unlock()
	if skip || i.editor.IsOpen(key) {
		return
	}

	i.mu.Lock()
	i.openRequested[key] = true
	i.mu.Unlock()

	if err := i.editor.OpenInBackground([]resource.Key{key}); err != nil {
		i.logger.WithError(err).WithField("resource", key.String()).
			Warn("Failed to open dirty resource in background")
		i.mu.Lock()
		delete(i.openRequested, key)
		i.mu.Unlock()
	}
}

// MarkPendingSave marks a resource as transiently saving; file-level dirty
// notifications for it do not trigger a background open.
func (i *Indicator) MarkPendingSave(key resource.Key) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pendingSave[key] = true
}

// ClearPendingSave lifts the pending-save mark, and forgets any prior
// background-open request so the resource can be surfaced again.
func (i *Indicator) ClearPendingSave(key resource.Key) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.pendingSave, key)
	delete(i.openRequested, key)
}

// LastKnownDirtyCount returns the count currently reflected by the badge,
// or -1 if no recompute has happened yet.
func (i *Indicator) LastKnownDirtyCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.lastKnownDirtyCount
}

// Dispose clears the badge and detaches from all streams. Idempotent.
func (i *Indicator) Dispose() {
	i.mu.Lock()
	if i.disposed {
		i.mu.Unlock()
		return
	}
	i.disposed = true
	handle := i.badgeHandle
	i.badgeHandle = nil
	subs := i.subs
	i.subs = nil
	i.mu.Unlock()

	if handle != nil {
		handle.Dispose()
	}
	event.DisposeAll(subs...)
}
