package indicator

import (
	"testing"

	"github.com/grovetools/draft/config"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
	"github.com/grovetools/draft/pkg/workingcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPolicy struct {
	mode config.AutoSaveMode
}

func (p *stubPolicy) AutoSaveMode() config.AutoSaveMode { return p.mode }

type stubEditor struct {
	open   map[resource.Key]bool
	opened [][]resource.Key
	err    error
}

func newStubEditor() *stubEditor {
	return &stubEditor{open: make(map[resource.Key]bool)}
}

func (e *stubEditor) IsOpen(key resource.Key) bool { return e.open[key] }

func (e *stubEditor) OpenInBackground(keys []resource.Key) error {
	if e.err != nil {
		return e.err
	}
	e.opened = append(e.opened, keys)
	for _, k := range keys {
		e.open[k] = true
	}
	return nil
}

type badgeCall struct {
	count int
	label string
}

type stubBadge struct {
	calls  []badgeCall
	clears int
}

func (b *stubBadge) Show(count int, label string) *event.Disposable {
	b.calls = append(b.calls, badgeCall{count: count, label: label})
	return event.NewDisposable(func() { b.clears++ })
}

type fixture struct {
	registry  *workingcopy.Registry
	policy    *stubPolicy
	editor    *stubEditor
	badge     *stubBadge
	fileDirty *event.Emitter[resource.Key]
	shutdown  *event.Emitter[struct{}]
	indicator *Indicator
}

func newFixture(t *testing.T, mode config.AutoSaveMode) *fixture {
	t.Helper()
	f := &fixture{
		registry:  workingcopy.NewRegistry(),
		policy:    &stubPolicy{mode: mode},
		editor:    newStubEditor(),
		badge:     &stubBadge{},
		fileDirty: event.New[resource.Key](),
		shutdown:  event.New[struct{}](),
	}
	f.indicator = New(Options{
		Registry:  f.registry,
		Policy:    f.policy,
		Editor:    f.editor,
		Badge:     f.badge,
		FileDirty: f.fileDirty,
		Shutdown:  f.shutdown,
	})
	t.Cleanup(f.indicator.Dispose)
	return f
}

func TestIndicator_ShowsSingularLabel(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityNone)
	f.registry.Register(c)
	c.SetDirty(true)

	require.Len(t, f.badge.calls, 1)
	assert.Equal(t, badgeCall{count: 1, label: "1 unsaved file"}, f.badge.calls[0])
	assert.Equal(t, 1, f.indicator.LastKnownDirtyCount())
}

func TestIndicator_ShowsPluralLabel(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)

	a := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityNone)
	b := workingcopy.NewCopy(resource.NewKey("/f2"), workingcopy.CapabilityNone)
	f.registry.Register(a)
	f.registry.Register(b)

	a.SetDirty(true)
	b.SetDirty(true)

	require.Len(t, f.badge.calls, 2)
	assert.Equal(t, badgeCall{count: 2, label: "2 unsaved files"}, f.badge.calls[1])
}

func TestIndicator_ClearsBadgeAtZero(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityNone)
	f.registry.Register(c)

	c.SetDirty(true)
	c.SetDirty(false)

	require.Len(t, f.badge.calls, 1)
	assert.Equal(t, 1, f.badge.clears)
	assert.Equal(t, 0, f.indicator.LastKnownDirtyCount())
}

func TestIndicator_CompensatingEventClearsBadge(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityNone)
	f.registry.Register(c)
	c.SetDirty(true)
	require.Len(t, f.badge.calls, 1)

	handle := f.registry.Register(c)
	handle.Dispose()

	// The copy left while dirty; the compensating event drives the badge
	// back to zero.
	assert.Equal(t, 1, f.badge.clears)
	assert.Equal(t, 0, f.indicator.LastKnownDirtyCount())
}

func TestIndicator_CleanTransitionWithEmptyBadgeDoesNotRecompute(t *testing.T) {
	f := newFixture(t, config.AutoSaveShortDelay)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityAutoSave)
	f.registry.Register(c)
	c.SetDirty(true) // suppressed, badge never computed

	// Policy flips; the clean transition is no longer suppressed, but the
	// copy is not dirty and no badge is showing, so nothing recomputes.
	f.policy.mode = config.AutoSaveOff
	c.SetDirty(false)

	assert.Empty(t, f.badge.calls)
	assert.Equal(t, -1, f.indicator.LastKnownDirtyCount())
}

func TestIndicator_SuppressesShortDelayAutoSaveCopies(t *testing.T) {
	f := newFixture(t, config.AutoSaveShortDelay)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityAutoSave)
	f.registry.Register(c)
	c.SetDirty(true)

	// The registry's count moved underneath the indicator, but the badge
	// must not change.
	assert.Equal(t, 1, f.registry.DirtyCount())
	assert.Empty(t, f.badge.calls)
	assert.Equal(t, -1, f.indicator.LastKnownDirtyCount())
}

func TestIndicator_ShortDelayPolicyStillTracksPlainCopies(t *testing.T) {
	f := newFixture(t, config.AutoSaveShortDelay)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityNone)
	f.registry.Register(c)
	c.SetDirty(true)

	require.Len(t, f.badge.calls, 1)
}

func TestIndicator_AutoSaveCapabilityWithoutShortDelayNotSuppressed(t *testing.T) {
	f := newFixture(t, config.AutoSaveAfterDelay)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityAutoSave)
	f.registry.Register(c)
	c.SetDirty(true)

	require.Len(t, f.badge.calls, 1)
}

func TestIndicator_OpensDirtyFilesInBackground(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)
	key := resource.NewKey("/notes/todo.md")

	f.fileDirty.Fire(key)

	require.Len(t, f.editor.opened, 1)
	assert.Equal(t, []resource.Key{key}, f.editor.opened[0])
}

func TestIndicator_DoesNotReopenAlreadyOpenResources(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)
	key := resource.NewKey("/notes/todo.md")
	f.editor.open[key] = true

	f.fileDirty.Fire(key)

	assert.Empty(t, f.editor.opened)
}

func TestIndicator_DeduplicatesOpenRequests(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)
	key := resource.NewKey("/notes/todo.md")

	f.fileDirty.Fire(key)
	f.fileDirty.Fire(key)

	assert.Len(t, f.editor.opened, 1)
}

func TestIndicator_PendingSaveSuppressesOpen(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)
	key := resource.NewKey("/notes/todo.md")

	f.indicator.MarkPendingSave(key)
	f.fileDirty.Fire(key)
	assert.Empty(t, f.editor.opened)

	f.indicator.ClearPendingSave(key)
	f.editor.open = map[resource.Key]bool{}
	f.fileDirty.Fire(key)
	assert.Len(t, f.editor.opened, 1)
}

func TestIndicator_ShutdownDisposes(t *testing.T) {
	f := newFixture(t, config.AutoSaveOff)

	c := workingcopy.NewCopy(resource.NewKey("/f1"), workingcopy.CapabilityNone)
	f.registry.Register(c)
	c.SetDirty(true)
	require.Len(t, f.badge.calls, 1)

	f.shutdown.Fire(struct{}{})

	assert.Equal(t, 1, f.badge.clears)

	// Detached: further transitions no longer touch the badge.
	c.SetDirty(false)
	c.SetDirty(true)
	assert.Len(t, f.badge.calls, 1)
}
