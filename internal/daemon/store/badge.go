package store

import (
	"github.com/grovetools/draft/pkg/event"
)

// Badge publishes the indicator's badge into the store so clients see it
// over the API and the SSE stream.
type Badge struct {
	store *Store
}

// NewBadge creates a badge host backed by the store.
func NewBadge(s *Store) *Badge {
	return &Badge{store: s}
}

// Show records the badge label. Disposing the returned handle clears it,
// but only if no newer badge has been shown since.
func (b *Badge) Show(count int, label string) *event.Disposable {
	b.store.SetBadge(label)
	return event.NewDisposable(func() {
		b.store.mu.Lock()
		current := b.store.state.BadgeLabel
		b.store.mu.Unlock()
		if current == label {
			b.store.SetBadge("")
		}
	})
}
