// Package store holds the daemon's in-memory dirty state.
package store

import (
	"sort"
	"sync"
	"time"
)

// Store is the in-memory state store for the daemon.
// It is thread-safe and supports pub/sub for real-time updates.
type Store struct {
	mu          sync.RWMutex
	state       State
	subscribers map[chan Update]struct{}
}

// New creates a new Store instance.
func New() *Store {
	return &Store{
		state: State{
			DirtyResources: []string{},
		},
		subscribers: make(map[chan Update]struct{}),
	}
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.DirtyResources = append([]string(nil), s.state.DirtyResources...)
	return out
}

// SetDirty replaces the dirty resource set and notifies subscribers.
func (s *Store) SetDirty(resources []string) {
	sorted := append([]string(nil), resources...)
	sort.Strings(sorted)

	s.mu.Lock()
	s.state.DirtyCount = len(sorted)
	s.state.DirtyResources = sorted
	s.state.UpdatedAt = time.Now()
	snapshot := s.state
	snapshot.DirtyResources = append([]string(nil), sorted...)
	s.broadcastLocked(Update{Type: UpdateDirty, Source: "registry", Payload: snapshot})
	s.mu.Unlock()
}

// SetBadge records the indicator's current badge label and notifies
// subscribers. An empty label means the badge is hidden.
func (s *Store) SetBadge(label string) {
	s.mu.Lock()
	s.state.BadgeLabel = label
	s.state.UpdatedAt = time.Now()
	s.broadcastLocked(Update{Type: UpdateBadge, Source: "indicator", Payload: label})
	s.mu.Unlock()
}

// BroadcastConfigReload sends a config reload notification to all subscribers.
func (s *Store) BroadcastConfigReload(file string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.broadcastLocked(Update{Type: UpdateConfigReload, Source: "config", Payload: file})
}

// broadcastLocked sends u to every subscriber. Callers hold s.mu.
func (s *Store) broadcastLocked(u Update) {
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
			// Non-blocking send to prevent slow clients from stalling the daemon
		}
	}
}

// Subscribe creates a new subscription channel for state updates.
func (s *Store) Subscribe() chan Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, 100)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, ch)
	close(ch)
}
