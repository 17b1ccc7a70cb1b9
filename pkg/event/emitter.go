// Package event provides the synchronous publish/subscribe primitives used
// across the draft ecosystem. An Emitter delivers values to listeners in
// registration order, and every subscription is individually disposable.
package event

import "sync"

// Handler is a function invoked with each fired value.
type Handler[T any] func(T)

// listener pairs a handler with the ID used to remove it.
type listener[T any] struct {
	id      uint64
	handler Handler[T]
}

// Emitter is a typed notification source. Fire delivers the value to all
// listeners registered at the time of the call, synchronously and in
// registration order. Listeners may register or dispose other listeners
// (including themselves) from inside a handler: dispatch iterates over a
// snapshot taken before the first handler runs.
type Emitter[T any] struct {
	mu        sync.Mutex
	listeners []listener[T]
	nextID    uint64
}

// New creates an Emitter.
func New[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Listen registers a handler and returns a Disposable that removes it.
// Disposing twice is a no-op.
func (e *Emitter[T]) Listen(h Handler[T]) *Disposable {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, handler: h})
	e.mu.Unlock()

	return NewDisposable(func() {
		e.remove(id)
	})
}

// Fire delivers v to all current listeners.
func (e *Emitter[T]) Fire(v T) {
	e.mu.Lock()
	snapshot := make([]listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		l.handler(v)
	}
}

// ListenerCount returns the number of active listeners.
func (e *Emitter[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

func (e *Emitter[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}
