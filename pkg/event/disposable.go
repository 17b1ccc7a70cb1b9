package event

import "sync"

// Disposable is an owned cleanup capability. Dispose runs the cleanup
// exactly once; further calls are no-ops.
type Disposable struct {
	once sync.Once
	fn   func()
}

// NewDisposable wraps a cleanup function.
func NewDisposable(fn func()) *Disposable {
	return &Disposable{fn: fn}
}

// Dispose runs the cleanup. Safe to call multiple times.
func (d *Disposable) Dispose() {
	d.once.Do(func() {
		if d.fn != nil {
			d.fn()
		}
	})
}

// DisposeAll disposes each non-nil disposable in order.
func DisposeAll(ds ...*Disposable) {
	for _, d := range ds {
		if d != nil {
			d.Dispose()
		}
	}
}
