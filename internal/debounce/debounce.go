// Package debounce provides a cancelable coalescing timer: bursts of
// triggers collapse into a single callback once a quiet period elapses.
package debounce

import (
	"sync"
	"time"
)

// Timer runs fn on its own goroutine after the quiet window elapses with no
// further Trigger calls. Only one callback is pending at a time; each
// Trigger restarts the window.
type Timer struct {
	mu      sync.Mutex
	window  time.Duration
	fn      func()
	pending *time.Timer
}

// New constructs a Timer. fn must be safe to call from a timer goroutine.
func New(window time.Duration, fn func()) *Timer {
	if window <= 0 {
		window = time.Second
	}
	return &Timer{window: window, fn: fn}
}

// Trigger (re)starts the quiet window, cancelling any pending callback.
func (t *Timer) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(t.window, t.run)
}

func (t *Timer) run() {
	t.mu.Lock()
	t.pending = nil
	t.mu.Unlock()
	t.fn()
}

// Stop cancels the pending callback, if any, and reports whether one was
// pending. It does not wait for a callback that has already started.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return false
	}
	stopped := t.pending.Stop()
	t.pending = nil
	return stopped
}

// Flush runs the callback immediately if one is pending and reports whether
// it ran. The callback executes on the caller's goroutine.
func (t *Timer) Flush() bool {
	if !t.Stop() {
		return false
	}
	t.fn()
	return true
}

// Pending reports whether a callback is scheduled.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}
