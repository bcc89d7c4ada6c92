// Package debounce delays a rapidly changing value until it has been stable
// for a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer forwards the last value passed to Set once no further Set call
// has happened for the quiet period. It is safe for concurrent use.
type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	armed   bool
	gen     uint64
	stopped bool
}

// New returns a Debouncer that calls fn with the settled value. fn runs on
// the timer's goroutine, never while the Debouncer's lock is held.
func New[T any](quiet time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, fn: fn}
}

// Set replaces the pending value and restarts the quiet period.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopTimerLocked()
	d.gen++
	d.pending = v
	d.armed = true

	gen := d.gen
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Flush cancels the pending timer and hands back the pending value, if any,
// without calling fn.
func (d *Debouncer[T]) Flush() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.pending, d.armed
	d.resetLocked()
	return v, ok
}

// Cancel drops the pending value.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

// Pending reports whether a value is waiting for the quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Stop cancels the pending timer. Later Set calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
	d.stopped = true
}

func (d *Debouncer[T]) resetLocked() {
	d.stopTimerLocked()
	d.gen++
	var zero T
	d.pending = zero
	d.armed = false
}

func (d *Debouncer[T]) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
