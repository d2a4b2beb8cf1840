// Package debounce delays propagation of rapidly changing values until
// they settle.
package debounce

import (
	"sync"
	"time"
)

// Handle identifies one scheduled emission.
type Handle struct {
	seq   uint64
	owner canceller
}

type canceller interface {
	cancel(seq uint64) bool
	pending(seq uint64) bool
}

// Cancel stops the emission if it has not fired yet. It reports whether
// anything was cancelled.
func (h Handle) Cancel() bool {
	if h.owner == nil {
		return false
	}
	return h.owner.cancel(h.seq)
}

// Pending reports whether this emission is still scheduled.
func (h Handle) Pending() bool {
	if h.owner == nil {
		return false
	}
	return h.owner.pending(h.seq)
}

// Debouncer emits the last value passed to Set once no further Set has
// happened for the configured delay. Each instance has its own state.
type Debouncer[T any] struct {
	delay time.Duration
	emit  func(T)

	mu         sync.Mutex
	seq        uint64
	timer      *time.Timer
	next       T
	settled    T
	hasSettled bool
}

// New creates a debouncer calling emit with each settled value. emit runs
// on a timer goroutine and may be nil when only Value is used.
func New[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Delay returns the quiescence window.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set schedules v, invalidating any emission still pending.
func (d *Debouncer[T]) Set(v T) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.next = v
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })

	return Handle{seq: seq, owner: d}
}

// Flush emits the pending value immediately. It reports whether one was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	seq := d.seq
	d.mu.Unlock()

	return d.fire(seq)
}

// Stop cancels whatever is pending.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Value returns the last settled value.
func (d *Debouncer[T]) Value() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled, d.hasSettled
}

func (d *Debouncer[T]) fire(seq uint64) bool {
	d.mu.Lock()
	// A Set that raced with the timer has already bumped seq.
	if seq != d.seq || d.timer == nil {
		d.mu.Unlock()
		return false
	}
	v := d.next
	d.settled = v
	d.hasSettled = true
	d.timer = nil
	d.mu.Unlock()

	if d.emit != nil {
		d.emit(v)
	}
	return true
}

func (d *Debouncer[T]) cancel(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq || d.timer == nil {
		return false
	}
	d.stopLocked()
	return true
}

func (d *Debouncer[T]) pending(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq && d.timer != nil
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
