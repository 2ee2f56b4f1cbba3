// Package debounce implements a cancellable task that runs once activity settles.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Schedule calls into a single run of its task.
// At most one run is pending at any time.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	gen     uint64
	window  time.Duration
	task    func()
}

// New creates a new debouncer that runs task once window has elapsed after
// the last Schedule call.
func New(window time.Duration, task func()) *Debouncer {
	return &Debouncer{
		window: window,
		task:   task,
	}
}

// Schedule cancels any pending run and arranges a new one after the window.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire is called when the debounce window of generation gen expires.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()

	// A timer that was stopped too late must not run a cancelled or
	// rescheduled task.
	if !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	if d.task != nil {
		d.task()
	}
}

// Cancel drops the pending run without executing it.
// It reports whether a run was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	wasPending := d.pending
	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return wasPending
}

// Flush runs the pending task immediately and blocks until it completes.
// It reports whether a run was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if d.task != nil {
		d.task()
	}
	return true
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
