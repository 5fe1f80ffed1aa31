package timer

import (
	"sync"
	"time"
)

// Debouncer delays a call until no new Trigger arrived for the configured
// delay. Each Trigger cancels the previously scheduled call.
type Debouncer struct {
	mu      sync.Mutex
	sched   Scheduler
	delay   time.Duration
	pending Stopper
	seq     uint64
}

// NewDebouncer creates a debouncer. A nil scheduler uses Real().
func NewDebouncer(sched Scheduler, delay time.Duration) *Debouncer {
	if sched == nil {
		sched = Real()
	}
	return &Debouncer{sched: sched, delay: delay}
}

// Delay returns the configured quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules f, replacing any call still pending.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = d.sched.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A later Trigger or Cancel won the race with this timer.
		if seq != d.seq || d.pending == nil {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		f()
	})
}

// Cancel drops the pending call and reports whether there was one.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}
	d.pending.Stop()
	d.pending = nil
	d.seq++
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
