package timer

import (
	"sync"
	"time"
)

// Expiring holds a transient message that clears itself after a timeout.
// Setting a new message restarts the timeout; the old message's clear is
// discarded.
type Expiring struct {
	mu       sync.Mutex
	sched    Scheduler
	timeout  time.Duration
	value    string
	seq      uint64
	timer    Stopper
	onExpire func()
}

// NewExpiring creates an empty message holder. A nil scheduler uses Real().
func NewExpiring(sched Scheduler, timeout time.Duration) *Expiring {
	if sched == nil {
		sched = Real()
	}
	return &Expiring{sched: sched, timeout: timeout}
}

// OnExpire registers f to run after a message clears itself.
func (e *Expiring) OnExpire(f func()) {
	e.mu.Lock()
	e.onExpire = f
	e.mu.Unlock()
}

// Set shows value until the timeout elapses or another value replaces it.
func (e *Expiring) Set(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
	}
	e.value = value
	e.seq++
	seq := e.seq
	e.timer = e.sched.AfterFunc(e.timeout, func() {
		e.mu.Lock()
		if seq != e.seq || e.value != value {
			e.mu.Unlock()
			return
		}
		e.value = ""
		e.timer = nil
		cb := e.onExpire
		e.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

// Clear removes the message immediately without notifying.
func (e *Expiring) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.value = ""
	e.seq++
}

// Get returns the current message, or "" once it expired.
func (e *Expiring) Get() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}
