package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler whose clock only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu      sync.Mutex
	elapsed time.Duration
	nextID  int
	timers  []*manualTimer
}

type manualTimer struct {
	m        *Manual
	id       int
	deadline time.Duration
	f        func()
	done     bool
}

// NewManual returns a Manual scheduler at elapsed time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc registers f to run once Advance moves past d from now.
func (m *Manual) AfterFunc(d time.Duration, f func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t := &manualTimer{m: m, id: m.nextID, deadline: m.elapsed + d, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves the clock by d and runs every timer that came due, in
// deadline order. Timers scheduled by a callback run too if they fall
// within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.elapsed + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		due := m.nextDue(target)
		if due == nil {
			m.elapsed = target
			m.mu.Unlock()
			return
		}
		m.elapsed = due.deadline
		due.done = true
		m.mu.Unlock()

		due.f()
	}
}

// nextDue returns the earliest live timer at or before target. Caller holds mu.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].deadline == m.timers[j].deadline {
			return m.timers[i].id < m.timers[j].id
		}
		return m.timers[i].deadline < m.timers[j].deadline
	})
	if len(m.timers) == 0 || m.timers[0].deadline > target {
		return nil
	}
	return m.timers[0]
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.timers {
		if !t.done {
			n++
		}
	}
	return n
}
