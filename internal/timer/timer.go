// Package timer provides the deferred work behind diary autosave and
// transient status messages. Everything goes through a Scheduler so tests
// can drive time by hand.
package timer

import "time"

// Stopper cancels a scheduled call. Stop reports whether the call was
// prevented from running.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Real returns a Scheduler backed by time.AfterFunc. Callbacks run on their
// own goroutine.
func Real() Scheduler {
	return realScheduler{}
}
