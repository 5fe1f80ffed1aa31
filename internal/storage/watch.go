package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports that the value stored under Name changed on disk. An empty
// Name means the change could not be attributed and callers should reload
// everything.
type Event struct {
	Name string
}

// Watch streams change events for the data directory until ctx is cancelled.
// Bursts of writes are coalesced into one event per name. The channel is
// closed when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if s.dir == "" {
		return nil, errors.New("storage: data directory unknown")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage: create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("storage: watch %s: %w", s.dir, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				s.logger.Warnw("watcher close failed", "error", err)
			}
		}()

		var sendMu sync.Mutex
		done := false
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				// Consumer is busy; it reloads on the next event anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer func() {
			throttle.Stop()
			sendMu.Lock()
			done = true
			sendMu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warnw("watcher error", "error", err)
				throttle.Enqueue("", send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				name := s.nameForKey(filepath.Base(evt.Name))
				if name == "" || strings.Contains(name, BackupSuffix+".") {
					continue
				}
				throttle.Enqueue(name, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so a UI reloads once
// per burst of writes.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(name string, send func(Event)) {
	t.mu.Lock()
	t.pending[name] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for name := range pending {
		send(Event{Name: name})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
