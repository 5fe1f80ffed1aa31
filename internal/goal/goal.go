// Package goal keeps a flat checklist of goals, newest first.
package goal

import (
	"strings"
	"sync"

	"github.com/xolan/timeflow/internal/logging"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/timeutil"
	"github.com/xolan/timeflow/internal/validate"
)

// Goal is one checklist item.
type Goal struct {
	ID        int64  `json:"id"`
	Title     string `json:"title" validate:"notblank"`
	Completed bool   `json:"completed"`
}

// Registry owns the goal list.
type Registry struct {
	mu     sync.Mutex
	store  *storage.Store
	clock  timeutil.Clock
	logger *logging.Logger
	goals  []Goal
	lastID int64
}

// New loads the stored goals.
func New(store *storage.Store, clock timeutil.Clock, logger *logging.Logger) *Registry {
	if clock == nil {
		clock = timeutil.SystemClock
	}
	if logger == nil {
		logger = logging.Nop()
	}
	r := &Registry{
		store:  store,
		clock:  clock,
		logger: logger.WithComponent("goals"),
	}
	r.Reload()
	return r
}

// Reload discards the in-memory list and reads the store again.
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.goals = storage.Load(r.store, storage.NameGoals, []Goal{})
	if r.goals == nil {
		r.goals = []Goal{}
	}
	for _, g := range r.goals {
		if g.ID > r.lastID {
			r.lastID = g.ID
		}
	}
}

func (r *Registry) persistLocked() {
	if err := r.store.Save(storage.NameGoals, r.goals); err != nil {
		r.logger.Warnw("keeping unsaved goals in memory", "error", err)
	}
}

func (r *Registry) indexLocked(id int64) int {
	for i, g := range r.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// List returns the goals, newest first.
func (r *Registry) List() []Goal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Goal{}, r.goals...)
}

// Add trims title and puts a new goal at the front of the list.
func (r *Registry) Add(title string) (Goal, error) {
	g := Goal{Title: strings.TrimSpace(title)}
	if err := validate.Struct(g); err != nil {
		return Goal{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g.ID = r.clock().UnixMilli()
	if g.ID <= r.lastID {
		g.ID = r.lastID + 1
	}
	r.lastID = g.ID

	r.goals = append([]Goal{g}, r.goals...)
	r.persistLocked()
	return g, nil
}

// Toggle flips the completed flag. An unknown id changes nothing and
// reports false.
func (r *Registry) Toggle(id int64) (Goal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return Goal{}, false
	}
	r.goals[i].Completed = !r.goals[i].Completed
	r.persistLocked()
	return r.goals[i], true
}

// Delete removes the goal with id. An unknown id changes nothing and
// reports false.
func (r *Registry) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return false
	}
	if err := r.store.Backup(storage.NameGoals); err != nil {
		r.logger.Warnw("backup before delete failed", "error", err)
	}
	r.goals = append(r.goals[:i:i], r.goals[i+1:]...)
	r.persistLocked()
	return true
}
