package task

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/xolan/timeflow/internal/logging"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/timeutil"
	"github.com/xolan/timeflow/internal/validate"
)

// ErrNotFound is returned when an id does not name a stored task.
var ErrNotFound = errors.New("task not found")

// Registry owns the task collection. Every mutation is written through to
// the store; when a write fails the in-memory collection stays authoritative.
type Registry struct {
	mu     sync.Mutex
	store  *storage.Store
	clock  timeutil.Clock
	logger *logging.Logger
	tasks  []Task
	lastID int64
}

// New loads the stored tasks. Tasks stored without a date are assigned
// today's date and the repaired collection is written back once.
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
		logger: logger.WithComponent("tasks"),
	}
	r.load()
	return r
}

// Reload discards in-memory state and reads the store again.
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked()
}

func (r *Registry) load() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked()
}

func (r *Registry) loadLocked() {
	r.tasks = storage.Load(r.store, storage.NameTasks, []Task{})
	if r.tasks == nil {
		r.tasks = []Task{}
	}

	today := timeutil.Today(r.clock())
	repaired := 0
	for i := range r.tasks {
		if r.tasks[i].Date == "" {
			r.tasks[i].Date = today
			repaired++
		}
		if r.tasks[i].ID > r.lastID {
			r.lastID = r.tasks[i].ID
		}
	}

	if repaired > 0 {
		r.logger.Infow("back-filled task dates", "count", repaired, "date", today)
		r.persistLocked()
	}
}

func (r *Registry) persistLocked() {
	if err := r.store.Save(storage.NameTasks, r.tasks); err != nil {
		r.logger.Warnw("keeping unsaved tasks in memory", "error", err)
	}
}

// nextIDLocked returns the creation timestamp in milliseconds, bumped past
// the last issued id so two adds in the same millisecond stay distinct.
func (r *Registry) nextIDLocked() int64 {
	id := r.clock().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *Registry) indexLocked(id int64) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// List returns the tasks on date ordered by start time. Tasks starting at
// the same time keep their insertion order.
func (r *Registry) List(date string) []Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Task, 0)
	for _, t := range r.tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// All returns every task in insertion order.
func (r *Registry) All() []Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Task(nil), r.tasks...)
}

// Get returns the task with id.
func (r *Registry) Get(id int64) (Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexLocked(id); i >= 0 {
		return r.tasks[i], true
	}
	return Task{}, false
}

// Add validates f and appends a new task. On a validation error nothing changes.
func (r *Registry) Add(f Fields) (Task, error) {
	color, ok := ParseColor(f.Color)
	if !ok {
		color = Color(f.Color)
	}
	t := Task{
		Title:     strings.TrimSpace(f.Title),
		StartTime: strings.TrimSpace(f.StartTime),
		EndTime:   strings.TrimSpace(f.EndTime),
		Date:      strings.TrimSpace(f.Date),
		Color:     color,
	}
	if err := validate.Struct(t); err != nil {
		return Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextIDLocked()
	r.tasks = append(r.tasks, t)
	r.persistLocked()
	r.logger.Debugw("task added", "id", t.ID, "date", t.Date)
	return t, nil
}

// Update merges p into the task with id. Only the fields p sets are
// validated, so older records with loose values can still be edited; on a
// validation error the stored task is left as it was.
func (r *Registry) Update(id int64, p Patch) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}

	updated := p.apply(r.tasks[i])
	if err := validate.StructPartial(updated, p.fields()...); err != nil {
		return Task{}, err
	}

	r.tasks[i] = updated
	r.persistLocked()
	return updated, nil
}

// Toggle flips the completed flag of the task with id.
func (r *Registry) Toggle(id int64) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	r.tasks[i].Completed = !r.tasks[i].Completed
	r.persistLocked()
	return r.tasks[i], nil
}

// Delete removes the task with id and reports whether it existed. The
// stored collection is backed up before it is rewritten.
func (r *Registry) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return false
	}

	if err := r.store.Backup(storage.NameTasks); err != nil {
		r.logger.Warnw("backup before delete failed", "error", err)
	}
	r.tasks = append(r.tasks[:i:i], r.tasks[i+1:]...)
	r.persistLocked()
	return true
}

// ActiveTaskID returns the first incomplete task on date, in List order,
// whose [start, end) interval contains nowMinutes. Overlapping tasks are
// allowed, so the earliest-listed match wins.
func (r *Registry) ActiveTaskID(date string, nowMinutes int) (int64, bool) {
	for _, t := range r.List(date) {
		if !t.Completed && t.Contains(nowMinutes) {
			return t.ID, true
		}
	}
	return 0, false
}
