// Package diary keeps one free-text entry per calendar day, remembers the
// last day the diary was opened on, and lays out the month picker.
package diary

import (
	"sort"
	"strings"
	"sync"

	"github.com/xolan/timeflow/internal/logging"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/timeutil"
	"github.com/xolan/timeflow/internal/validate"
)

// Registry owns the date-keyed diary entries.
type Registry struct {
	mu       sync.Mutex
	store    *storage.Store
	clock    timeutil.Clock
	logger   *logging.Logger
	entries  map[string]string
	migrated bool
}

// New loads the stored entries and migrates a legacy single entry if the
// map is empty.
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
		logger: logger.WithComponent("diary"),
	}
	r.Reload()
	r.LegacyMigrate()
	return r
}

// Reload discards in-memory entries and reads the store again.
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = storage.Load(r.store, storage.NameDiaryEntries, map[string]string{})
	if r.entries == nil {
		r.entries = map[string]string{}
	}
}

func (r *Registry) persistLocked() {
	if err := r.store.Save(storage.NameDiaryEntries, r.entries); err != nil {
		r.logger.Warnw("keeping unsaved diary entries in memory", "error", err)
	}
}

// LegacyMigrate moves the pre-calendar single entry under today's date. It
// runs only while the map is empty and at most once per store: a marker key
// written after the move keeps it from running again after a restart. It
// reports whether anything moved. The legacy value itself is never modified.
func (r *Registry) LegacyMigrate() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.migrated || len(r.entries) > 0 || r.store.Has(storage.NameDiaryMigrated) {
		return false
	}
	legacy, ok := r.store.ReadString(storage.NameLegacyDiary)
	if !ok || legacy == "" {
		return false
	}

	today := timeutil.Today(r.clock())
	r.entries[today] = legacy
	r.migrated = true
	r.persistLocked()
	if err := r.store.WriteString(storage.NameDiaryMigrated, today); err != nil {
		r.logger.Warnw("could not record legacy diary migration", "error", err)
	}
	r.logger.Infow("migrated legacy diary entry", "date", today)
	return true
}

// EntryFor returns the text saved for date, or "".
func (r *Registry) EntryFor(date string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[date]
}

// Save stores text as the entry for date, replacing any previous text, and
// records date as the last viewed day.
func (r *Registry) Save(date, text string) error {
	if err := validate.Var("date", date, "required,datekey"); err != nil {
		return err
	}

	r.mu.Lock()
	r.entries[date] = text
	r.persistLocked()
	r.mu.Unlock()

	r.writeLastViewed(date)
	return nil
}

// Dates returns the days with non-blank text in ascending order.
func (r *Registry) Dates() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	dates := make([]string, 0, len(r.entries))
	for d, text := range r.entries {
		if strings.TrimSpace(text) != "" && timeutil.IsDateKey(d) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

// HasEntry reports whether date has non-blank text.
func (r *Registry) HasEntry(date string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.TrimSpace(r.entries[date]) != ""
}

// LastViewedDate returns the stored last viewed day, or today when none is
// stored or the stored value is not a real date.
func (r *Registry) LastViewedDate() string {
	if last, ok := r.store.ReadString(storage.NameDiaryLastDate); ok && timeutil.IsDateKey(last) {
		return last
	}
	return timeutil.Today(r.clock())
}

// SetLastViewed records date as the day the diary should reopen on.
func (r *Registry) SetLastViewed(date string) error {
	if err := validate.Var("date", date, "required,datekey"); err != nil {
		return err
	}
	r.writeLastViewed(date)
	return nil
}

func (r *Registry) writeLastViewed(date string) {
	if err := r.store.WriteString(storage.NameDiaryLastDate, date); err != nil {
		r.logger.Warnw("last viewed date not saved", "date", date, "error", err)
	}
}
