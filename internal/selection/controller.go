// Package selection keeps the selected schedule day, the selected diary day
// and the visible calendar month consistent, and turns registry state into
// views for the CLI and TUI.
package selection

import (
	"sync"
	"time"

	"github.com/xolan/timeflow/internal/diary"
	"github.com/xolan/timeflow/internal/goal"
	"github.com/xolan/timeflow/internal/logging"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/task"
	"github.com/xolan/timeflow/internal/timer"
	"github.com/xolan/timeflow/internal/timeutil"
)

const (
	DefaultAutosaveDelay = 800 * time.Millisecond
	DefaultStatusTimeout = 1500 * time.Millisecond
)

type statusKind int

const (
	statusSaved statusKind = iota
	statusAutosaved
)

var statusText = map[timeutil.Locale][2]string{
	timeutil.LocaleEnglish:     {"Saved", "Autosaved"},
	timeutil.LocaleTraditional: {"已儲存", "已自動儲存"},
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Clock         timeutil.Clock
	Scheduler     timer.Scheduler
	AutosaveDelay time.Duration
	StatusTimeout time.Duration
	Locale        timeutil.Locale
	Logger        *logging.Logger
}

// SelectOptions controls SelectDiaryDate.
type SelectOptions struct {
	// AutosavePrevious writes an unsaved edit of the current day before
	// switching. Without it the edit is dropped.
	AutosavePrevious bool
}

// Controller owns the selection state. All methods are safe to call from
// multiple goroutines; timer callbacks take the same lock as commands.
type Controller struct {
	mu     sync.Mutex
	tasks  *task.Registry
	diary  *diary.Registry
	goals  *goal.Registry
	clock  timeutil.Clock
	locale timeutil.Locale
	logger *logging.Logger

	selectedTaskDate  string
	diarySelectedDate string
	diaryViewMonth    time.Time
	draft             string
	dirty             bool

	autosave *timer.Debouncer
	status   *timer.Expiring
	onChange func()
}

// New builds a controller. The schedule starts on today; the diary reopens
// on its last viewed day.
func New(tasks *task.Registry, d *diary.Registry, goals *goal.Registry, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = timeutil.SystemClock
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timer.Real()
	}
	if opts.AutosaveDelay <= 0 {
		opts.AutosaveDelay = DefaultAutosaveDelay
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = DefaultStatusTimeout
	}
	if _, ok := statusText[opts.Locale]; !ok {
		opts.Locale = timeutil.DefaultLocale
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	c := &Controller{
		tasks:    tasks,
		diary:    d,
		goals:    goals,
		clock:    opts.Clock,
		locale:   opts.Locale,
		logger:   opts.Logger.WithComponent("selection"),
		autosave: timer.NewDebouncer(opts.Scheduler, opts.AutosaveDelay),
		status:   timer.NewExpiring(opts.Scheduler, opts.StatusTimeout),
	}
	c.status.OnExpire(c.notify)

	now := c.clock()
	c.selectedTaskDate = timeutil.Today(now)
	c.openDiaryLocked(d.LastViewedDate())
	return c
}

// OnChange registers f to run after a timer changed state on its own: an
// autosave or a status message clearing. f runs without the controller
// lock held and may call back into the controller.
func (c *Controller) OnChange(f func()) {
	c.mu.Lock()
	c.onChange = f
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.Lock()
	f := c.onChange
	c.mu.Unlock()
	if f != nil {
		f()
	}
}

// Locale returns the label locale.
func (c *Controller) Locale() timeutil.Locale {
	return c.locale
}

// Schedule

// SelectTaskDate shows the schedule of s. An invalid s selects today.
func (c *Controller) SelectTaskDate(s string) TaskView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectedTaskDate, _ = timeutil.NormalizeDateKey(s, c.clock())
	return c.taskViewLocked(c.clock())
}

// SelectToday shows today's schedule.
func (c *Controller) SelectToday() TaskView {
	return c.SelectTaskDate(timeutil.Today(c.clock()))
}

// SelectTomorrow shows tomorrow's schedule.
func (c *Controller) SelectTomorrow() TaskView {
	return c.SelectTaskDate(timeutil.Tomorrow(c.clock()))
}

// ShiftTaskDate moves the schedule by delta days.
func (c *Controller) ShiftTaskDate(delta int) TaskView {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, day := timeutil.NormalizeDateKey(c.selectedTaskDate, c.clock())
	c.selectedTaskDate = timeutil.DateKey(day.AddDate(0, 0, delta))
	return c.taskViewLocked(c.clock())
}

// TaskView returns the schedule of the selected day.
func (c *Controller) TaskView() TaskView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taskViewLocked(c.clock())
}

// Tick recomputes the schedule view as of now. It never writes.
func (c *Controller) Tick(now time.Time) TaskView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taskViewLocked(now)
}

func (c *Controller) taskViewLocked(now time.Time) TaskView {
	date, day := timeutil.NormalizeDateKey(c.selectedTaskDate, now)
	v := TaskView{
		Date:       date,
		Label:      c.locale.Label(day),
		IsToday:    date == timeutil.Today(now),
		IsTomorrow: date == timeutil.Tomorrow(now),
		Tasks:      c.tasks.List(date),
	}
	if v.IsToday {
		v.ActiveID, v.HasActive = c.tasks.ActiveTaskID(date, timeutil.MinutesSinceMidnight(now))
	}
	return v
}

// SuggestedSlot proposes a one hour slot starting at the next half hour,
// for prefilling a new task. The slot never crosses midnight: late in the
// day it starts at 23:30 at the latest and ends at 23:59.
func (c *Controller) SuggestedSlot() (start, end string) {
	const lastMinute = 24*60 - 1

	minutes := timeutil.MinutesSinceMidnight(c.clock())
	begin := min(((minutes+29)/30)*30, lastMinute-29)
	return timeutil.FormatClock(begin), timeutil.FormatClock(min(begin+60, lastMinute))
}

// AddTask adds a task and returns it with the refreshed schedule. An empty
// date means the selected day. When the task lands on another day the
// schedule follows it.
func (c *Controller) AddTask(f task.Fields) (task.Task, TaskView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f.Date == "" {
		f.Date = c.selectedTaskDate
	}
	t, err := c.tasks.Add(f)
	if err != nil {
		return task.Task{}, c.taskViewLocked(c.clock()), err
	}
	c.selectedTaskDate = t.Date
	return t, c.taskViewLocked(c.clock()), nil
}

// UpdateTask applies p and follows the task to its day.
func (c *Controller) UpdateTask(id int64, p task.Patch) (TaskView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.tasks.Update(id, p)
	if err != nil {
		return c.taskViewLocked(c.clock()), err
	}
	c.selectedTaskDate = t.Date
	return c.taskViewLocked(c.clock()), nil
}

// ToggleTask flips a task's completed flag.
func (c *Controller) ToggleTask(id int64) (TaskView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.tasks.Toggle(id)
	return c.taskViewLocked(c.clock()), err
}

// DeleteTask removes a task and reports whether it existed.
func (c *Controller) DeleteTask(id int64) (TaskView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.tasks.Delete(id)
	return c.taskViewLocked(c.clock()), removed
}

// Diary

func (c *Controller) openDiaryLocked(date string) {
	c.diarySelectedDate = date
	c.draft = c.diary.EntryFor(date)
	c.dirty = false
	if day, ok := timeutil.ParseDateKey(date); ok {
		c.diaryViewMonth = timeutil.StartOfMonth(day)
	}
}

// SelectDiaryDate opens the diary on s and remembers it as the last viewed
// day. An invalid s leaves the selection unchanged.
func (c *Controller) SelectDiaryDate(s string, opts SelectOptions) DiaryView {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !timeutil.IsDateKey(s) {
		return c.diaryViewLocked()
	}

	c.autosave.Cancel()
	if c.dirty {
		if opts.AutosavePrevious {
			c.writeDraftLocked()
		} else {
			c.logger.Debugw("discarding unsaved diary edit", "date", c.diarySelectedDate)
		}
	}

	c.openDiaryLocked(s)
	if err := c.diary.SetLastViewed(s); err != nil {
		c.logger.Warnw("last viewed date rejected", "date", s, "error", err)
	}
	return c.diaryViewLocked()
}

// EditDiary replaces the draft of the selected day and schedules an
// autosave. Each edit restarts the delay.
func (c *Controller) EditDiary(text string) DiaryView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = text
	c.dirty = true
	c.autosave.Trigger(c.autosaveFired)
	return c.diaryViewLocked()
}

func (c *Controller) autosaveFired() {
	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return
	}
	c.writeDraftLocked()
	c.status.Set(c.statusLocked(statusAutosaved))
	c.mu.Unlock()

	c.notify()
}

// SaveDiary writes the draft immediately, cancelling a pending autosave.
func (c *Controller) SaveDiary() DiaryView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.autosave.Cancel()
	c.writeDraftLocked()
	c.status.Set(c.statusLocked(statusSaved))
	return c.diaryViewLocked()
}

// Flush writes a pending edit without a status message and reports whether
// there was one. Call it before exiting.
func (c *Controller) Flush() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.autosave.Cancel()
	if !c.dirty {
		return false
	}
	c.writeDraftLocked()
	return true
}

func (c *Controller) writeDraftLocked() {
	if err := c.diary.Save(c.diarySelectedDate, c.draft); err != nil {
		c.logger.Warnw("diary save rejected", "date", c.diarySelectedDate, "error", err)
		return
	}
	c.dirty = false
}

func (c *Controller) statusLocked(kind statusKind) string {
	return statusText[c.locale][kind]
}

// DiaryView returns the diary page of the selected diary day.
func (c *Controller) DiaryView() DiaryView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.diaryViewLocked()
}

func (c *Controller) diaryViewLocked() DiaryView {
	v := DiaryView{
		Date:   c.diarySelectedDate,
		Text:   c.draft,
		Status: c.status.Get(),
		Dirty:  c.dirty,
	}
	if day, ok := timeutil.ParseDateKey(c.diarySelectedDate); ok {
		v.Label = c.locale.Label(day)
	}
	return v
}

// Calendar

// ShiftCalendarMonth moves the visible month by delta, pinned to day 1.
func (c *Controller) ShiftCalendarMonth(delta int) CalendarView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diaryViewMonth = timeutil.AddMonths(c.diaryViewMonth, delta)
	return c.calendarViewLocked()
}

// CalendarView returns the visible month.
func (c *Controller) CalendarView() CalendarView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calendarViewLocked()
}

func (c *Controller) calendarViewLocked() CalendarView {
	cal := diary.BuildCalendar(c.diaryViewMonth, timeutil.Today(c.clock()), c.diarySelectedDate, c.diary.HasEntry)
	return CalendarView{
		Month:    cal.Month,
		Label:    c.locale.MonthLabel(cal.Month),
		Calendar: cal,
	}
}

// Goals

// AddGoal adds a goal at the top of the list.
func (c *Controller) AddGoal(title string) (GoalView, error) {
	_, err := c.goals.Add(title)
	return c.GoalView(), err
}

// ToggleGoal flips a goal. Unknown ids are ignored.
func (c *Controller) ToggleGoal(id int64) GoalView {
	c.goals.Toggle(id)
	return c.GoalView()
}

// DeleteGoal removes a goal. Unknown ids are ignored.
func (c *Controller) DeleteGoal(id int64) GoalView {
	c.goals.Delete(id)
	return c.GoalView()
}

// GoalView returns the goal checklist.
func (c *Controller) GoalView() GoalView {
	goals := c.goals.List()
	v := GoalView{Goals: goals}
	for _, g := range goals {
		if g.Completed {
			v.Completed++
		}
	}
	return v
}

// Snapshot returns every view at once.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{
		Tasks:    c.taskViewLocked(c.clock()),
		Diary:    c.diaryViewLocked(),
		Calendar: c.calendarViewLocked(),
	}
	c.mu.Unlock()

	s.Goals = c.GoalView()
	return s
}

// Reload re-reads the named collection from the store after another
// process changed it. An empty name reloads everything. An unsaved diary
// edit is kept.
func (c *Controller) Reload(name string) Snapshot {
	c.mu.Lock()
	all := name == ""
	if all || name == storage.NameTasks {
		c.tasks.Reload()
	}
	if all || name == storage.NameDiaryEntries {
		c.diary.Reload()
		if !c.dirty {
			c.draft = c.diary.EntryFor(c.diarySelectedDate)
		}
	}
	c.mu.Unlock()

	if all || name == storage.NameGoals {
		c.goals.Reload()
	}
	return c.Snapshot()
}
