package selection

import (
	"time"

	"github.com/xolan/timeflow/internal/diary"
	"github.com/xolan/timeflow/internal/goal"
	"github.com/xolan/timeflow/internal/task"
)

// TaskView is the schedule for the selected day.
type TaskView struct {
	Date       string
	Label      string
	IsToday    bool
	IsTomorrow bool
	Tasks      []task.Task
	// ActiveID is set only when the selected day is today and a task's
	// span contains the current minute.
	ActiveID  int64
	HasActive bool
}

// Active returns the active task, if any.
func (v TaskView) Active() (task.Task, bool) {
	if !v.HasActive {
		return task.Task{}, false
	}
	for _, t := range v.Tasks {
		if t.ID == v.ActiveID {
			return t, true
		}
	}
	return task.Task{}, false
}

// DiaryView is the diary page for the selected diary day.
type DiaryView struct {
	Date   string
	Label  string
	Text   string
	Status string
	// Dirty is true while an edit has not been written to the registry.
	Dirty bool
}

// CalendarView is the month picker next to the diary.
type CalendarView struct {
	Month    time.Time
	Label    string
	Calendar diary.Calendar
}

// GoalView is the goal checklist.
type GoalView struct {
	Goals     []goal.Goal
	Completed int
}

// Snapshot aggregates every view.
type Snapshot struct {
	Tasks    TaskView
	Diary    DiaryView
	Calendar CalendarView
	Goals    GoalView
}
