// Package task holds time-boxed tasks and the registry that owns them.
package task

import (
	"strings"

	"github.com/xolan/timeflow/internal/timeutil"
)

// Color is the display tag of a task.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// DefaultColor is used when a task is added without one.
const DefaultColor = ColorBlue

// Colors lists the supported tags in picker order.
var Colors = []Color{ColorBlue, ColorGreen, ColorPurple, ColorOrange, ColorRed}

// ParseColor accepts a tag case-insensitively. An empty string yields DefaultColor.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultColor, true
	}
	for _, c := range Colors {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Task is a titled block of time on one calendar day. The JSON field names
// match the stored collection.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title" validate:"notblank"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
	Date      string `json:"date" validate:"required,datekey"`
	Color     Color  `json:"color" validate:"omitempty,oneof=blue green purple orange red"`
	Completed bool   `json:"completed"`
}

// Contains reports whether minutes falls in [StartTime, EndTime).
func (t Task) Contains(minutes int) bool {
	start, ok := timeutil.ParseClock(t.StartTime)
	if !ok {
		return false
	}
	end, ok := timeutil.ParseClock(t.EndTime)
	if !ok {
		return false
	}
	return start <= minutes && minutes < end
}

// Fields is the input of Add.
type Fields struct {
	Title     string
	StartTime string
	EndTime   string
	Date      string
	Color     string
}

// Patch is the input of Update. Nil fields keep their current value.
type Patch struct {
	Title     *string
	StartTime *string
	EndTime   *string
	Date      *string
	Color     *string
	Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.StartTime == nil && p.EndTime == nil &&
		p.Date == nil && p.Color == nil && p.Completed == nil
}

// fields returns the Go names of the Task fields the patch sets.
func (p Patch) fields() []string {
	var names []string
	if p.Title != nil {
		names = append(names, "Title")
	}
	if p.StartTime != nil {
		names = append(names, "StartTime")
	}
	if p.EndTime != nil {
		names = append(names, "EndTime")
	}
	if p.Date != nil {
		names = append(names, "Date")
	}
	if p.Color != nil {
		names = append(names, "Color")
	}
	return names
}

func (p Patch) apply(t Task) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.StartTime != nil {
		t.StartTime = strings.TrimSpace(*p.StartTime)
	}
	if p.EndTime != nil {
		t.EndTime = strings.TrimSpace(*p.EndTime)
	}
	if p.Date != nil {
		t.Date = strings.TrimSpace(*p.Date)
	}
	if p.Color != nil {
		t.Color = Color(strings.ToLower(strings.TrimSpace(*p.Color)))
		if t.Color == "" {
			t.Color = DefaultColor
		}
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
