package diary

import (
	"time"

	"github.com/xolan/timeflow/internal/timeutil"
)

// Cell is one square of the month grid. Blank cells pad the first and last
// week and have Day == 0.
type Cell struct {
	Day        int
	DateKey    string
	IsToday    bool
	IsSelected bool
	HasEntry   bool
}

// Blank reports whether the cell is padding.
func (c Cell) Blank() bool {
	return c.Day == 0
}

// Calendar is a Sunday-first month grid whose length is a multiple of 7.
type Calendar struct {
	Month time.Time
	Cells []Cell
}

// Weeks splits the grid into rows of seven.
func (c Calendar) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(c.Cells)/7)
	for i := 0; i+7 <= len(c.Cells); i += 7 {
		weeks = append(weeks, c.Cells[i:i+7])
	}
	return weeks
}

// Layout returns the number of blank cells before day 1 (its weekday,
// Sunday first), the number of days in the month, and the blank cells
// needed after the last day to complete the final week.
func Layout(month time.Time) (leading, days, trailing int) {
	first := timeutil.StartOfMonth(month)
	leading = int(first.Weekday())
	days = timeutil.DaysInMonth(first)
	trailing = (7 - (leading+days)%7) % 7
	return leading, days, trailing
}

// BuildCalendar lays out month and marks today, the selected day, and the
// days for which hasEntry reports true. hasEntry may be nil.
func BuildCalendar(month time.Time, today, selected string, hasEntry func(string) bool) Calendar {
	first := timeutil.StartOfMonth(month)
	leading, days, trailing := Layout(first)

	cells := make([]Cell, 0, leading+days+trailing)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		key := timeutil.DateKey(first.AddDate(0, 0, day-1))
		cell := Cell{
			Day:        day,
			DateKey:    key,
			IsToday:    key == today,
			IsSelected: key == selected,
		}
		if hasEntry != nil {
			cell.HasEntry = hasEntry(key)
		}
		cells = append(cells, cell)
	}
	for i := 0; i < trailing; i++ {
		cells = append(cells, Cell{})
	}

	return Calendar{Month: first, Cells: cells}
}
