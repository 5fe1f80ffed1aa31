package diary

import (
	"testing"
	"time"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name     string
		month    time.Time
		leading  int
		days     int
		trailing int
	}{
		// June 2025 starts on a Sunday.
		{"june 2025", month(2025, time.June), 0, 30, 5},
		// February 2026 starts on a Sunday and fills exactly four weeks.
		{"february 2026", month(2026, time.February), 0, 28, 0},
		{"february 2024 leap", month(2024, time.February), 4, 29, 2},
		{"march 2025", month(2025, time.March), 6, 31, 5},
		{"mid-month input", time.Date(2025, time.January, 31, 15, 0, 0, 0, time.Local), 3, 31, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leading, days, trailing := Layout(tt.month)
			if leading != tt.leading || days != tt.days || trailing != tt.trailing {
				t.Errorf("Layout = (%d, %d, %d), expected (%d, %d, %d)",
					leading, days, trailing, tt.leading, tt.days, tt.trailing)
			}
			if (leading+days+trailing)%7 != 0 {
				t.Error("grid must be a multiple of 7 cells")
			}
		})
	}
}

func TestLayout_AlwaysWholeWeeks(t *testing.T) {
	for y := 2023; y <= 2026; y++ {
		for m := time.January; m <= time.December; m++ {
			leading, days, trailing := Layout(month(y, m))
			if (leading+days+trailing)%7 != 0 || trailing > 6 || leading > 6 {
				t.Errorf("%d-%02d: bad layout (%d, %d, %d)", y, m, leading, days, trailing)
			}
		}
	}
}

func TestBuildCalendar(t *testing.T) {
	entries := map[string]bool{"2025-06-10": true}
	cal := BuildCalendar(
		time.Date(2025, time.June, 17, 0, 0, 0, 0, time.Local),
		"2025-06-01",
		"2025-06-10",
		func(d string) bool { return entries[d] },
	)

	if !cal.Month.Equal(month(2025, time.June)) {
		t.Errorf("Month = %v, expected first of June", cal.Month)
	}
	if len(cal.Cells) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(cal.Cells))
	}

	first := cal.Cells[0]
	if first.Blank() || first.DateKey != "2025-06-01" || !first.IsToday {
		t.Errorf("unexpected first cell %+v", first)
	}

	tenth := cal.Cells[9]
	if tenth.Day != 10 || !tenth.IsSelected || !tenth.HasEntry || tenth.IsToday {
		t.Errorf("unexpected selected cell %+v", tenth)
	}

	last := cal.Cells[len(cal.Cells)-1]
	if !last.Blank() || last.DateKey != "" {
		t.Errorf("expected trailing blank, got %+v", last)
	}

	weeks := cal.Weeks()
	if len(weeks) != 5 {
		t.Errorf("expected 5 weeks, got %d", len(weeks))
	}
	for _, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week has %d cells", len(w))
		}
	}
}

func TestBuildCalendar_LeadingBlanksAndNilLookup(t *testing.T) {
	cal := BuildCalendar(month(2024, time.February), "", "", nil)

	for i := 0; i < 4; i++ {
		if !cal.Cells[i].Blank() {
			t.Errorf("cell %d should be blank", i)
		}
	}
	if cal.Cells[4].DateKey != "2024-02-01" {
		t.Errorf("expected Feb 1 in cell 4, got %+v", cal.Cells[4])
	}
	if cal.Cells[32].DateKey != "2024-02-29" {
		t.Errorf("expected leap day in cell 32, got %+v", cal.Cells[32])
	}
	for _, c := range cal.Cells {
		if c.HasEntry {
			t.Error("nil lookup should mark no entries")
		}
	}
}
