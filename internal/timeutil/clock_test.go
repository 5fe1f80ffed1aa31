package timeutil

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"10:00", 600, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:30", 0, false},
		{"09:60", 0, false},
		{"", 0, false},
		{"0930", 0, false},
		{"09:30:00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseClock(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseClock(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ParseClock(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
			if IsClock(tt.input) != tt.ok {
				t.Errorf("IsClock(%q) disagrees with ParseClock", tt.input)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	for _, minutes := range []int{0, 5, 570, 1439} {
		formatted := FormatClock(minutes)
		back, ok := ParseClock(formatted)
		if !ok || back != minutes {
			t.Errorf("FormatClock(%d) = %q does not parse back", minutes, formatted)
		}
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	if got := MinutesSinceMidnight(makeTime(2025, time.June, 1, 10, 0, 59)); got != 600 {
		t.Errorf("expected 600, got %d", got)
	}
	if got := MinutesSinceMidnight(makeTime(2025, time.June, 1, 0, 0, 0)); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
