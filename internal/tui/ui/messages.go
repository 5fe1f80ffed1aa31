package ui

import "time"

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// TickMsg is sent on every tick interval so the schedule can recompute the
// active task.
type TickMsg struct {
	Time time.Time
}

// SelectionChangedMsg is sent when the controller changed state on its own,
// such as an autosave or a status message clearing.
type SelectionChangedMsg struct{}

// StoreChangedMsg is sent after a collection was modified outside this
// process and reloaded. An empty Name means everything was reloaded.
type StoreChangedMsg struct {
	Name string
}

// ErrorMsg carries a failure from a background command.
type ErrorMsg struct {
	Err error
}
