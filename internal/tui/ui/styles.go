package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/xolan/timeflow/internal/task"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar       lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	TabSeparator lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Lists
	ItemSelected lipgloss.Style
	ItemNormal   lipgloss.Style
	ItemID       lipgloss.Style
	ItemDone     lipgloss.Style

	// Schedule
	TaskTime     lipgloss.Style
	TaskActive   lipgloss.Style
	TaskDuration lipgloss.Style
	TaskColors   map[task.Color]lipgloss.Style

	// Diary and calendar
	CalendarHeader   lipgloss.Style
	CalendarDay      lipgloss.Style
	CalendarToday    lipgloss.Style
	CalendarSelected lipgloss.Style
	CalendarEntry    lipgloss.Style
	DiaryStatus      lipgloss.Style

	// Label/value pairs
	Label lipgloss.Style
	Value lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// TaskColor returns the style for a task's colour tag, falling back to the
// default tag.
func (s Styles) TaskColor(c task.Color) lipgloss.Style {
	if st, ok := s.TaskColors[c]; ok {
		return st
	}
	return s.TaskColors[task.DefaultColor]
}

type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, errorColor      lipgloss.TerminalColor
	fg, bg, highlight                 lipgloss.TerminalColor
	tasks                             map[task.Color]lipgloss.TerminalColor
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	return buildStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),
		warning:    lipgloss.Color("214"),
		errorColor: lipgloss.Color("196"),
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		highlight:  lipgloss.Color("237"),
		tasks: map[task.Color]lipgloss.TerminalColor{
			task.ColorBlue:   lipgloss.Color("33"),
			task.ColorGreen:  lipgloss.Color("34"),
			task.ColorPurple: lipgloss.Color("135"),
			task.ColorOrange: lipgloss.Color("208"),
			task.ColorRed:    lipgloss.Color("160"),
		},
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Purple drives titles and tabs, cyan drives times and keys, and the
// theme's named colours back the task tags. Themes have no orange, so
// orange tasks use yellow.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return buildStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		highlight:  r.BrightBlack(),
		tasks: map[task.Color]lipgloss.TerminalColor{
			task.ColorBlue:   r.Blue(),
			task.ColorGreen:  r.Green(),
			task.ColorPurple: r.Purple(),
			task.ColorOrange: r.Yellow(),
			task.ColorRed:    r.Red(),
		},
	})
}

func buildStyles(p palette) Styles {
	taskColors := make(map[task.Color]lipgloss.Style, len(p.tasks))
	for c, tc := range p.tasks {
		taskColors[c] = lipgloss.NewStyle().Foreground(tc).Bold(true)
	}

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		// Tab bar
		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),
		TabSeparator: lipgloss.NewStyle().
			Foreground(p.muted).
			SetString("|"),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		// Status bar
		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		ItemSelected: lipgloss.NewStyle().
			Background(p.highlight).
			Bold(true),
		ItemNormal: lipgloss.NewStyle(),
		ItemID: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(6),
		ItemDone: lipgloss.NewStyle().
			Foreground(p.muted).
			Strikethrough(true),

		TaskTime: lipgloss.NewStyle().
			Foreground(p.secondary).
			Width(13),
		TaskActive: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		TaskDuration: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(8).
			Align(lipgloss.Right),
		TaskColors: taskColors,

		CalendarHeader: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(5),
		CalendarDay: lipgloss.NewStyle().
			Foreground(p.fg).
			Width(5),
		CalendarToday: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true).
			Width(5),
		CalendarSelected: lipgloss.NewStyle().
			Background(p.highlight).
			Foreground(p.primary).
			Bold(true).
			Width(5),
		CalendarEntry: lipgloss.NewStyle().
			Foreground(p.accent),
		DiaryStatus: lipgloss.NewStyle().
			Foreground(p.success).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		Value: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		// Help
		HelpKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.muted),

		// Input
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		// Dialog
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
