package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/timeutil"
	"github.com/xolan/timeflow/internal/tui/ui"
)

// DiaryModel is the model for the diary view: a month calendar next to the
// page of the selected day.
type DiaryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width   int
	height  int
	editor  textarea.Model
	editing bool

	page     selection.DiaryView
	calendar selection.CalendarView
}

// NewDiaryModel creates a new diary view model
func NewDiaryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) DiaryModel {
	editor := textarea.New()
	editor.Placeholder = "Write about your day..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(50)
	editor.SetHeight(12)

	m := DiaryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		editor:   editor,
		page:     services.Selection.DiaryView(),
		calendar: services.Selection.CalendarView(),
	}
	m.editor.SetValue(m.page.Text)
	return m
}

// diaryLoadedMsg carries the page and calendar after a command.
type diaryLoadedMsg struct {
	page     selection.DiaryView
	calendar selection.CalendarView
}

// Init implements tea.Model
func (m DiaryModel) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model
func (m DiaryModel) Update(msg tea.Msg) (DiaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditing(msg)
		}
		return m.handleNormalMode(msg)

	case diaryLoadedMsg:
		m.page = msg.page
		m.calendar = msg.calendar
		// While typing, the editor is the source of truth for the draft.
		if !m.editing {
			m.editor.SetValue(m.page.Text)
		}
		return m, nil

	case ui.SelectionChangedMsg, ui.StoreChangedMsg:
		return m, m.load()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DiaryModel) handleNormalMode(msg tea.KeyMsg) (DiaryModel, tea.Cmd) {
	sel := m.services.Selection

	switch {
	case key.Matches(msg, m.keys.Left):
		return m, m.selectDay(-1)
	case key.Matches(msg, m.keys.Right):
		return m, m.selectDay(1)
	case key.Matches(msg, m.keys.Up):
		return m, m.selectDay(-7)
	case key.Matches(msg, m.keys.Down):
		return m, m.selectDay(7)
	case key.Matches(msg, m.keys.PrevMonth):
		return m, m.run(func() { sel.ShiftCalendarMonth(-1) })
	case key.Matches(msg, m.keys.NextMonth):
		return m, m.run(func() { sel.ShiftCalendarMonth(1) })
	case key.Matches(msg, m.keys.Today):
		today := timeutil.Today(m.services.Clock())
		return m, m.run(func() {
			sel.SelectDiaryDate(today, selection.SelectOptions{AutosavePrevious: true})
		})
	case key.Matches(msg, m.keys.Save):
		return m, m.run(func() { sel.SaveDiary() })
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		m.editing = true
		m.editor.SetValue(m.page.Text)
		cmd := m.editor.Focus()
		return m, cmd
	}
	return m, nil
}

// handleEditing forwards keys to the editor and pushes every change to the
// controller, which debounces the autosave.
func (m DiaryModel) handleEditing(msg tea.KeyMsg) (DiaryModel, tea.Cmd) {
	sel := m.services.Selection

	switch {
	case key.Matches(msg, m.keys.Back):
		m.editing = false
		m.editor.Blur()
		return m, m.load()
	case key.Matches(msg, m.keys.Save):
		return m, m.run(func() { sel.SaveDiary() })
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.page = sel.EditDiary(after)
	}
	return m, cmd
}

// selectDay moves the diary selection by delta days, saving an unsaved
// edit of the day being left.
func (m DiaryModel) selectDay(delta int) tea.Cmd {
	day, ok := timeutil.ParseDateKey(m.page.Date)
	if !ok {
		return nil
	}
	target := timeutil.DateKey(day.AddDate(0, 0, delta))
	sel := m.services.Selection
	return m.run(func() {
		sel.SelectDiaryDate(target, selection.SelectOptions{AutosavePrevious: true})
	})
}

// run applies f to the controller and reloads the page and calendar.
func (m DiaryModel) run(f func()) tea.Cmd {
	sel := m.services.Selection
	return func() tea.Msg {
		f()
		return diaryLoadedMsg{page: sel.DiaryView(), calendar: sel.CalendarView()}
	}
}

func (m DiaryModel) load() tea.Cmd {
	return m.run(func() {})
}

// View implements tea.Model
func (m DiaryModel) View() string {
	locale := m.services.Selection.Locale()
	cal := RenderCalendar(m.calendar, locale, m.styles)

	var page strings.Builder
	page.WriteString(m.styles.ViewTitle.Render(m.page.Label))
	page.WriteString("\n")

	switch {
	case m.page.Status != "":
		page.WriteString(m.styles.DiaryStatus.Render(m.page.Status))
	case m.page.Dirty:
		page.WriteString(m.styles.Warning.Render("Unsaved changes"))
	}
	page.WriteString("\n")

	switch {
	case m.editing:
		page.WriteString(m.styles.InputFocused.Render(m.editor.View()))
	case strings.TrimSpace(m.page.Text) == "":
		page.WriteString(m.styles.Label.Render("(empty) press 'e' to write"))
	default:
		page.WriteString(m.styles.Input.Render(strings.TrimRight(m.page.Text, "\n")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cal, "   ", page.String())
}

// SetSize sets the view dimensions
func (m *DiaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	editorWidth := max(width-45, 30)
	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(max(height-8, 5))
}

// IsInputMode returns true while the editor has focus.
func (m DiaryModel) IsInputMode() bool {
	return m.editing
}

// Date returns the selected diary day.
func (m DiaryModel) Date() string {
	return m.page.Date
}
