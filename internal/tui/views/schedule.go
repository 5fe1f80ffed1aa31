package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/task"
	"github.com/xolan/timeflow/internal/tui/ui"
)

// scheduleMode represents the current mode of the schedule view
type scheduleMode int

const (
	scheduleModeNormal scheduleMode = iota
	scheduleModeAdd
	scheduleModeEdit
	scheduleModeDelete
)

// form field order
const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldColor
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Start (HH:MM)", "End (HH:MM)", "Color"}

// ScheduleModel is the model for the schedule view
type ScheduleModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	cursor int
	view   selection.TaskView
	err    string

	// Form state
	mode    scheduleMode
	inputs  [fieldCount]textinput.Model
	focused int
	editID  int64
}

// NewScheduleModel creates a new schedule view model
func NewScheduleModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ScheduleModel {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 5
		in.Width = 10
		inputs[i] = in
	}
	inputs[fieldTitle].Placeholder = "What are you doing?"
	inputs[fieldTitle].CharLimit = 200
	inputs[fieldTitle].Width = 50
	inputs[fieldStart].Placeholder = "09:00"
	inputs[fieldEnd].Placeholder = "10:00"
	inputs[fieldColor].Placeholder = string(task.DefaultColor)
	inputs[fieldColor].CharLimit = 10

	return ScheduleModel{
		services: services,
		styles:   styles,
		keys:     keys,
		view:     services.Selection.TaskView(),
		inputs:   inputs,
	}
}

// scheduleLoadedMsg carries a fresh task view, and the error of the
// command that produced it if any. saved is set by form submissions;
// focus names the task the cursor should land on.
type scheduleLoadedMsg struct {
	view  selection.TaskView
	err   error
	saved bool
	focus int64
}

// Init implements tea.Model
func (m ScheduleModel) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model
func (m ScheduleModel) Update(msg tea.Msg) (ScheduleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case scheduleModeAdd, scheduleModeEdit:
			return m.handleInputMode(msg)
		case scheduleModeDelete:
			return m.handleDeleteMode(msg)
		}
		return m.handleNormalMode(msg)

	case scheduleLoadedMsg:
		m.view = msg.view
		if msg.err != nil {
			m.err = describeError(msg.err)
			return m, nil
		}
		m.err = ""
		if msg.saved {
			m.closeForm()
		}
		if msg.focus != 0 {
			for i, t := range m.view.Tasks {
				if t.ID == msg.focus {
					m.cursor = i
				}
			}
		}
		m.clampCursor()
		return m, nil

	case ui.TickMsg:
		m.view = m.services.Selection.Tick(m.services.Clock())
		m.clampCursor()
		return m, nil

	case ui.SelectionChangedMsg, ui.StoreChangedMsg:
		return m, m.load()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.IsInputMode() {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ScheduleModel) handleNormalMode(msg tea.KeyMsg) (ScheduleModel, tea.Cmd) {
	sel := m.services.Selection

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		m.cursor = 0
		return m, viewCmd(func() selection.TaskView { return sel.ShiftTaskDate(-1) })
	case key.Matches(msg, m.keys.Right):
		m.cursor = 0
		return m, viewCmd(func() selection.TaskView { return sel.ShiftTaskDate(1) })
	case key.Matches(msg, m.keys.Tomorrow):
		m.cursor = 0
		return m, viewCmd(sel.SelectTomorrow)
	case key.Matches(msg, m.keys.Today):
		m.cursor = 0
		return m, viewCmd(sel.SelectToday)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	case key.Matches(msg, m.keys.New):
		start, end := sel.SuggestedSlot()
		m.openForm(scheduleModeAdd, [fieldCount]string{"", start, end, string(task.DefaultColor)})
		m.editID = 0
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.openForm(scheduleModeEdit, [fieldCount]string{t.Title, t.StartTime, t.EndTime, string(t.Color)})
			m.editID = t.ID
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, func() tea.Msg {
				v, err := sel.ToggleTask(t.ID)
				return scheduleLoadedMsg{view: v, err: err}
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = scheduleModeDelete
		}
	}
	return m, nil
}

// handleInputMode handles key events when in add/edit mode
func (m ScheduleModel) handleInputMode(msg tea.KeyMsg) (ScheduleModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		return m, m.submit()
	case key.Matches(msg, m.keys.Back):
		m.closeForm()
		m.err = ""
		return m, nil
	case msg.String() == "tab" || msg.String() == "down":
		m.focus((m.focused + 1) % fieldCount)
		return m, textinput.Blink
	case msg.String() == "shift+tab" || msg.String() == "up":
		m.focus((m.focused + fieldCount - 1) % fieldCount)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m ScheduleModel) handleDeleteMode(msg tea.KeyMsg) (ScheduleModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = scheduleModeNormal
		if t, ok := m.selected(); ok {
			sel := m.services.Selection
			return m, func() tea.Msg {
				v, removed := sel.DeleteTask(t.ID)
				if !removed {
					return scheduleLoadedMsg{view: v, err: task.ErrNotFound}
				}
				return scheduleLoadedMsg{view: v}
			}
		}
	case "n", "N", "esc":
		m.mode = scheduleModeNormal
	}
	return m, nil
}

func (m ScheduleModel) submit() tea.Cmd {
	sel := m.services.Selection
	values := m.values()

	if m.mode == scheduleModeAdd {
		return func() tea.Msg {
			added, v, err := sel.AddTask(task.Fields{
				Title:     values[fieldTitle],
				StartTime: values[fieldStart],
				EndTime:   values[fieldEnd],
				Color:     values[fieldColor],
			})
			return scheduleLoadedMsg{view: v, err: err, saved: true, focus: added.ID}
		}
	}

	id := m.editID
	return func() tea.Msg {
		v, err := sel.UpdateTask(id, task.Patch{
			Title:     &values[fieldTitle],
			StartTime: &values[fieldStart],
			EndTime:   &values[fieldEnd],
			Color:     &values[fieldColor],
		})
		return scheduleLoadedMsg{view: v, err: err, saved: true}
	}
}

func (m ScheduleModel) values() [fieldCount]string {
	var out [fieldCount]string
	for i, in := range m.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (m *ScheduleModel) openForm(mode scheduleMode, values [fieldCount]string) {
	m.mode = mode
	m.err = ""
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].CursorEnd()
	}
	m.focus(fieldTitle)
}

func (m *ScheduleModel) closeForm() {
	m.mode = scheduleModeNormal
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *ScheduleModel) focus(field int) {
	m.focused = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m ScheduleModel) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Tasks) {
		return task.Task{}, false
	}
	return m.view.Tasks[m.cursor], true
}

func (m *ScheduleModel) clampCursor() {
	if m.cursor >= len(m.view.Tasks) {
		m.cursor = len(m.view.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model
func (m ScheduleModel) View() string {
	switch m.mode {
	case scheduleModeAdd:
		return m.renderForm("New Task")
	case scheduleModeEdit:
		return m.renderForm("Edit Task")
	case scheduleModeDelete:
		return m.renderDeleteConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render(cli.FormatDayHeading(m.view)))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(m.styles.Error.Render("Error: " + m.err))
		b.WriteString("\n\n")
	}

	if len(m.view.Tasks) == 0 {
		b.WriteString(m.styles.Label.Render("No tasks scheduled"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Label.Render("Press 'n' to add a task"))
		return b.String()
	}

	b.WriteString(RenderTaskList(m.view, m.styles, TaskRenderOptions{
		Width:  m.width,
		Cursor: m.cursor,
	}))

	done := 0
	for _, t := range m.view.Tasks {
		if t.Completed {
			done++
		}
	}
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 1))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d %s, %d done", len(m.view.Tasks), cli.Pluralize("task", len(m.view.Tasks)), done)

	if active, ok := m.view.Active(); ok {
		b.WriteString("\n")
		b.WriteString(m.styles.TaskActive.Render("Now: " + active.Title))
	}

	return b.String()
}

func (m ScheduleModel) renderForm(title string) string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		label := fieldLabels[i] + ":"
		if i == m.focused {
			label = "▸ " + label
		}
		b.WriteString(m.styles.Label.Render(label))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err))
		b.WriteString("\n\n")
	}

	colors := make([]string, len(task.Colors))
	for i, c := range task.Colors {
		colors[i] = m.styles.TaskColor(c).Render(string(c))
	}
	b.WriteString(m.styles.Label.Render("Colors: "))
	b.WriteString(strings.Join(colors, " "))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m ScheduleModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Task"))
	b.WriteString("\n\n")

	if t, ok := m.selected(); ok {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this task?"))
		b.WriteString("\n\n")
		b.WriteString(renderLabelValue(m.styles, "Title", t.Title))
		b.WriteString(renderLabelValue(m.styles, "Time", cli.FormatSpan(t)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Label.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ScheduleModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ScheduleModel) IsInputMode() bool {
	return m.mode == scheduleModeAdd || m.mode == scheduleModeEdit
}

// Date returns the selected schedule day.
func (m ScheduleModel) Date() string {
	return m.view.Date
}

func (m ScheduleModel) load() tea.Cmd {
	sel := m.services.Selection
	return func() tea.Msg {
		return scheduleLoadedMsg{view: sel.TaskView()}
	}
}

func viewCmd(f func() selection.TaskView) tea.Cmd {
	return func() tea.Msg {
		return scheduleLoadedMsg{view: f()}
	}
}
