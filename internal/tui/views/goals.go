package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/tui/ui"
)

// GoalsModel is the model for the goal checklist view
type GoalsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	cursor int
	view   selection.GoalView
	err    string

	adding bool
	input  textinput.Model
}

// NewGoalsModel creates a new goals view model
func NewGoalsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) GoalsModel {
	input := textinput.New()
	input.Placeholder = "New goal..."
	input.CharLimit = 200
	input.Width = 50

	return GoalsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		view:     services.Selection.GoalView(),
		input:    input,
	}
}

type goalsLoadedMsg struct {
	view  selection.GoalView
	err   error
	added bool
}

// Init implements tea.Model
func (m GoalsModel) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model
func (m GoalsModel) Update(msg tea.Msg) (GoalsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			return m.handleInputMode(msg)
		}
		return m.handleNormalMode(msg)

	case goalsLoadedMsg:
		m.view = msg.view
		if msg.err != nil {
			m.err = describeError(msg.err)
			return m, nil
		}
		m.err = ""
		if msg.added {
			m.adding = false
			m.input.Blur()
			// New goals are listed first.
			m.cursor = 0
		}
		if m.cursor >= len(m.view.Goals) {
			m.cursor = max(0, len(m.view.Goals)-1)
		}
		return m, nil

	case ui.StoreChangedMsg:
		return m, m.load()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.adding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GoalsModel) handleNormalMode(msg tea.KeyMsg) (GoalsModel, tea.Cmd) {
	sel := m.services.Selection

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Goals)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.New):
		m.adding = true
		m.err = ""
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Select):
		if id, ok := m.selectedID(); ok {
			return m, func() tea.Msg {
				return goalsLoadedMsg{view: sel.ToggleGoal(id)}
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			return m, func() tea.Msg {
				return goalsLoadedMsg{view: sel.DeleteGoal(id)}
			}
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	}
	return m, nil
}

func (m GoalsModel) handleInputMode(msg tea.KeyMsg) (GoalsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		title := strings.TrimSpace(m.input.Value())
		sel := m.services.Selection
		return m, func() tea.Msg {
			v, err := sel.AddGoal(title)
			return goalsLoadedMsg{view: v, err: err, added: true}
		}
	case key.Matches(msg, m.keys.Back):
		m.adding = false
		m.err = ""
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m GoalsModel) selectedID() (int64, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Goals) {
		return 0, false
	}
	return m.view.Goals[m.cursor].ID, true
}

// View implements tea.Model
func (m GoalsModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Goals (%d/%d done)", m.view.Completed, len(m.view.Goals))
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.adding {
		b.WriteString(m.styles.Label.Render("▸ New goal:"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if m.err != "" {
		b.WriteString(m.styles.Error.Render("Error: " + m.err))
		b.WriteString("\n\n")
	}

	if len(m.view.Goals) == 0 {
		b.WriteString(m.styles.Label.Render("No goals yet"))
		if !m.adding {
			b.WriteString("\n\n")
			b.WriteString(m.styles.Label.Render("Press 'n' to add a goal"))
		}
		return b.String()
	}

	for i, g := range m.view.Goals {
		check := "[ ]"
		title := g.Title
		if g.Completed {
			check = "[x]"
			title = m.styles.ItemDone.Render(title)
		}
		line := fmt.Sprintf("%s %s", check, title)
		if i == m.cursor && !m.adding {
			b.WriteString(m.styles.ItemSelected.Render(line))
		} else {
			b.WriteString(m.styles.ItemNormal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *GoalsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true while a new goal is being typed.
func (m GoalsModel) IsInputMode() bool {
	return m.adding
}

func (m GoalsModel) load() tea.Cmd {
	sel := m.services.Selection
	return func() tea.Msg {
		return goalsLoadedMsg{view: sel.GoalView()}
	}
}
