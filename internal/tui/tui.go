// Package tui provides the Terminal User Interface for the timeflow application.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/tui/ui"
	"github.com/xolan/timeflow/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabSchedule Tab = iota
	TabDiary
	TabGoals
	TabConfig
)

var tabNames = []string{"Schedule", "Diary", "Goals", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	// UI state
	activeTab    Tab
	width        int
	height       int
	showHelp     bool
	tickInterval time.Duration

	// View models
	scheduleView views.ScheduleModel
	diaryView    views.DiaryModel
	goalsView    views.GoalsModel
	configView   views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	cfg := services.Config.Get()
	themeProvider := ui.NewThemeProvider(cfg.Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	tick := cfg.TickInterval.Duration
	if tick <= 0 {
		tick = time.Minute
	}

	return Model{
		services:      services,
		activeTab:     TabSchedule,
		tickInterval:  tick,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		scheduleView:  views.NewScheduleModel(services, styles, keys),
		diaryView:     views.NewDiaryModel(services, styles, keys),
		goalsView:     views.NewGoalsModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.scheduleView.Init(),
		m.diaryView.Init(),
		m.goalsView.Init(),
		m.configView.Init(),
		m.tick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While a view is capturing text, only ctrl+c and its own keys
		// apply.
		capturing := m.isCapturingKeys()

		switch {
		case msg.String() == "ctrl+c":
			m.services.Selection.Flush()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturing:
			m.services.Selection.Flush()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturing:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturing:
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab) && !capturing:
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1) && !capturing:
			return m.switchTab(TabSchedule)

		case key.Matches(msg, m.keys.Tab2) && !capturing:
			return m.switchTab(TabDiary)

		case key.Matches(msg, m.keys.Tab3) && !capturing:
			return m.switchTab(TabGoals)

		case key.Matches(msg, m.keys.Tab4) && !capturing:
			return m.switchTab(TabConfig)
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.scheduleView.SetSize(m.width, contentHeight)
		m.diaryView.SetSize(m.width, contentHeight)
		m.goalsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.TickMsg:
		var cmd tea.Cmd
		m.scheduleView, cmd = m.scheduleView.Update(msg)
		return m, tea.Batch(cmd, m.tick())

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m, _ = m.broadcast(themeMsg)
		return m, m.saveThemeConfig(newTheme)

	case ui.ErrorMsg:
		m.services.Logger.Warnw("tui command failed", "error", msg.Err)
		return m, nil
	}

	// Everything else (loaded results, reload notices, blinks) reaches every
	// view so inactive tabs stay current.
	return m.broadcast(msg)
}

func (m Model) switchTab(tab Tab) (Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.initCurrentView()
}

func (m Model) updateActive(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabSchedule:
		m.scheduleView, cmd = m.scheduleView.Update(msg)
	case TabDiary:
		m.diaryView, cmd = m.diaryView.Update(msg)
	case TabGoals:
		m.goalsView, cmd = m.goalsView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 4)
	m.scheduleView, cmds[0] = m.scheduleView.Update(msg)
	m.diaryView, cmds[1] = m.diaryView.Update(msg)
	m.goalsView, cmds[2] = m.goalsView.Update(msg)
	m.configView, cmds[3] = m.configView.Update(msg)
	return m, tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return ui.TickMsg{Time: t}
	})
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabSchedule:
		b.WriteString(m.scheduleView.View())
	case TabDiary:
		b.WriteString(m.diaryView.View())
	case TabGoals:
		b.WriteString(m.goalsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isCapturingKeys() {
		switch m.activeTab {
		case TabSchedule:
			parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
			parts = append(parts, m.renderKeyHelp("Enter", "save"))
		case TabDiary:
			parts = append(parts, m.renderKeyHelp("ctrl+s", "save"))
		case TabGoals:
			parts = append(parts, m.renderKeyHelp("Enter", "add"))
		}
		parts = append(parts, m.renderKeyHelp("Esc", "done"))
	} else {
		switch m.activeTab {
		case TabSchedule:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("e", "edit"))
			parts = append(parts, m.renderKeyHelp("x", "done"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("h/l", "day"))
			parts = append(parts, m.renderKeyHelp("t/T", "today/tomorrow"))
		case TabDiary:
			parts = append(parts, m.renderKeyHelp("e", "write"))
			parts = append(parts, m.renderKeyHelp("h/l", "day"))
			parts = append(parts, m.renderKeyHelp("[/]", "month"))
			parts = append(parts, m.renderKeyHelp("t", "today"))
		case TabGoals:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("x", "done"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-4", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys checks if the current view is capturing keyboard input
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabSchedule:
		return m.scheduleView.IsInputMode()
	case TabDiary:
		return m.diaryView.IsInputMode()
	case TabGoals:
		return m.goalsView.IsInputMode()
	}
	return false
}

// initCurrentView reloads the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabSchedule:
		return m.scheduleView.Init()
	case TabDiary:
		return m.diaryView.Init()
	case TabGoals:
		return m.goalsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = themeName
		if err := m.services.Config.Update(cfg); err != nil {
			return ui.ErrorMsg{Err: err}
		}
		return nil
	}
}

// renderHelpOverlay renders the keyboard shortcuts for the current view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.Label.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit (saves the diary)\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabSchedule:
		help.WriteString(m.styles.Label.Render("Schedule:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Previous/next day\n")
		help.WriteString("  t/T        Today/tomorrow\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n          New task\n")
		help.WriteString("  e          Edit task\n")
		help.WriteString("  space/x    Toggle done\n")
		help.WriteString("  d          Delete task\n")
		help.WriteString("  r          Refresh\n")
	case TabDiary:
		help.WriteString(m.styles.Label.Render("Diary:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Previous/next day\n")
		help.WriteString("  j/k        Next/previous week\n")
		help.WriteString("  [/]        Previous/next month\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  e/Enter    Write\n")
		help.WriteString("  ctrl+s     Save now\n")
		help.WriteString("  Esc        Stop writing\n")
	case TabGoals:
		help.WriteString(m.styles.Label.Render("Goals:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n          New goal\n")
		help.WriteString("  space/x    Toggle done\n")
		help.WriteString("  d          Delete goal\n")
	case TabConfig:
		help.WriteString(m.styles.Label.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  h/l        Cycle themes\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Label.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI and blocks until it exits. Controller timers and
// changes made by other processes are fed into the program as messages.
func Run(services *service.Services) error {
	model := New(services)
	p := tea.NewProgram(model, tea.WithAltScreen())

	services.Selection.OnChange(func() {
		p.Send(ui.SelectionChangedMsg{})
	})
	defer services.Selection.OnChange(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := services.Store.Watch(ctx)
	if err != nil {
		services.Logger.Warnw("not watching data directory", "error", err)
	} else {
		go func() {
			for ev := range events {
				p.Send(ui.StoreChangedMsg{Name: ev.Name})
			}
		}()
	}

	_, err = p.Run()
	services.Selection.Flush()
	return err
}
