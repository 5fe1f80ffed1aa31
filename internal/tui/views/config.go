package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/timeflow/internal/config"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/tui/ui"
)

// ConfigModel is the model for the config view
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	// UI state
	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	dataDir   string
	health    []storage.KeyHealth
	themeName string

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int // For scrolling
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	themes := themeProvider.AvailableThemes()
	currentTheme := themeProvider.CurrentName()

	// Find cursor position for current theme
	cursor := 0
	for i, t := range themes {
		if t == currentTheme {
			cursor = i
			break
		}
	}

	return ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themes,
		themeCursor:   cursor,
		themeName:     currentTheme,
	}
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// configLoadedMsg is sent when config is loaded
type configLoadedMsg struct {
	config  config.Config
	path    string
	exists  bool
	dataDir string
	health  []storage.KeyHealth
}

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}

		// Open theme selector with Enter or 't'
		if key.Matches(msg, m.keys.Select) || msg.String() == "t" {
			m.selectingTheme = true
			// Center the current theme in view
			m.updateThemeOffset()
			return m, nil
		}

		// Cycle through themes in place
		if key.Matches(msg, m.keys.Left) {
			return m, m.requestThemeChange(m.themeProvider.CycleTheme(-1))
		}
		if key.Matches(msg, m.keys.Right) {
			return m, m.requestThemeChange(m.themeProvider.CycleTheme(1))
		}

		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadConfig()
		}

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		m.dataDir = msg.dataDir
		m.health = msg.health
		m.themeName = msg.config.Theme
		if m.themeName == "" {
			m.themeName = ui.DefaultTheme
		}
		// Update cursor to match loaded theme
		for i, t := range m.themes {
			if t == m.themeName {
				m.themeCursor = i
				break
			}
		}

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		for i, t := range m.themes {
			if t == m.themeName {
				m.themeCursor = i
				break
			}
		}
		return m, nil

	case ui.StoreChangedMsg:
		return m, m.loadConfig()
	}

	return m, nil
}

// handleThemeSelection handles keys when theme selector is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		// Select theme and close selector
		selectedTheme := m.themes[m.themeCursor]
		m.selectingTheme = false
		return m, m.requestThemeChange(selectedTheme)

	case key.Matches(msg, m.keys.Back):
		// Close selector without changing
		m.selectingTheme = false
		// Reset cursor to current theme
		for i, t := range m.themes {
			if t == m.themeName {
				m.themeCursor = i
				break
			}
		}
		return m, nil
	}

	return m, nil
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *ConfigModel) updateThemeOffset() {
	// Ensure cursor is within visible range
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

// requestThemeChange creates a command to request a theme change by name
func (m ConfigModel) requestThemeChange(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: themeName}
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	// Config file path
	b.WriteString(m.styles.Label.Render("Config file:"))
	b.WriteString(" ")
	b.WriteString(m.styles.Value.Render(m.path))
	b.WriteString("\n")

	// Status
	b.WriteString(m.styles.Label.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n\n")

	// Config values
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 1))))
	b.WriteString("\n\n")

	b.WriteString(m.renderConfigLine("data_dir", m.dataDir))
	b.WriteString(m.renderConfigLine("namespace", m.config.Namespace))
	b.WriteString(m.renderConfigLine("locale", m.config.Locale))
	b.WriteString(m.renderConfigLine("log_level", m.config.LogLevel))
	b.WriteString(m.renderConfigLine("autosave_delay", m.config.AutosaveDelay.String()))
	b.WriteString(m.renderConfigLine("status_timeout", m.config.StatusTimeout.String()))
	b.WriteString(m.renderConfigLine("tick_interval", m.config.TickInterval.String()))
	b.WriteString(m.renderHealth())

	// Theme with selector
	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
	} else {
		b.WriteString(m.renderConfigLine("theme", m.themeName))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Press Enter or 't' to pick a theme, ←/→ to cycle"))
	}

	return b.String()
}

// renderThemeSelector renders the theme selection list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.Label.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.Value.Render("Select a theme"))
	b.WriteString("\n\n")

	// Calculate visible range
	endIdx := m.themeOffset + maxVisibleThemes
	if endIdx > len(m.themes) {
		endIdx = len(m.themes)
	}

	// Show scroll indicator at top if needed
	if m.themeOffset > 0 {
		b.WriteString(m.styles.Label.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	// Render visible themes
	for i := m.themeOffset; i < endIdx; i++ {
		theme := m.themes[i]
		if i == m.themeCursor {
			// Highlighted/selected theme
			b.WriteString(m.styles.ItemSelected.Render("▸ " + theme))
			if theme == m.themeName {
				b.WriteString(m.styles.Success.Render(" (current)"))
			}
		} else {
			b.WriteString("  ")
			if theme == m.themeName {
				b.WriteString(m.styles.Success.Render(theme + " (current)"))
			} else {
				b.WriteString(m.styles.Value.Render(theme))
			}
		}
		b.WriteString("\n")
	}

	// Show scroll indicator at bottom if needed
	if endIdx < len(m.themes) {
		b.WriteString(m.styles.Label.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("↑/↓ navigate  Enter select  Esc cancel"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// renderHealth summarises the stored collections on one line, listing any
// that failed to parse.
func (m ConfigModel) renderHealth() string {
	if len(m.health) == 0 {
		return ""
	}
	var bad []string
	for _, h := range m.health {
		if !h.Valid {
			bad = append(bad, h.Name)
		}
	}
	label := m.styles.Label.Render("storage:") + " "
	if len(bad) > 0 {
		return label + m.styles.Error.Render("corrupt: "+strings.Join(bad, ", ")) + "\n"
	}
	return label + m.styles.Success.Render(fmt.Sprintf("%d collections ok", len(m.health))) + "\n"
}

// loadConfig creates a command to load config
func (m ConfigModel) loadConfig() tea.Cmd {
	return func() tea.Msg {
		return configLoadedMsg{
			config:  m.services.Config.Get(),
			path:    m.services.Config.GetPath(),
			exists:  m.services.Config.Exists(),
			dataDir: m.services.Store.Dir(),
			health:  m.services.Store.Health(),
		}
	}
}

func (m ConfigModel) renderConfigLine(key, value string) string {
	return m.styles.Label.Render(key+":") + " " + m.styles.Value.Render(value) + "\n"
}
