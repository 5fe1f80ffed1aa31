package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is used when no theme is configured or the configured one
// is unknown.
const DefaultTheme = "dracula"

// ThemeProvider resolves theme ids to Styles using bubbletint.
type ThemeProvider struct {
	registry *tint.Registry
	ids      []string
}

// NewThemeProvider creates a provider starting on initialTheme. An empty or
// unknown id selects DefaultTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	all := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range all {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(all) > 0 {
		fallback = all[0]
	}

	registry := tint.NewRegistry(fallback, all...)
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}

	ids := registry.TintIDs()
	sort.Strings(ids)

	return &ThemeProvider{registry: registry, ids: ids}
}

// SetTheme switches to the theme with the given id. It reports false and
// keeps the current theme when the id is unknown.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CycleTheme moves delta steps through the sorted theme list, wrapping at
// both ends, and returns the new id.
func (tp *ThemeProvider) CycleTheme(delta int) string {
	if len(tp.ids) == 0 {
		return tp.CurrentName()
	}
	idx := sort.SearchStrings(tp.ids, tp.CurrentName())
	n := len(tp.ids)
	idx = ((idx+delta)%n + n) % n
	tp.registry.SetTintID(tp.ids[idx])
	return tp.CurrentName()
}

// CurrentName returns the id of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human-readable name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns every theme id, sorted.
func (tp *ThemeProvider) AvailableThemes() []string {
	out := make([]string, len(tp.ids))
	copy(out, tp.ids)
	return out
}

// Styles returns the styles of the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
