// Package styles holds lipgloss styles and key maps for the rove CLI.
package styles

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the playground's lipgloss styles.
type Theme struct {
	Title     lipgloss.Style
	GroupName lipgloss.Style
	Item      lipgloss.Style
	Primary   lipgloss.Style
	Focused   lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

// DefaultTheme returns the playground color scheme.
func DefaultTheme() *Theme {
	return &Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		GroupName: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Item: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8")),
		Primary: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("10")).
			Foreground(lipgloss.Color("10")),
		Focused: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("13")).
			Foreground(lipgloss.Color("13")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
	}
}

// PlaygroundKeyMap defines the playground keybindings.
type PlaygroundKeyMap struct {
	Navigate key.Binding
	HomeEnd  key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

// DefaultPlaygroundKeyMap returns the standard bindings.
func DefaultPlaygroundKeyMap() PlaygroundKeyMap {
	return PlaygroundKeyMap{
		Navigate: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("↑↓←→", "navigate group"),
		),
		HomeEnd: key.NewBinding(
			key.WithKeys("home", "end"),
			key.WithHelp("home/end", "first/last"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next stop"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous stop"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k PlaygroundKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Tab, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k PlaygroundKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.HomeEnd},
		{k.Tab, k.ShiftTab},
		{k.Reload, k.Quit},
	}
}
