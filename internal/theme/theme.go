package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItem          *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	ItemDetail            *lipgloss.Style
	Prompt                *lipgloss.Style
	Query                 *lipgloss.Style
	Placeholder           *lipgloss.Style
	Counter               *lipgloss.Style
	Pending               *lipgloss.Style
	Status                *lipgloss.Style
	Error                 *lipgloss.Style
	Footer                *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	ItemDetail: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Query: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Counter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Pending: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
}

// Default returns the style set used by the picker UI.
func Default() Styles {
	return defaultStyles
}

func ptr(s lipgloss.Style) *lipgloss.Style {
	return &s
}
