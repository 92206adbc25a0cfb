package live

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the editor view.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	ActiveLabel lipgloss.Style
	Choice      lipgloss.Style
	Placeholder lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the editor's default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ActiveLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Choice:      lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(2),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}
