package menu

import "github.com/charmbracelet/lipgloss"

// styles collects the lipgloss styles used by the prompt models.
type styles struct {
	Prompt    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Choice    lipgloss.Style
	Header    lipgloss.Style
	Dim       lipgloss.Style
	ErrorLine lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Prompt:    lipgloss.NewStyle().Bold(true),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Choice:    lipgloss.NewStyle(),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		ErrorLine: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
