package cli

import "github.com/charmbracelet/lipgloss"

// styleSet holds the lipgloss styles used by the shell. The zero value
// renders plain text, which keeps scripted sessions and NO_COLOR runs
// byte-stable.
type styleSet struct {
	Banner  lipgloss.Style
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Dir     lipgloss.Style
	File    lipgloss.Style
	Muted   lipgloss.Style
}

// newStyleSet builds the style set. With color off every style stays zero.
func newStyleSet(color bool) styleSet {
	if !color {
		return styleSet{}
	}
	return styleSet{
		Banner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Prompt:  lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Dir:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		File:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
