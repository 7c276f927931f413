package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Label     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	ID        lipgloss.Style
}

// NewStyles returns colored styles for a terminal and unstyled ones otherwise.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header:    plain,
			SubHeader: plain,
			Label:     plain,
			Success:   plain,
			Warning:   plain,
			Error:     plain,
			Muted:     plain,
			Bold:      plain,
			ID:        plain,
		}
	}
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		SubHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:      lipgloss.NewStyle().Bold(true),
		ID:        lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
