package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	header       lipgloss.Style
	country      lipgloss.Style
	detail       lipgloss.Style
	warning      lipgloss.Style
	section      lipgloss.Style
	sectionTitle lipgloss.Style
	empty        lipgloss.Style
	key          lipgloss.Style
	meta         lipgloss.Style
	better       lipgloss.Style
	worse        lipgloss.Style
	equal        lipgloss.Style
	positive     lipgloss.Style
	negative     lipgloss.Style
	neutral      lipgloss.Style
	barBracket   lipgloss.Style
	barFill      lipgloss.Style
	barEmpty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true),
		header:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		country:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:      lipgloss.NewStyle().MarginTop(1),
		sectionTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		empty:        lipgloss.NewStyle().Faint(true),
		key:          lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		better:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		worse:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		equal:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		positive:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		negative:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		neutral:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
