package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Styles used across command output. Plain renders every style as identity.
type Styles struct {
	Heading  lipgloss.Style
	Item     lipgloss.Style
	Raw      lipgloss.Style
	Recipe   lipgloss.Style
	Machine  lipgloss.Style
	Circular lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles returns colored styles, or unstyled ones when color is false
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Heading:  plain,
			Item:     plain,
			Raw:      plain,
			Recipe:   plain,
			Machine:  plain,
			Circular: plain,
			Warning:  plain,
			Muted:    plain,
		}
	}

	return Styles{
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Item:     lipgloss.NewStyle().Bold(true),
		Raw:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		Recipe:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
		Machine:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),  // gray
		Circular: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // red
		Warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newTable(color bool) table.Writer {
	t := table.NewWriter()
	if color {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}
