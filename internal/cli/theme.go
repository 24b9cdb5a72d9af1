package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type theme struct {
	Title   lipgloss.Style
	Faint   lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
	Hunk    lipgloss.Style
}

// newTheme binds styles to w so color is only emitted when w is a terminal.
func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		Title:   r.NewStyle().Bold(true),
		Faint:   r.NewStyle().Faint(true),
		Added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		Removed: r.NewStyle().Foreground(lipgloss.Color("1")),
		Hunk:    r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}
