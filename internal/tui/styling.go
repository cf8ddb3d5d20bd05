package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(termenv.ANSIBrightGreen)).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(termenv.ANSIBrightYellow))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(termenv.ANSIBrightWhite)).
			Bold(true).
			Underline(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676"))
)

// Paint renders text with style when out is a terminal and returns it
// unchanged otherwise, so redirected output stays free of escape codes.
func Paint(out io.Writer, style lipgloss.Style, text string) string {
	if !IsTerminalWriter(out) {
		return text
	}
	return style.Render(text)
}
