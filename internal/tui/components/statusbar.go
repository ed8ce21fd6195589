package components

import (
	"strings"

	"github.com/theirongolddev/staffplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the active view and save state on the right. A non-empty flash replaces
// the save state.
func RenderStatusBar(width int, view string, saved bool, flash string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	left := base.Render(" [?]help  [v]iew  [^s]ave  [q]uit")

	var state string
	switch {
	case flash != "":
		state = lipgloss.NewStyle().Foreground(t.Notice).Background(t.Surface).Render(flash)
	case saved:
		state = lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface).Render("saved")
	default:
		state = lipgloss.NewStyle().Foreground(t.Caution).Background(t.Surface).Render("unsaved")
	}
	right := base.Render("View: ") + accent.Render(view) + base.Render("  ") + state + base.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
