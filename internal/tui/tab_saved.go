package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/tui/components"
	"github.com/theirongolddev/staffplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// savedState holds the Saved tab listing and cursor.
type savedState struct {
	entries []document.Entry
	cursor  int
	err     error
}

func (s *savedState) clampCursor() {
	if s.cursor >= len(s.entries) {
		s.cursor = len(s.entries) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s savedState) selected() (document.Entry, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries) {
		return document.Entry{}, false
	}
	return s.entries[s.cursor], true
}

func (a App) updateSavedNav(key string) (tea.Model, tea.Cmd) {
	if a.store == nil {
		return a, nil
	}
	switch key {
	case "j", "down":
		a.saved.cursor++
		a.saved.clampCursor()
	case "k", "up":
		a.saved.cursor--
		a.saved.clampCursor()
	case "r":
		return a, listCmd(a.store)
	case "enter":
		if e, ok := a.saved.selected(); ok {
			return a, loadCmd(a.store, e.ID)
		}
	case "d":
		if e, ok := a.saved.selected(); ok {
			return a, deleteCmd(a.store, e.ID)
		}
	}
	return a, nil
}

func (a App) renderSavedTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	currentStyle := lipgloss.NewStyle().Foreground(t.Positive).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Caution).Background(t.Surface)

	if a.store == nil {
		return components.ContentCard("Saved Proposals",
			mutedStyle.Render("No store configured. Use --db or --remote."), cw)
	}

	var body strings.Builder
	if a.saved.err != nil {
		body.WriteString(warnStyle.Render("Listing failed: " + a.saved.err.Error()))
		body.WriteString("\n\n")
	}

	if len(a.saved.entries) == 0 {
		body.WriteString(mutedStyle.Render("Nothing saved yet. Press ctrl+s to save the current proposal."))
		return components.ContentCard("Saved Proposals", body.String(), cw)
	}

	const dateW, clientW, savedW = 18, 14, 16
	titleW := innerW - dateW - clientW - savedW - 3
	if titleW < 16 {
		titleW = 16
	}

	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %-*s",
		titleW, "Title", clientW, "Client", dateW, "Date", savedW, "Saved")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", titleW+dateW+clientW+savedW+3)))
	body.WriteString("\n")

	for i, e := range a.saved.entries {
		saved := ""
		if !e.SavedAt.IsZero() {
			saved = e.SavedAt.Local().Format("Jan 02 15:04")
		}
		line := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			titleW, truncStr(e.Title, titleW),
			clientW, truncStr(e.Client, clientW),
			dateW, cli.FormatDate(e.Date),
			savedW, saved)

		switch {
		case i == a.saved.cursor:
			body.WriteString(selectedStyle.Render(line))
		case e.ID == a.proposal.ID:
			body.WriteString(currentStyle.Render(line))
		default:
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("[j/k] navigate  [Enter] load  [d] delete  [r] refresh"))

	return components.ContentCard(fmt.Sprintf("Saved Proposals (%d)", len(a.saved.entries)), body.String(), cw)
}
