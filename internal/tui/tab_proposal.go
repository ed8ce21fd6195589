package tui

import (
	"strings"

	"github.com/theirongolddev/staffplan/internal/narrative"
	"github.com/theirongolddev/staffplan/internal/tui/components"
	"github.com/theirongolddev/staffplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// narrativeState holds the Proposal tab scroll position.
type narrativeState struct {
	offset int
}

func (s *narrativeState) scrollBy(delta int) {
	s.offset += delta
	if s.offset < 0 {
		s.offset = 0
	}
}

func (a App) updateNarrativeNav(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.narrative.scrollBy(1)
	case "k", "up":
		a.narrative.scrollBy(-1)
	case "ctrl+d":
		a.narrative.scrollBy(a.halfPage())
	case "ctrl+u":
		a.narrative.scrollBy(-a.halfPage())
	case "g":
		a.narrative.offset = 0
	}
	if last := len(a.narrativeLines()) - 1; a.narrative.offset > last {
		a.narrative.offset = max(last, 0)
	}
	return a, nil
}

func (a App) halfPage() int {
	h := (a.height - 6) / 2
	if h < 1 {
		h = 1
	}
	return h
}

// narrativeLines renders the proposal document for the current view.
func (a App) narrativeLines() []string {
	var b strings.Builder
	if err := narrative.Render(&b, a.proposal, a.proj, narrative.Options{Firm: a.cfg.General.FirmName}); err != nil {
		return []string{"could not render proposal: " + err.Error()}
	}
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

func (a App) renderProposalTab(cw, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headingStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	bulletStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	lines := a.narrativeLines()
	visible := h - 3
	if visible < 1 {
		visible = 1
	}

	offset := a.narrative.offset
	if maxOff := len(lines) - visible; offset > maxOff {
		offset = maxOff
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}

	var body strings.Builder
	for i := offset; i < end; i++ {
		line := truncStr(lines[i], innerW)
		switch {
		case strings.HasPrefix(line, "#"):
			body.WriteString(headingStyle.Render(strings.TrimLeft(line, "# ")))
		case strings.HasPrefix(strings.TrimSpace(line), "- "):
			body.WriteString(bulletStyle.Render(line))
		default:
			body.WriteString(textStyle.Render(line))
		}
		if i < end-1 {
			body.WriteString("\n")
		}
	}

	title := "Proposal  " + dimStyle.Render("[j/k] scroll  `staffplan proposal -o FILE` to export")
	return components.ContentCard(title, body.String(), cw)
}
