package components

import (
	"fmt"

	"github.com/theirongolddev/staffplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Share returns part/whole clamped to [0, 1].
func Share(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	s := part / whole
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// ShareBar renders a labeled bar filled to share (0-1) followed by value.
func ShareBar(label, value string, share float64, color lipgloss.Color, labelW, barW int) string {
	t := theme.Active

	if barW < 4 {
		barW = 4
	}
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		space +
		bar.ViewAs(share) +
		space +
		valueStyle.Render(value)
}

// MarginGauge renders a margin percentage as a bar on a 0-100 scale,
// colored by margin health.
func MarginGauge(label string, marginPct float64, labelW, barW int) string {
	color := theme.Active.ForMargin(marginPct)
	return ShareBar(label, fmt.Sprintf("%6.2f%%", marginPct), Share(marginPct, 100), color, labelW, barW)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
