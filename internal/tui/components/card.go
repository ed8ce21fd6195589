// Package components provides the card, tab and gauge widgets of the staffplan editor.
package components

import (
	"strings"

	"github.com/theirongolddev/staffplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one headline figure shown in a MetricCard.
type Metric struct {
	Label string
	Value string
	Sub   string
	Color lipgloss.Color // value color, TextPrimary when empty
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Card chrome: one border column per side plus one padding column per side.
const (
	cardBorder  = 2
	cardPadding = 2
	minCardText = 10
)

// surface is the shared bordered card style for a card outerWidth wide.
func surface(outerWidth int) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(outerWidth-cardBorder, minCardText)).
		Padding(0, cardPadding/2)
}

// MetricCard renders one Metric as label, bold value and optional sub-line.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	if m.Color == "" {
		m.Color = t.TextPrimary
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(m.Label),
		lipgloss.NewStyle().Foreground(m.Color).Background(t.Surface).Bold(true).Render(m.Value),
	}
	if m.Sub != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(m.Sub))
	}
	return surface(outerWidth).Render(strings.Join(lines, "\n"))
}

// MetricCardRow renders metrics side by side across totalWidth.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return CardRow(cards)
}

// ContentCard renders body in a card with an optional bold title line.
func ContentCard(title, body string, outerWidth int) string {
	if title != "" {
		t := theme.Active
		title = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true).Render(title)
		body = title + "\n" + body
	}
	return surface(outerWidth).Render(body)
}

// CardRow joins pre-rendered cards horizontally. Shorter cards are padded
// with the theme background so the row stays a solid block.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	t := theme.Active

	tallest := 0
	for _, c := range cards {
		if h := lipgloss.Height(c); h > tallest {
			tallest = h
		}
	}

	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.PlaceVertical(tallest, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(t.Background))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth is the text width left inside a card outerWidth wide.
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-cardBorder-cardPadding, minCardText)
}
