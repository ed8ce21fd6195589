package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki Dark, matching the editor's default theme.
var (
	colorBorder    = lipgloss.Color("#282726")
	colorTextDim   = lipgloss.Color("#575653")
	colorTextMuted = lipgloss.Color("#6F6E69")
	colorText      = lipgloss.Color("#FFFCF0")
	colorAccent    = lipgloss.Color("#3AA99F")
	colorPositive  = lipgloss.Color("#879A39")
	colorCaution   = lipgloss.Color("#DA702C")
	colorNegative  = lipgloss.Color("#D14D41")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle    = lipgloss.NewStyle().Foreground(colorText)
	negativeStyle = lipgloss.NewStyle().Foreground(colorNegative)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorTextMuted)
	barStyle      = lipgloss.NewStyle().Foreground(colorPositive)
	warnStyle     = lipgloss.NewStyle().Foreground(colorCaution)
	ruleStyle     = lipgloss.NewStyle().Foreground(colorTextDim)
)

// SeparatorRow is a Rows entry that draws a horizontal rule.
const SeparatorRow = "---"

// Table is a bordered text table for CLI output. The first column is
// left-aligned, the rest right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, measured from content if nil
}

// RenderTitle renders a centered title bar in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

func (t Table) columns() []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}

	measure := func(cells []string) {
		for i, c := range cells {
			if i < n {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			measure(row)
		}
	}
	return widths
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == SeparatorRow
}

// rule draws a full-width border line with the given corner and joint runes.
func rule(widths []int, left, joint, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return ruleStyle.Render(left+strings.Join(segs, joint)+right) + "\n"
}

// pad fits cell into w display columns, right-aligned unless left is set.
func pad(cell string, w int, left bool) string {
	gap := strings.Repeat(" ", max(w-lipgloss.Width(cell), 0))
	if left {
		return " " + cell + gap + " "
	}
	return " " + gap + cell + " "
}

// RenderTable renders t with box-drawing borders. Cells holding negative
// money are highlighted.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	widths := t.columns()
	sep := ruleStyle.Render("│")

	line := func(cells []string, style func(i int, cell string) lipgloss.Style) string {
		var sb strings.Builder
		sb.WriteString(sep)
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style(i, cell).Render(pad(cell, w, i == 0)))
			sb.WriteString(sep)
		}
		sb.WriteString("\n")
		return sb.String()
	}

	var b strings.Builder
	if t.Title != "" {
		fmt.Fprintf(&b, "  %s\n", headerStyle.Render(t.Title))
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, func(int, string) lipgloss.Style { return headerStyle }))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, func(i int, cell string) lipgloss.Style {
			if i > 0 && strings.HasPrefix(cell, "-$") {
				return negativeStyle
			}
			return valueStyle
		}))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))

	return b.String()
}

// RenderHorizontalBar renders a labeled bar scaled against maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return "  " + mutedStyle.Render(label)
	}
	n := max(int(value/maxValue*float64(maxWidth)), 0)
	return fmt.Sprintf("  %s %s", barStyle.Render(strings.Repeat("█", n)), mutedStyle.Render(label))
}

// RenderWarning renders a single warning line.
func RenderWarning(msg string) string {
	return warnStyle.Render("  ! " + msg)
}
