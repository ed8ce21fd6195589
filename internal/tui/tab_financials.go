package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
	"github.com/theirongolddev/staffplan/internal/tui/components"
	"github.com/theirongolddev/staffplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderFinancialsTab(cw int) string {
	t := theme.Active
	s := a.proj.Summary
	b := a.proj.Breakdown
	weeks := a.proposal.Settings.WeeksInProposalPeriod

	monthly := projection.Monthly(s.YearlyRevenueRange, weeks)
	metrics := []components.Metric{
		{
			Label: "Worst Case Profit",
			Value: cli.FormatCurrency(s.WorstCase.YearlyOperatingProfit),
			Sub:   cli.FormatMargin(s.WorstCase.YearlyOperatingMargin) + " margin",
			Color: t.ForAmount(s.WorstCase.YearlyOperatingProfit),
		},
		{
			Label: "Best Case Profit",
			Value: cli.FormatCurrency(s.BestCase.YearlyOperatingProfit),
			Sub:   cli.FormatMargin(s.BestCase.YearlyOperatingMargin) + " margin",
			Color: t.ForAmount(s.BestCase.YearlyOperatingProfit),
		},
		{
			Label: "Yearly Revenue",
			Value: cli.FormatCurrencyRange(s.YearlyRevenueRange),
			Sub:   cli.FormatCurrencyRange(monthly) + " /mo",
		},
		{
			Label: "Proposal Period",
			Value: fmt.Sprintf("%d weeks", weeks),
			Sub:   fmt.Sprintf("%s overhead", cli.FormatPercent(a.proposal.Settings.OverheadPercentage)),
		},
	}

	var out strings.Builder
	out.WriteString(components.MetricCardRow(metrics, cw))
	out.WriteString("\n")

	if len(b.Roles) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render(fmt.Sprintf("No staffed roles for %s", a.proposal.View))
		out.WriteString(components.ContentCard("Detailed Breakdown by Role", empty, cw))
		return out.String()
	}

	out.WriteString(components.ContentCard("Detailed Breakdown by Role", a.roleTable(b, cw), cw))
	out.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	out.WriteString(components.CardRow([]string{
		components.ContentCard("Totals", totalsBody(b, halves[0]), halves[0]),
		components.ContentCard("Margins (worst / best)", marginBody(b, halves[1]), halves[1]),
	}))
	return out.String()
}

func (a App) roleTable(b model.Breakdown, cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	const colW = 23
	nameW := innerW - 4*(colW+1)
	if nameW < 14 {
		nameW = 14
	}

	line := func(style lipgloss.Style, name string, cols ...string) string {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%-*s", nameW, truncStr(name, nameW))
		for _, c := range cols {
			fmt.Fprintf(&sb, " %*s", colW, c)
		}
		return style.Render(sb.String())
	}

	var body strings.Builder
	body.WriteString(line(headerStyle, "Role", "Gross Revenue", "Burdened Cost", "Gross Profit", "Gross Margin"))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+4*(colW+1))))
	body.WriteString("\n")

	for _, r := range b.Roles {
		body.WriteString(line(rowStyle, r.Role,
			cli.FormatCurrencyRange(r.GrossRevenue),
			cli.FormatCurrencyRange(r.BurdenedCost),
			cli.FormatCurrencyRange(r.GrossProfit),
			cli.FormatPercentRange(r.GrossMargin),
		))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+4*(colW+1))))
	body.WriteString("\n")
	body.WriteString(line(totalStyle, "Total",
		cli.FormatCurrencyRange(b.TotalGrossRevenue),
		cli.FormatCurrencyRange(b.TotalBurdenedCost),
		cli.FormatCurrencyRange(b.TotalGrossProfit),
		cli.FormatPercentRange(b.TotalGrossMargin),
	))
	return body.String()
}

func totalsBody(b model.Breakdown, outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	rows := []struct {
		label string
		r     model.Range
	}{
		{"Gross Revenue", b.TotalGrossRevenue},
		{"Burdened Cost", b.TotalBurdenedCost},
		{"Gross Profit", b.TotalGrossProfit},
		{"Overhead", b.EstimatedOverhead},
		{"Operating Profit", b.EstimatedOperatingProfit},
	}

	labelW := 18
	valW := (innerW - labelW) / 2
	if valW < 10 {
		valW = 10
	}

	var body strings.Builder
	for i, row := range rows {
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, row.label)))
		for _, v := range row.r {
			style := lipgloss.NewStyle().Foreground(t.ForAmount(v)).Background(t.Surface)
			if row.label == "Burdened Cost" || row.label == "Overhead" {
				style = style.Foreground(t.TextPrimary)
			}
			body.WriteString(space.Render(" "))
			body.WriteString(style.Render(fmt.Sprintf("%*s", valW-1, cli.FormatCurrency(v))))
		}
		if i < len(rows)-1 {
			body.WriteString("\n")
		}
	}
	return body.String()
}

func marginBody(b model.Breakdown, outerW int) string {
	innerW := components.CardInnerWidth(outerW)
	labelW := 10
	barW := innerW - labelW - 10
	if barW < 4 {
		barW = 4
	}

	lines := []string{
		components.MarginGauge("Gross", b.TotalGrossMargin.Worst(), labelW, barW),
		components.MarginGauge("", b.TotalGrossMargin.Best(), labelW, barW),
		components.MarginGauge("Operating", b.EstimatedOperatingMargin.Worst(), labelW, barW),
		components.MarginGauge("", b.EstimatedOperatingMargin.Best(), labelW, barW),
	}
	return strings.Join(lines, "\n")
}
