package cli

import "github.com/theirongolddev/staffplan/internal/model"

// SummaryTable lays out the worst/best case cards and scenario ranges.
func SummaryTable(s model.Summary) Table {
	return Table{
		Title:   "Scenario Summary",
		Headers: []string{"Yearly", "Worst Case", "Best Case"},
		Rows: [][]string{
			{"Gross Revenue", FormatCurrency(s.WorstCase.YearlyGrossRevenue), FormatCurrency(s.BestCase.YearlyGrossRevenue)},
			{"Operating Profit", FormatCurrency(s.WorstCase.YearlyOperatingProfit), FormatCurrency(s.BestCase.YearlyOperatingProfit)},
			{"Operating Margin", FormatMargin(s.WorstCase.YearlyOperatingMargin), FormatMargin(s.BestCase.YearlyOperatingMargin)},
		},
	}
}

// RangeTable lists the summary ranges as single formatted cells.
func RangeTable(s model.Summary) Table {
	return Table{
		Headers: []string{"Range", "Worst - Best"},
		Rows: [][]string{
			{"Revenue", FormatCurrencyRange(s.YearlyRevenueRange)},
			{"Operating Profit", FormatCurrencyRange(s.YearlyOpProfitRange)},
			{"Operating Margin", FormatPercentRange(s.YearlyOpMarginRange)},
		},
	}
}

// RoleTable lists each role's yearly gross figures.
func RoleTable(b model.Breakdown) Table {
	rows := make([][]string, 0, len(b.Roles)+2)
	for _, r := range b.Roles {
		rows = append(rows, []string{
			r.Role,
			FormatCurrencyRange(r.GrossRevenue),
			FormatCurrencyRange(r.BurdenedCost),
			FormatCurrencyRange(r.GrossProfit),
			FormatPercentRange(r.GrossMargin),
		})
	}
	rows = append(rows, []string{SeparatorRow})
	rows = append(rows, []string{
		"Total",
		FormatCurrencyRange(b.TotalGrossRevenue),
		FormatCurrencyRange(b.TotalBurdenedCost),
		FormatCurrencyRange(b.TotalGrossProfit),
		FormatPercentRange(b.TotalGrossMargin),
	})

	return Table{
		Title:   "Detailed Breakdown by Role",
		Headers: []string{"Role", "Gross Revenue", "Burdened Cost", "Gross Profit", "Gross Margin"},
		Rows:    rows,
	}
}

// TotalsTable lists the breakdown totals with overhead applied.
func TotalsTable(b model.Breakdown) Table {
	money := func(label string, r model.Range) []string {
		return []string{label, FormatCurrency(r.Worst()), FormatCurrency(r.Best())}
	}
	pct := func(label string, r model.Range) []string {
		return []string{label, FormatMargin(r.Worst()), FormatMargin(r.Best())}
	}
	return Table{
		Title:   "Totals",
		Headers: []string{"Metric", "Worst Case", "Best Case"},
		Rows: [][]string{
			money("Total Gross Revenue", b.TotalGrossRevenue),
			money("Total Burdened Cost", b.TotalBurdenedCost),
			money("Total Gross Profit", b.TotalGrossProfit),
			pct("Total Gross Margin", b.TotalGrossMargin),
			{SeparatorRow},
			money("Estimated Overhead", b.EstimatedOverhead),
			money("Operating Profit", b.EstimatedOperatingProfit),
			pct("Operating Margin", b.EstimatedOperatingMargin),
		},
	}
}
