package projection

import "github.com/theirongolddev/staffplan/internal/model"

// ComputeSummary projects yearly worst-case and best-case figures for the
// clients selected by view. Worst pairs with each role's minimum weekly
// hours and best with its maximum. Roles without a compensation entry are
// skipped.
func ComputeSummary(
	settings model.GlobalSettings,
	compensation []model.CompensationEntry,
	clients []model.ClientScenario,
	view string,
) model.Summary {
	weeks := float64(settings.WeeksInProposalPeriod)

	var revenue, cost model.Range
	for _, c := range FilterClients(clients, view) {
		for _, rs := range c.Roles {
			entry, ok := model.LookupCompensation(compensation, rs.Role)
			if !ok {
				continue
			}

			revenue[0] += WeeklyRevenue(rs, rs.MinHours) * weeks
			revenue[1] += WeeklyRevenue(rs, rs.MaxHours) * weeks
			cost[0] += WeeklyCost(entry, rs.MinHours, settings.LaborCostMultiplier) * weeks
			cost[1] += WeeklyCost(entry, rs.MaxHours, settings.LaborCostMultiplier) * weeks
		}
	}

	overhead := model.Range{
		Overhead(revenue[0], settings.OverheadPercentage),
		Overhead(revenue[1], settings.OverheadPercentage),
	}
	profit := revenue.Sub(cost).Sub(overhead)
	margin := model.Range{
		Margin(profit[0], revenue[0]),
		Margin(profit[1], revenue[1]),
	}

	return model.Summary{
		WorstCase: model.CaseFigures{
			YearlyOperatingProfit: profit[0],
			YearlyOperatingMargin: margin[0],
			YearlyGrossRevenue:    revenue[0],
		},
		BestCase: model.CaseFigures{
			YearlyOperatingProfit: profit[1],
			YearlyOperatingMargin: margin[1],
			YearlyGrossRevenue:    revenue[1],
		},
		YearlyRevenueRange:  revenue,
		YearlyOpProfitRange: profit,
		YearlyOpMarginRange: margin,
	}
}
