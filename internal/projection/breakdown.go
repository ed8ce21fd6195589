package projection

import "github.com/theirongolddev/staffplan/internal/model"

// roleAccumulator carries a role's running yearly totals across clients.
type roleAccumulator struct {
	role    string
	revenue model.Range
	cost    model.Range
	profit  model.Range
	margin  model.Range
}

func (a *roleAccumulator) add(revenue, cost model.Range) {
	a.revenue = a.revenue.Add(revenue)
	a.cost = a.cost.Add(cost)
	a.profit = a.profit.Add(revenue.Sub(cost))
	a.margin = model.Range{
		Margin(a.profit[0], a.revenue[0]),
		Margin(a.profit[1], a.revenue[1]),
	}
}

// ComputeBreakdown projects yearly gross figures per role, summed across
// the clients selected by view, plus totals with overhead applied. Roles
// appear in the order they are first seen.
func ComputeBreakdown(
	settings model.GlobalSettings,
	compensation []model.CompensationEntry,
	clients []model.ClientScenario,
	view string,
) model.Breakdown {
	weeks := float64(settings.WeeksInProposalPeriod)

	index := make(map[string]int)
	var accs []*roleAccumulator

	for _, c := range FilterClients(clients, view) {
		for _, rs := range c.Roles {
			entry, ok := model.LookupCompensation(compensation, rs.Role)
			if !ok {
				continue
			}

			revenue := model.Range{
				WeeklyRevenue(rs, rs.MinHours) * weeks,
				WeeklyRevenue(rs, rs.MaxHours) * weeks,
			}
			cost := model.Range{
				WeeklyCost(entry, rs.MinHours, settings.LaborCostMultiplier) * weeks,
				WeeklyCost(entry, rs.MaxHours, settings.LaborCostMultiplier) * weeks,
			}

			i, seen := index[rs.Role]
			if !seen {
				i = len(accs)
				index[rs.Role] = i
				accs = append(accs, &roleAccumulator{role: rs.Role})
			}
			accs[i].add(revenue, cost)
		}
	}

	b := model.Breakdown{Roles: make([]model.RoleBreakdown, 0, len(accs))}
	for _, a := range accs {
		b.Roles = append(b.Roles, model.RoleBreakdown{
			Role:         a.role,
			GrossRevenue: a.revenue,
			BurdenedCost: a.cost,
			GrossProfit:  a.profit,
			GrossMargin:  a.margin,
		})
		b.TotalGrossRevenue = b.TotalGrossRevenue.Add(a.revenue)
		b.TotalBurdenedCost = b.TotalBurdenedCost.Add(a.cost)
		b.TotalGrossProfit = b.TotalGrossProfit.Add(a.profit)
	}

	b.TotalGrossMargin = model.Range{
		Margin(b.TotalGrossProfit[0], b.TotalGrossRevenue[0]),
		Margin(b.TotalGrossProfit[1], b.TotalGrossRevenue[1]),
	}
	b.EstimatedOverhead = model.Range{
		Overhead(b.TotalGrossRevenue[0], settings.OverheadPercentage),
		Overhead(b.TotalGrossRevenue[1], settings.OverheadPercentage),
	}
	b.EstimatedOperatingProfit = b.TotalGrossProfit.Sub(b.EstimatedOverhead)
	b.EstimatedOperatingMargin = model.Range{
		Margin(b.EstimatedOperatingProfit[0], b.TotalGrossRevenue[0]),
		Margin(b.EstimatedOperatingProfit[1], b.TotalGrossRevenue[1]),
	}

	return b
}
