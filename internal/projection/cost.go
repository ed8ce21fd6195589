// Package projection turns staffing scenarios into yearly revenue, cost,
// profit and margin figures. Every function here is pure.
package projection

import "github.com/theirongolddev/staffplan/internal/model"

const (
	// WeeksPerYear converts an annual salary into a weekly amount.
	WeeksPerYear = 52
	// FullTimeHours is the weekly hours a salary is assumed to cover.
	FullTimeHours = 40
	// WeeksPerMonth converts weekly figures into monthly estimates.
	WeeksPerMonth = 4.33
)

// WeeklyCost returns the burdened internal cost of staffing a role for
// hours per week. Salaried roles are prorated against a 40-hour week.
func WeeklyCost(entry model.CompensationEntry, hours, multiplier float64) float64 {
	if entry.Kind == model.Salary {
		return (entry.Rate / WeeksPerYear) * multiplier * (hours / FullTimeHours)
	}
	return entry.Rate * hours * multiplier
}

// WeeklyRevenue returns what the client is billed for hours per week.
func WeeklyRevenue(rs model.RoleScenario, hours float64) float64 {
	return rs.BillingRate * hours
}

// Margin returns profit as a percentage of revenue, or 0 without revenue.
func Margin(profit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return profit / revenue * 100
}

// Overhead returns the overhead charge on revenue.
func Overhead(revenue, percentage float64) float64 {
	return revenue * percentage / 100
}

// FilterClients returns the clients selected by view. Combined keeps
// every client; any other view keeps exact name matches only.
func FilterClients(clients []model.ClientScenario, view string) []model.ClientScenario {
	if view == model.Combined {
		return clients
	}
	var filtered []model.ClientScenario
	for _, c := range clients {
		if c.Client == view {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Monthly converts a yearly range into a monthly estimate over weeks.
func Monthly(yearly model.Range, weeks int) model.Range {
	if weeks <= 0 {
		return model.Range{}
	}
	return yearly.Scale(WeeksPerMonth / float64(weeks))
}
