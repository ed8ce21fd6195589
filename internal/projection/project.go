package projection

import (
	"fmt"

	"github.com/theirongolddev/staffplan/internal/model"
)

// Project runs both engine entry points for in and attaches any
// validation issues.
func Project(in model.Input) model.Projection {
	return model.Projection{
		View:      in.View,
		Summary:   ComputeSummary(in.Settings, in.Compensation, in.Clients, in.View),
		Breakdown: ComputeBreakdown(in.Settings, in.Compensation, in.Clients, in.View),
		Issues:    Validate(in),
	}
}

// RoleHours is the weekly hour range staffed for one role.
type RoleHours struct {
	Role        string
	BillingRate float64
	Hours       model.Range
}

// WeeklyHours sums weekly hours per role across the clients selected by
// view, in first-seen order. BillingRate is the first rate seen for the role.
func WeeklyHours(clients []model.ClientScenario, view string) []RoleHours {
	index := make(map[string]int)
	var out []RoleHours
	for _, c := range FilterClients(clients, view) {
		for _, rs := range c.Roles {
			i, seen := index[rs.Role]
			if !seen {
				i = len(out)
				index[rs.Role] = i
				out = append(out, RoleHours{Role: rs.Role, BillingRate: rs.BillingRate})
			}
			out[i].Hours = out[i].Hours.Add(model.Range{rs.MinHours, rs.MaxHours})
		}
	}
	return out
}

// Validate reports input problems without changing how the engine treats
// them. An empty result means the input is clean.
func Validate(in model.Input) []model.Issue {
	var issues []model.Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, model.Issue{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	s := in.Settings
	if s.WeeksInProposalPeriod <= 0 {
		add("settings.weeks", "must be positive, got %d", s.WeeksInProposalPeriod)
	}
	if s.LaborCostMultiplier < 0 {
		add("settings.multiplier", "must not be negative, got %g", s.LaborCostMultiplier)
	}
	if s.OverheadPercentage < 0 || s.OverheadPercentage > 100 {
		add("settings.overhead", "must be between 0 and 100, got %g", s.OverheadPercentage)
	}

	seen := make(map[string]bool)
	for _, e := range in.Compensation {
		field := "compensation." + e.Role
		if seen[e.Role] {
			add(field, "duplicate entry, only the first is used")
		}
		seen[e.Role] = true
		if !e.Kind.Valid() {
			add(field, "unknown type %q", e.Kind)
		}
		if e.Rate < 0 {
			add(field, "rate must not be negative")
		}
	}

	matched := in.View == model.Combined
	for _, c := range in.Clients {
		if c.Client == in.View {
			matched = true
		}
		for _, rs := range c.Roles {
			field := c.Client + "." + rs.Role
			if rs.MinHours < 0 || rs.MaxHours < 0 {
				add(field, "hours must not be negative")
			}
			if rs.MinHours > rs.MaxHours {
				add(field, "min hours %g exceed max hours %g", rs.MinHours, rs.MaxHours)
			}
			if rs.BillingRate < 0 {
				add(field, "billing rate must not be negative")
			}
			if !seen[rs.Role] {
				add(field, "no compensation entry, role excluded from projections")
			}
		}
	}
	if !matched {
		add("view", "%q matches no client", in.View)
	}

	return issues
}
