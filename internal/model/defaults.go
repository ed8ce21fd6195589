package model

import "time"

// DefaultSettings are the global assumptions a new proposal starts with.
func DefaultSettings() GlobalSettings {
	return GlobalSettings{
		LaborCostMultiplier:   1.25,
		OverheadPercentage:    15,
		WeeksInProposalPeriod: 40,
	}
}

// DefaultProposal returns the seeded two-client proposal dated now.
func DefaultProposal(now time.Time) Proposal {
	return Proposal{
		Title:        "YHA 2023-24 Proposal",
		Date:         now.UTC().Truncate(time.Second),
		ActiveClient: "YHA",
		View:         "YHA",
		Settings:     DefaultSettings(),
		Compensation: []CompensationEntry{
			{Role: "Clinical Director", Kind: Salary, Rate: 75000},
			{Role: "Senior BCBA/ECD", Kind: Salary, Rate: 100000},
			{Role: "Behavior Technician", Kind: Hourly, Rate: 65},
			{Role: "Social Skills Coach", Kind: Hourly, Rate: 50},
		},
		Clients: []ClientScenario{
			{
				Client: "YHA",
				Roles: []RoleScenario{
					{Role: "Clinical Director", BillingRate: 185, MinHours: 5, MaxHours: 5},
					{Role: "Senior BCBA/ECD", BillingRate: 150, MinHours: 15, MaxHours: 25},
					{Role: "Behavior Technician", BillingRate: 90, MinHours: 15, MaxHours: 30},
					{Role: "Social Skills Coach", BillingRate: 75, MinHours: 0, MaxHours: 5},
				},
			},
			{
				Client: "Hillel",
				Roles: []RoleScenario{
					{Role: "Clinical Director", BillingRate: 185, MinHours: 3, MaxHours: 5},
					{Role: "Senior BCBA/ECD", BillingRate: 150, MinHours: 10, MaxHours: 20},
					{Role: "Behavior Technician", BillingRate: 90, MinHours: 10, MaxHours: 25},
					{Role: "Social Skills Coach", BillingRate: 75, MinHours: 5, MaxHours: 10},
				},
			},
		},
	}
}
