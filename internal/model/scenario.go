// Package model defines the proposal inputs and projection outputs shared across staffplan.
package model

// Combined is the view that spans every client in a proposal.
const Combined = "Combined"

// CompensationKind says how a role is paid internally.
type CompensationKind string

const (
	Hourly CompensationKind = "Hourly"
	Salary CompensationKind = "Salary"
)

// Valid reports whether k is one of the known kinds.
func (k CompensationKind) Valid() bool {
	return k == Hourly || k == Salary
}

// GlobalSettings holds the assumptions applied to every role.
type GlobalSettings struct {
	LaborCostMultiplier   float64 `json:"laborCostMultiplier" toml:"labor_cost_multiplier"`
	OverheadPercentage    float64 `json:"overheadPercentage" toml:"overhead_percentage"`
	WeeksInProposalPeriod int     `json:"weeksInProposalPeriod" toml:"weeks_in_proposal_period"`
}

// CompensationEntry is the internal pay for one role.
// Rate is per hour for Hourly and per year for Salary.
type CompensationEntry struct {
	Role string           `json:"role" toml:"role"`
	Kind CompensationKind `json:"type" toml:"type"`
	Rate float64          `json:"rate" toml:"rate"`
}

// RoleScenario is the staffing assumption for one role at one client.
type RoleScenario struct {
	Role        string  `json:"role" toml:"role"`
	BillingRate float64 `json:"billingRate" toml:"billing_rate"`
	MinHours    float64 `json:"minHours" toml:"min_hours"`
	MaxHours    float64 `json:"maxHours" toml:"max_hours"`
}

// ClientScenario groups the role scenarios for one client.
type ClientScenario struct {
	Client string         `json:"clientName" toml:"client"`
	Roles  []RoleScenario `json:"roles" toml:"roles"`
}

// Input is everything the projection engine reads.
type Input struct {
	Settings     GlobalSettings
	Compensation []CompensationEntry
	Clients      []ClientScenario
	View         string
}

// LookupCompensation returns the first entry for role.
func LookupCompensation(entries []CompensationEntry, role string) (CompensationEntry, bool) {
	for _, e := range entries {
		if e.Role == role {
			return e, true
		}
	}
	return CompensationEntry{}, false
}
