package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Proposal is the persisted document behind one staffing proposal.
type Proposal struct {
	ID           string              `json:"id,omitempty" toml:"id,omitempty"`
	Title        string              `json:"proposalTitle" toml:"title"`
	Date         time.Time           `json:"proposalDate" toml:"date"`
	ActiveClient string              `json:"activeClient" toml:"active_client"`
	View         string              `json:"activeView" toml:"view"`
	Settings     GlobalSettings      `json:"globalSettings" toml:"settings"`
	Compensation []CompensationEntry `json:"teamCompensation" toml:"compensation"`
	Clients      []ClientScenario    `json:"clients" toml:"clients"`
	Saved        bool                `json:"savedState" toml:"-"`
	LastSaved    *time.Time          `json:"lastSaved" toml:"last_saved,omitempty"`
}

// Input returns the engine input for the proposal's current view.
func (p *Proposal) Input() Input {
	return p.InputFor(p.View)
}

// InputFor returns the engine input for an explicit view. The input
// shares no memory with p, so later edits do not show through it.
func (p *Proposal) InputFor(view string) Input {
	if view == "" {
		view = Combined
	}
	c := p.Clone()
	return Input{
		Settings:     c.Settings,
		Compensation: c.Compensation,
		Clients:      c.Clients,
		View:         view,
	}
}

// Clone returns a deep copy of p.
func (p *Proposal) Clone() Proposal {
	c := *p
	c.Compensation = slices.Clone(p.Compensation)
	if p.Clients != nil {
		c.Clients = make([]ClientScenario, len(p.Clients))
		for i, cs := range p.Clients {
			c.Clients[i] = ClientScenario{Client: cs.Client, Roles: slices.Clone(cs.Roles)}
		}
	}
	if p.LastSaved != nil {
		t := *p.LastSaved
		c.LastSaved = &t
	}
	return c
}

// Views lists Combined followed by every client name.
func (p *Proposal) Views() []string {
	views := make([]string, 0, len(p.Clients)+1)
	views = append(views, Combined)
	for _, c := range p.Clients {
		views = append(views, c.Client)
	}
	return views
}

// Client returns the scenario for the named client.
func (p *Proposal) Client(name string) (*ClientScenario, bool) {
	for i := range p.Clients {
		if p.Clients[i].Client == name {
			return &p.Clients[i], true
		}
	}
	return nil, false
}

// Setting names accepted by SetSetting.
const (
	SettingMultiplier = "multiplier"
	SettingOverhead   = "overhead"
	SettingWeeks      = "weeks"
)

// maxWeeks bounds the proposal period so it always fits an int.
const maxWeeks = math.MaxInt32

// SetSetting updates one global setting and marks the proposal unsaved.
// Weeks must be a whole number between 0 and maxWeeks.
func (p *Proposal) SetSetting(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s: %v is not a finite number", name, value)
	}
	switch name {
	case SettingMultiplier:
		p.Settings.LaborCostMultiplier = value
	case SettingOverhead:
		p.Settings.OverheadPercentage = value
	case SettingWeeks:
		if value != math.Trunc(value) || value < 0 || value > maxWeeks {
			return fmt.Errorf("weeks must be a whole number between 0 and %d, got %v", maxWeeks, value)
		}
		p.Settings.WeeksInProposalPeriod = int(value)
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	p.Saved = false
	return nil
}

// SetTitle renames the proposal.
func (p *Proposal) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title must not be empty")
	}
	p.Title = title
	p.Saved = false
	return nil
}

// SetDate changes the proposal date.
func (p *Proposal) SetDate(date time.Time) {
	p.Date = date
	p.Saved = false
}

// SetCompensation replaces the entry for entry.Role.
func (p *Proposal) SetCompensation(entry CompensationEntry) error {
	if !entry.Kind.Valid() {
		return fmt.Errorf("role %q: unknown compensation type %q", entry.Role, entry.Kind)
	}
	for i := range p.Compensation {
		if p.Compensation[i].Role == entry.Role {
			p.Compensation[i] = entry
			p.Saved = false
			return nil
		}
	}
	return fmt.Errorf("no compensation entry for role %q", entry.Role)
}

// AddCompensation appends a new role to the compensation table.
func (p *Proposal) AddCompensation(entry CompensationEntry) error {
	if !entry.Kind.Valid() {
		return fmt.Errorf("role %q: unknown compensation type %q", entry.Role, entry.Kind)
	}
	if _, ok := LookupCompensation(p.Compensation, entry.Role); ok {
		return fmt.Errorf("role %q already has a compensation entry", entry.Role)
	}
	p.Compensation = append(p.Compensation, entry)
	p.Saved = false
	return nil
}

// RemoveCompensation drops the entry for role. Scenarios that still name
// the role stop contributing to projections.
func (p *Proposal) RemoveCompensation(role string) error {
	for i := range p.Compensation {
		if p.Compensation[i].Role == role {
			p.Compensation = slices.Concat(p.Compensation[:i], p.Compensation[i+1:])
			p.Saved = false
			return nil
		}
	}
	return fmt.Errorf("no compensation entry for role %q", role)
}

// SetRoleScenario replaces or appends the scenario for rs.Role at client.
func (p *Proposal) SetRoleScenario(client string, rs RoleScenario) error {
	c, ok := p.Client(client)
	if !ok {
		return fmt.Errorf("unknown client %q", client)
	}
	for i := range c.Roles {
		if c.Roles[i].Role == rs.Role {
			c.Roles[i] = rs
			p.Saved = false
			return nil
		}
	}
	c.Roles = append(c.Roles, rs)
	p.Saved = false
	return nil
}

// RemoveRoleScenario drops role from client's scenarios.
func (p *Proposal) RemoveRoleScenario(client, role string) error {
	c, ok := p.Client(client)
	if !ok {
		return fmt.Errorf("unknown client %q", client)
	}
	for i := range c.Roles {
		if c.Roles[i].Role == role {
			c.Roles = slices.Concat(c.Roles[:i], c.Roles[i+1:])
			p.Saved = false
			return nil
		}
	}
	return fmt.Errorf("role %q not staffed at %s", role, client)
}

// AddClient appends an empty client scenario.
func (p *Proposal) AddClient(name string) error {
	if name == "" || name == Combined {
		return fmt.Errorf("invalid client name %q", name)
	}
	if _, ok := p.Client(name); ok {
		return fmt.Errorf("client %q already exists", name)
	}
	p.Clients = append(p.Clients, ClientScenario{Client: name})
	if p.ActiveClient == "" {
		p.ActiveClient = name
	}
	p.Saved = false
	return nil
}

// RemoveClient drops a client and falls back to Combined when it was
// the active view.
func (p *Proposal) RemoveClient(name string) error {
	for i := range p.Clients {
		if p.Clients[i].Client != name {
			continue
		}
		p.Clients = slices.Concat(p.Clients[:i], p.Clients[i+1:])
		if p.View == name {
			p.View = Combined
		}
		if p.ActiveClient == name {
			p.ActiveClient = ""
			if len(p.Clients) > 0 {
				p.ActiveClient = p.Clients[0].Client
			}
		}
		p.Saved = false
		return nil
	}
	return fmt.Errorf("unknown client %q", name)
}

// MarkSaved records a successful save.
func (p *Proposal) MarkSaved(id string, at time.Time) {
	p.ID = id
	p.Saved = true
	t := at.UTC()
	p.LastSaved = &t
}
