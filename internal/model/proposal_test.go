package model

import (
	"math"
	"testing"
	"time"
)

func TestDefaultProposal_Seed(t *testing.T) {
	p := DefaultProposal(time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC))

	if p.Settings != DefaultSettings() {
		t.Fatalf("Settings = %+v, want defaults", p.Settings)
	}
	if len(p.Compensation) != 4 {
		t.Fatalf("len(Compensation) = %d, want 4", len(p.Compensation))
	}
	if len(p.Clients) != 2 || p.Clients[0].Client != "YHA" || p.Clients[1].Client != "Hillel" {
		t.Fatalf("Clients = %+v, want YHA then Hillel", p.Clients)
	}
	got := p.Views()
	want := []string{Combined, "YHA", "Hillel"}
	if len(got) != len(want) {
		t.Fatalf("Views() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Views()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProposal_SetSettingMarksUnsaved(t *testing.T) {
	p := DefaultProposal(time.Now())
	p.MarkSaved("abc", time.Now())

	if err := p.SetSetting(SettingWeeks, 52); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if p.Settings.WeeksInProposalPeriod != 52 {
		t.Fatalf("weeks = %d, want 52", p.Settings.WeeksInProposalPeriod)
	}
	if p.Saved {
		t.Fatal("proposal still marked saved after edit")
	}
	if err := p.SetSetting("bogus", 1); err == nil {
		t.Fatal("SetSetting(bogus) returned nil error")
	}
}

func TestProposal_SetCompensationRejectsUnknown(t *testing.T) {
	p := DefaultProposal(time.Now())
	before := p.Compensation[0]

	if err := p.SetCompensation(CompensationEntry{Role: "Nobody", Kind: Hourly, Rate: 1}); err == nil {
		t.Fatal("SetCompensation for unknown role returned nil error")
	}
	if err := p.SetCompensation(CompensationEntry{Role: before.Role, Kind: "Weekly", Rate: 1}); err == nil {
		t.Fatal("SetCompensation with bad kind returned nil error")
	}
	if p.Compensation[0] != before {
		t.Fatalf("Compensation[0] = %+v, want unchanged %+v", p.Compensation[0], before)
	}
}

func TestProposal_SetRoleScenarioAppendsNewRole(t *testing.T) {
	p := DefaultProposal(time.Now())
	rs := RoleScenario{Role: "Intern", BillingRate: 40, MinHours: 1, MaxHours: 2}

	if err := p.SetRoleScenario("Hillel", rs); err != nil {
		t.Fatalf("SetRoleScenario: %v", err)
	}
	c, _ := p.Client("Hillel")
	if last := c.Roles[len(c.Roles)-1]; last != rs {
		t.Fatalf("last role = %+v, want %+v", last, rs)
	}
	if err := p.SetRoleScenario("Nowhere", rs); err == nil {
		t.Fatal("SetRoleScenario for unknown client returned nil error")
	}
}

func TestProposal_RemoveClientResetsView(t *testing.T) {
	p := DefaultProposal(time.Now())

	if err := p.RemoveClient("YHA"); err != nil {
		t.Fatalf("RemoveClient: %v", err)
	}
	if p.View != Combined {
		t.Fatalf("View = %q, want %q", p.View, Combined)
	}
	if p.ActiveClient != "Hillel" {
		t.Fatalf("ActiveClient = %q, want Hillel", p.ActiveClient)
	}
	if err := p.AddClient(Combined); err == nil {
		t.Fatal("AddClient(Combined) returned nil error")
	}
}

func TestRange_KeepsScenarioOrder(t *testing.T) {
	r := Range{10, 4}
	if r.Worst() != 10 || r.Best() != 4 {
		t.Fatalf("Range = %v, want worst 10 best 4", r)
	}
	sum := r.Add(Range{1, 1}).Scale(2)
	if sum != (Range{22, 10}) {
		t.Fatalf("sum = %v, want [22 10]", sum)
	}
}

func TestProposal_SetSettingRejectsBadWeeks(t *testing.T) {
	p := DefaultProposal(time.Now())
	p.MarkSaved("abc", time.Now())

	for _, v := range []float64{40.7, -1, 1e30, math.NaN(), math.Inf(1)} {
		if err := p.SetSetting(SettingWeeks, v); err == nil {
			t.Fatalf("SetSetting(weeks, %v) returned nil error", v)
		}
	}
	if err := p.SetSetting(SettingMultiplier, math.NaN()); err == nil {
		t.Fatal("SetSetting(multiplier, NaN) returned nil error")
	}
	if p.Settings != DefaultSettings() || !p.Saved {
		t.Fatalf("rejected values changed the proposal: %+v saved=%v", p.Settings, p.Saved)
	}
}

func TestProposal_InputIsSnapshot(t *testing.T) {
	p := DefaultProposal(time.Now())
	in := p.InputFor(Combined)
	first := in.Compensation[0]
	yha := in.Clients[0].Roles[0]

	if err := p.RemoveCompensation(first.Role); err != nil {
		t.Fatalf("RemoveCompensation: %v", err)
	}
	rs := p.Clients[0].Roles[0]
	rs.MaxHours = 99
	if err := p.SetRoleScenario("YHA", rs); err != nil {
		t.Fatalf("SetRoleScenario: %v", err)
	}

	if len(in.Compensation) != 4 || in.Compensation[0] != first {
		t.Fatalf("input compensation changed: %+v", in.Compensation)
	}
	if in.Clients[0].Roles[0] != yha {
		t.Fatalf("input scenario = %+v, want %+v", in.Clients[0].Roles[0], yha)
	}
}

func TestProposal_CloneIsDeep(t *testing.T) {
	p := DefaultProposal(time.Now())
	p.MarkSaved("abc", time.Now())
	c := p.Clone()

	p.Clients[0].Roles[0].BillingRate = 1
	p.Compensation[0].Rate = 1
	*p.LastSaved = time.Time{}

	if c.Clients[0].Roles[0].BillingRate == 1 || c.Compensation[0].Rate == 1 {
		t.Fatal("clone shares slices with the original")
	}
	if c.LastSaved.IsZero() {
		t.Fatal("clone shares LastSaved with the original")
	}
}

func TestProposal_TitleDateAndRoleRemoval(t *testing.T) {
	p := DefaultProposal(time.Now())
	p.MarkSaved("abc", time.Now())

	if err := p.SetTitle("  "); err == nil {
		t.Fatal("SetTitle(blank) returned nil error")
	}
	if err := p.SetTitle(" Spring Renewal "); err != nil || p.Title != "Spring Renewal" {
		t.Fatalf("SetTitle: title=%q err=%v", p.Title, err)
	}
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	p.SetDate(d)
	if !p.Date.Equal(d) || p.Saved {
		t.Fatalf("date=%v saved=%v", p.Date, p.Saved)
	}

	role := p.Clients[1].Roles[0].Role
	if err := p.RemoveRoleScenario("Hillel", role); err != nil {
		t.Fatalf("RemoveRoleScenario: %v", err)
	}
	if err := p.RemoveRoleScenario("Hillel", role); err == nil {
		t.Fatal("second RemoveRoleScenario returned nil error")
	}
}
