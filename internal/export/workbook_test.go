package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
)

func hourlyProposal() model.Proposal {
	return model.Proposal{
		Title:    "Test",
		Date:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		View:     "A",
		Settings: model.GlobalSettings{LaborCostMultiplier: 1.25, OverheadPercentage: 15, WeeksInProposalPeriod: 40},
		Compensation: []model.CompensationEntry{
			{Role: "Tech", Kind: model.Hourly, Rate: 50},
		},
		Clients: []model.ClientScenario{
			{Client: "A", Roles: []model.RoleScenario{{Role: "Tech", BillingRate: 100, MinHours: 10, MaxHours: 20}}},
		},
	}
}

func raw(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue(%s!%s): %v", sheet, cell, err)
	}
	return v
}

func TestWorkbook_Sheets(t *testing.T) {
	p := hourlyProposal()
	f, err := Workbook(p, projection.Project(p.Input()))
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	got := f.GetSheetList()
	want := []string{SheetSummary, SheetBreakdown, SheetInputs}
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sheet[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWorkbook_Figures(t *testing.T) {
	p := hourlyProposal()
	f, err := Workbook(p, projection.Project(p.Input()))
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	checks := []struct {
		sheet, cell, want string
	}{
		{SheetSummary, "B1", "Test"},
		{SheetSummary, "A6", "Gross Revenue"},
		{SheetSummary, "B6", "40000"},
		{SheetSummary, "C7", "18000"},
		{SheetBreakdown, "A2", "Tech"},
		{SheetBreakdown, "D2", "25000"},
		{SheetBreakdown, "A9", "Estimated Overhead"},
		{SheetBreakdown, "C9", "12000"},
		{SheetInputs, "B4", "40"},
		{SheetInputs, "A10", "A"},
	}
	for _, c := range checks {
		if got := raw(t, f, c.sheet, c.cell); got != c.want {
			t.Fatalf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	p := hourlyProposal()
	path := filepath.Join(t.TempDir(), "proposal.xlsx")
	if err := WriteFile(path, p, projection.Project(p.Input())); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open excel: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	if got := raw(t, f, SheetBreakdown, "B2"); got != "40000" {
		t.Fatalf("Breakdown!B2 = %q, want 40000", got)
	}
}
