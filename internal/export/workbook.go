// Package export writes proposal projections to xlsx workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/staffplan/internal/model"
)

// Sheet names in the generated workbook.
const (
	SheetSummary   = "Summary"
	SheetBreakdown = "Breakdown"
	SheetInputs    = "Inputs"
)

type styles struct {
	header   int
	currency int
	percent  int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}

	currencyFmt := "$#,##0"
	s.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return s, fmt.Errorf("currency style: %w", err)
	}

	percentFmt := "0.00"
	s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	if err != nil {
		return s, fmt.Errorf("percent style: %w", err)
	}
	return s, nil
}

// sheet appends rows to one worksheet.
type sheet struct {
	f      *excelize.File
	name   string
	styles styles
	row    int
}

func (s *sheet) header(cols ...string) error {
	s.row++
	for i, c := range cols {
		if err := s.set(i+1, c, 0); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	last, _ := excelize.CoordinatesToCellName(len(cols), s.row)
	return s.f.SetCellStyle(s.name, first, last, s.styles.header)
}

type cellKind int

const (
	plainCell cellKind = iota
	currencyCell
	percentCell
)

// cell is a value plus how it should be formatted.
type cell struct {
	value any
	kind  cellKind
}

func text(v string) cell     { return cell{value: v} }
func number(v float64) cell  { return cell{value: v} }
func money(v float64) cell   { return cell{value: v, kind: currencyCell} }
func percent(v float64) cell { return cell{value: v, kind: percentCell} }

func (s *sheet) line(cells ...cell) error {
	s.row++
	for i, c := range cells {
		style := 0
		switch c.kind {
		case currencyCell:
			style = s.styles.currency
		case percentCell:
			style = s.styles.percent
		}
		if err := s.set(i+1, c.value, style); err != nil {
			return err
		}
	}
	return nil
}

func (s *sheet) blank() {
	s.row++
}

func (s *sheet) set(col int, value any, style int) error {
	name, err := excelize.CoordinatesToCellName(col, s.row)
	if err != nil {
		return err
	}
	if err := s.f.SetCellValue(s.name, name, value); err != nil {
		return fmt.Errorf("%s!%s: %w", s.name, name, err)
	}
	if style > 0 {
		if err := s.f.SetCellStyle(s.name, name, name, style); err != nil {
			return fmt.Errorf("%s!%s style: %w", s.name, name, err)
		}
	}
	return nil
}

// Workbook builds an xlsx file with summary, per-role breakdown and the
// inputs behind them. The caller owns the returned file and must Close it.
func Workbook(p model.Proposal, proj model.Projection) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming summary sheet: %w", err)
	}
	for _, name := range []string{SheetBreakdown, SheetInputs} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("creating %s sheet: %w", name, err)
		}
	}

	builders := []func(*sheet) error{
		func(s *sheet) error { return writeSummary(s, p, proj) },
		func(s *sheet) error { return writeBreakdown(s, proj.Breakdown) },
		func(s *sheet) error { return writeInputs(s, p) },
	}
	for i, name := range []string{SheetSummary, SheetBreakdown, SheetInputs} {
		s := &sheet{f: f, name: name, styles: st}
		if err := builders[i](s); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetColWidth(name, "A", "A", 28); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetColWidth(name, "B", "I", 16); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteFile saves the workbook for p and proj to path.
func WriteFile(path string, p model.Proposal, proj model.Projection) error {
	f, err := Workbook(p, proj)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSummary(s *sheet, p model.Proposal, proj model.Projection) error {
	sum := proj.Summary
	rows := [][]cell{
		{text("Proposal"), text(p.Title)},
		{text("View"), text(proj.View)},
		{text("Date"), text(p.Date.Format("2006-01-02"))},
	}
	for _, r := range rows {
		if err := s.line(r...); err != nil {
			return err
		}
	}
	s.blank()

	if err := s.header("Yearly", "Worst Case", "Best Case"); err != nil {
		return err
	}
	rows = [][]cell{
		{text("Gross Revenue"), money(sum.WorstCase.YearlyGrossRevenue), money(sum.BestCase.YearlyGrossRevenue)},
		{text("Operating Profit"), money(sum.WorstCase.YearlyOperatingProfit), money(sum.BestCase.YearlyOperatingProfit)},
		{text("Operating Margin %"), percent(sum.WorstCase.YearlyOperatingMargin), percent(sum.BestCase.YearlyOperatingMargin)},
	}
	for _, r := range rows {
		if err := s.line(r...); err != nil {
			return err
		}
	}

	if len(proj.Issues) > 0 {
		s.blank()
		if err := s.header("Issue", "Detail"); err != nil {
			return err
		}
		for _, is := range proj.Issues {
			if err := s.line(text(is.Field), text(is.Message)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeBreakdown(s *sheet, b model.Breakdown) error {
	if err := s.header(
		"Role",
		"Revenue (Worst)", "Revenue (Best)",
		"Cost (Worst)", "Cost (Best)",
		"Profit (Worst)", "Profit (Best)",
		"Margin % (Worst)", "Margin % (Best)",
	); err != nil {
		return err
	}
	for _, r := range b.Roles {
		if err := s.line(
			text(r.Role),
			money(r.GrossRevenue[0]), money(r.GrossRevenue[1]),
			money(r.BurdenedCost[0]), money(r.BurdenedCost[1]),
			money(r.GrossProfit[0]), money(r.GrossProfit[1]),
			percent(r.GrossMargin[0]), percent(r.GrossMargin[1]),
		); err != nil {
			return err
		}
	}
	s.blank()

	if err := s.header("Totals", "Worst Case", "Best Case"); err != nil {
		return err
	}
	totals := []struct {
		label string
		r     model.Range
		pct   bool
	}{
		{"Total Gross Revenue", b.TotalGrossRevenue, false},
		{"Total Burdened Cost", b.TotalBurdenedCost, false},
		{"Total Gross Profit", b.TotalGrossProfit, false},
		{"Total Gross Margin %", b.TotalGrossMargin, true},
		{"Estimated Overhead", b.EstimatedOverhead, false},
		{"Operating Profit", b.EstimatedOperatingProfit, false},
		{"Operating Margin %", b.EstimatedOperatingMargin, true},
	}
	for _, t := range totals {
		kind := money
		if t.pct {
			kind = percent
		}
		if err := s.line(text(t.label), kind(t.r[0]), kind(t.r[1])); err != nil {
			return err
		}
	}
	return nil
}

func writeInputs(s *sheet, p model.Proposal) error {
	if err := s.header("Setting", "Value"); err != nil {
		return err
	}
	settings := [][]cell{
		{text("Labor Cost Multiplier"), number(p.Settings.LaborCostMultiplier)},
		{text("Overhead %"), number(p.Settings.OverheadPercentage)},
		{text("Weeks in Proposal Period"), number(float64(p.Settings.WeeksInProposalPeriod))},
	}
	for _, r := range settings {
		if err := s.line(r...); err != nil {
			return err
		}
	}
	s.blank()

	if err := s.header("Role", "Type", "Rate"); err != nil {
		return err
	}
	for _, e := range p.Compensation {
		if err := s.line(text(e.Role), text(string(e.Kind)), money(e.Rate)); err != nil {
			return err
		}
	}
	s.blank()

	if err := s.header("Client", "Role", "Billing Rate", "Min Hours", "Max Hours"); err != nil {
		return err
	}
	for _, c := range p.Clients {
		for _, rs := range c.Roles {
			if err := s.line(
				text(c.Client), text(rs.Role), money(rs.BillingRate),
				number(rs.MinHours), number(rs.MaxHours),
			); err != nil {
				return err
			}
		}
	}
	return nil
}
