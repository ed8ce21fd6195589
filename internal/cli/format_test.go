package cli

import (
	"testing"
	"time"

	"github.com/theirongolddev/staffplan/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		0:          "$0",
		-0.4:       "$0",
		999.5:      "$1,000",
		1234567.4:  "$1,234,567",
		-2500:      "-$2,500",
		40000:      "$40,000",
		128000.001: "$128,000",
	}
	for in, want := range cases {
		if got := FormatCurrency(in); got != want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRanges(t *testing.T) {
	if got := FormatCurrencyRange(model.Range{40000, 80000}); got != "$40,000 - $80,000" {
		t.Fatalf("FormatCurrencyRange = %q", got)
	}
	if got := FormatPercentRange(model.Range{22.5, 23.714}); got != "22.50% - 23.71%" {
		t.Fatalf("FormatPercentRange = %q", got)
	}
	if got := FormatHoursRange(model.Range{15, 30}); got != "15-30 hrs/week" {
		t.Fatalf("FormatHoursRange = %q", got)
	}
	if got := FormatHoursRange(model.Range{2.5, 2.5}); got != "2.5 hrs/week" {
		t.Fatalf("FormatHoursRange(equal) = %q", got)
	}
}

func TestFormatPercentAndMargin(t *testing.T) {
	if got := FormatPercent(22.5); got != "22.5%" {
		t.Fatalf("FormatPercent = %q", got)
	}
	if got := FormatMargin(22.5); got != "22.50%" {
		t.Fatalf("FormatMargin = %q", got)
	}
}

func TestFormatWeeksAndDate(t *testing.T) {
	if got := FormatWeeks(40); got != "40 weeks (~9.2 months)" {
		t.Fatalf("FormatWeeks(40) = %q", got)
	}
	d := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "June 15, 2023" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Fatalf("FormatDate(zero) = %q", got)
	}
}

func TestFormatCompensation(t *testing.T) {
	if got := FormatCompensation(model.CompensationEntry{Kind: model.Salary, Rate: 75000}); got != "$75,000/yr" {
		t.Fatalf("salary = %q", got)
	}
	if got := FormatCompensation(model.CompensationEntry{Kind: model.Hourly, Rate: 65}); got != "$65/hr" {
		t.Fatalf("hourly = %q", got)
	}
	if EnsurePositive(-3) != 0 || EnsurePositive(3) != 3 {
		t.Fatal("EnsurePositive did not clamp")
	}
}
