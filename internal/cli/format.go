// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats a value as whole US dollars.
// e.g., 1234567.4 -> "$1,234,567", -2500 -> "-$2,500"
func FormatCurrency(v float64) string {
	r := math.Round(v)
	if r < 0 {
		return "-$" + FormatNumber(int64(-r))
	}
	return "$" + FormatNumber(int64(r))
}

// FormatNumber adds locale separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatCurrencyRange formats a [worst, best] range as "$a - $b".
func FormatCurrencyRange(r model.Range) string {
	return FormatCurrency(r.Worst()) + " - " + FormatCurrency(r.Best())
}

// FormatPercent formats percentage points with one decimal.
// e.g., 22.5 -> "22.5%"
func FormatPercent(points float64) string {
	return fmt.Sprintf("%.1f%%", points)
}

// FormatMargin formats percentage points with two decimals, as shown on
// the summary cards.
func FormatMargin(points float64) string {
	return fmt.Sprintf("%.2f%%", points)
}

// FormatPercentRange formats a margin range as "a% - b%".
func FormatPercentRange(r model.Range) string {
	return FormatMargin(r.Worst()) + " - " + FormatMargin(r.Best())
}

// FormatHours formats an hour count without trailing zeros.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// FormatHoursRange formats weekly hours, collapsing equal ends.
// e.g., [15 30] -> "15-30 hrs/week", [5 5] -> "5 hrs/week"
func FormatHoursRange(r model.Range) string {
	if r.Worst() == r.Best() {
		return FormatHours(r.Worst()) + " hrs/week"
	}
	return FormatHours(r.Worst()) + "-" + FormatHours(r.Best()) + " hrs/week"
}

// FormatWeeks describes a proposal period in weeks and approximate months.
// e.g., 40 -> "40 weeks (~9.2 months)"
func FormatWeeks(weeks int) string {
	months := float64(weeks) / projection.WeeksPerMonth
	return fmt.Sprintf("%d weeks (~%.1f months)", weeks, months)
}

// FormatDate formats a date in long form, e.g. "June 15, 2023".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("January 2, 2006")
}

// FormatRate formats an hourly billing rate, e.g. "$185/hr".
func FormatRate(rate float64) string {
	return FormatCurrency(rate) + "/hr"
}

// FormatCompensation formats an internal pay rate by kind.
func FormatCompensation(e model.CompensationEntry) string {
	if e.Kind == model.Salary {
		return FormatCurrency(e.Rate) + "/yr"
	}
	return FormatCurrency(e.Rate) + "/hr"
}

// EnsurePositive clamps negative values to zero.
func EnsurePositive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
