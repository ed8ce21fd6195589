package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/staffplan/internal/config"
	"github.com/theirongolddev/staffplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the raw answers of the setup form.
type SetupValues struct {
	Firm       string
	Multiplier string
	Overhead   string
	Weeks      string
	Theme      string
}

// NewSetupForm builds the first-run form, seeded from cfg.
func NewSetupForm(cfg config.Config, vals *SetupValues) *huh.Form {
	vals.Firm = cfg.General.FirmName
	vals.Multiplier = strconv.FormatFloat(cfg.Defaults.LaborCostMultiplier, 'f', -1, 64)
	vals.Overhead = strconv.FormatFloat(cfg.Defaults.OverheadPercentage, 'f', -1, 64)
	vals.Weeks = strconv.Itoa(cfg.Defaults.WeeksInProposalPeriod)
	vals.Theme = cfg.Appearance.Theme

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to staffplan").
				Description("Set the defaults every new proposal starts from.\nRun `staffplan setup` anytime to change them."),
			huh.NewInput().
				Title("Firm name").
				Description("Shown in the team section of generated proposals").
				Value(&vals.Firm),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Labor cost multiplier").
				Description("Burden applied on top of wages, e.g. 1.25").
				Value(&vals.Multiplier).
				Validate(validateMultiplier),
			huh.NewInput().
				Title("Overhead percentage").
				Description("Share of revenue held back for overhead").
				Value(&vals.Overhead).
				Validate(validatePercent),
			huh.NewInput().
				Title("Weeks in proposal period").
				Value(&vals.Weeks).
				Validate(validateWeeks),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(false)
}

func validateMultiplier(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v <= 0 {
		return errors.New("must be greater than 0")
	}
	return nil
}

func validatePercent(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 || v > 100 {
		return errors.New("must be between 0 and 100")
	}
	return nil
}

func validateWeeks(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if v <= 0 {
		return errors.New("must be at least 1")
	}
	return nil
}

// ApplySetup copies the form answers into cfg.
func ApplySetup(cfg config.Config, vals SetupValues) (config.Config, error) {
	for _, check := range []struct {
		name string
		fn   func(string) error
		val  string
	}{
		{"multiplier", validateMultiplier, vals.Multiplier},
		{"overhead", validatePercent, vals.Overhead},
		{"weeks", validateWeeks, vals.Weeks},
	} {
		if err := check.fn(check.val); err != nil {
			return cfg, fmt.Errorf("%s: %w", check.name, err)
		}
	}

	cfg.General.FirmName = strings.TrimSpace(vals.Firm)
	cfg.Defaults.LaborCostMultiplier, _ = strconv.ParseFloat(strings.TrimSpace(vals.Multiplier), 64)
	cfg.Defaults.OverheadPercentage, _ = strconv.ParseFloat(strings.TrimSpace(vals.Overhead), 64)
	cfg.Defaults.WeeksInProposalPeriod, _ = strconv.Atoi(strings.TrimSpace(vals.Weeks))
	if vals.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(vals.Theme).Name
	}
	return cfg, nil
}

func (a *App) saveSetupConfig() error {
	cfg, err := ApplySetup(a.cfg, *a.setupVals)
	if err != nil {
		return err
	}
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	if a.seeded {
		a.proposal.Settings = cfg.Defaults.Settings()
		a.recompute()
	}
	return config.Save(cfg)
}
