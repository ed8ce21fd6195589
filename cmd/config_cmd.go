// Package cmd implements the staffplan CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default view:  %s\n", cfg.General.DefaultView)
	if cfg.General.ProposalFile != "" {
		fmt.Printf("    Proposal file: %s\n", cfg.General.ProposalFile)
	}
	if cfg.General.FirmName != "" {
		fmt.Printf("    Firm name:     %s\n", cfg.General.FirmName)
	}
	fmt.Println()

	d := cfg.Defaults
	fmt.Println("  [Defaults]")
	fmt.Printf("    Labor cost multiplier: %gx\n", d.LaborCostMultiplier)
	fmt.Printf("    Overhead:              %s\n", cli.FormatPercent(d.OverheadPercentage))
	fmt.Printf("    Proposal period:       %s\n", cli.FormatWeeks(d.WeeksInProposalPeriod))
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Database: %s\n", cfg.StorePath())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Printf("    Token:   %s\n", maskToken(cfg.Server.Token))
	fmt.Println()

	fmt.Println("  [Remote]")
	if cfg.Remote.URL != "" {
		fmt.Printf("    URL:   %s\n", cfg.Remote.URL)
		fmt.Printf("    Token: %s\n", maskToken(cfg.Remote.Token))
	} else {
		fmt.Println("    Not configured (using local database)")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `staffplan setup` to reconfigure.")
	return nil
}

func maskToken(token string) string {
	switch {
	case token == "":
		return "not set"
	case len(token) > 12:
		return token[:4] + "..." + token[len(token)-4:]
	default:
		return "****"
	}
}
