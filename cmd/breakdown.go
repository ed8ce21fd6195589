package cmd

import (
	"fmt"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/narrative"
	"github.com/theirongolddev/staffplan/internal/projection"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Per-role revenue, cost and margin for a view",
	RunE:  runBreakdown,
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}

func runBreakdown(cmd *cobra.Command, _ []string) error {
	_, p, proj, err := loadAndProject(cmd.Context())
	if err != nil {
		return err
	}

	b := proj.Breakdown
	fmt.Println()
	fmt.Println(cli.RenderTitle("BREAKDOWN  " + narrative.ClientLabel(proj.View)))
	fmt.Println()

	if len(b.Roles) == 0 {
		fmt.Printf("  No staffed roles for %s.\n\n", proj.View)
		return nil
	}

	fmt.Print(cli.RenderTable(cli.RoleTable(b)))
	fmt.Print(cli.RenderTable(cli.TotalsTable(b)))

	hours := projection.WeeklyHours(p.Clients, proj.View)
	maxHours := 0.0
	for _, h := range hours {
		maxHours = max(maxHours, h.Hours.Best())
	}

	fmt.Println("  Weekly hours (best case)")
	for _, h := range hours {
		label := fmt.Sprintf("%s  %s hrs/wk @ %s",
			h.Role, cli.FormatHoursRange(h.Hours), cli.FormatRate(h.BillingRate))
		fmt.Println(cli.RenderHorizontalBar(label, h.Hours.Best(), maxHours, 30))
	}
	fmt.Println()
	return nil
}
