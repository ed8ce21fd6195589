package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/staffplan/internal/cli"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/narrative"
	"github.com/theirongolddev/staffplan/internal/projection"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Worst and best case yearly figures for a view",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	_, p, proj, err := loadAndProject(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(p, proj)
	return nil
}

func printSummary(p model.Proposal, proj model.Projection) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", strings.ToUpper(p.Title), narrative.ClientLabel(proj.View))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.SummaryTable(proj.Summary)))
	fmt.Print(cli.RenderTable(cli.RangeTable(proj.Summary)))

	weeks := p.Settings.WeeksInProposalPeriod
	fmt.Printf("  %s over %s, %s per month\n\n",
		cli.FormatCurrencyRange(proj.Summary.YearlyRevenueRange),
		cli.FormatWeeks(weeks),
		cli.FormatCurrencyRange(projection.Monthly(proj.Summary.YearlyRevenueRange, weeks)),
	)
}
